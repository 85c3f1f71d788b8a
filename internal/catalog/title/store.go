// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

package title

import "context"

// Repository abstracts persistence for catalog titles.
type Repository interface {
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Title, int, error)
	FindByID(ctx context.Context, id int) (*Title, error)
	Create(ctx context.Context, title *Title, genreIDs []int) error
	Update(ctx context.Context, title *Title, genreIDs []int, replaceGenres bool) error
	Delete(ctx context.Context, id int) error
}
