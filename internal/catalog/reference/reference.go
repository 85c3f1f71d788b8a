// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

/*
Package reference manages the catalog taxonomies: categories and genres.

A category classifies a title exclusively ("Movies", "Books"); genres are
a free many-to-many labelling ("Drama", "Sci-Fi"). Both are keyed by a
URL-safe slug that is either supplied by the admin or derived from the
display name.

# Access Control

  - Public: listing taxonomies.
  - Admin: creating and deleting taxonomy entries.
*/
package reference

import "time"

// Category is an exclusive classification for a title.
type Category struct {
	ID        int       `json:"-"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}

// Genre is a non-exclusive label attachable to many titles.
type Genre struct {
	ID        int       `json:"-"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}

// Field name constants for validation details.
const (
	FieldName = "name"
	FieldSlug = "slug"

	NameMaxLength = 256
	SlugMaxLength = 50
)
