// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

/*
Package title manages catalog titles: the works (films, books, albums)
that users review.

A title belongs to exactly one category and carries any number of genres.
Its rating is not stored; it is the average of the review scores computed
at read time, null while no reviews exist.

# Access Control

  - Public: listing and retrieving titles.
  - Admin: creating, updating and deleting titles.
*/
package title

import (
	"time"

	"github.com/antonkh/kritika/internal/catalog/reference"
)

// Title is a reviewable catalog entry.
type Title struct {
	ID          int                  `json:"id"`
	Name        string               `json:"name"`
	Year        int                  `json:"year"`
	Description string               `json:"description"`
	Category    *reference.Category  `json:"category"`
	Genres      []reference.Genre    `json:"genre"`
	Rating      *float64             `json:"rating"`
	CreatedAt   time.Time            `json:"-"`
}

// Filter narrows a title listing. Zero values mean "no constraint".
type Filter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         int
}

// Field name constants for validation details.
const (
	FieldName     = "name"
	FieldYear     = "year"
	FieldCategory = "category"
	FieldGenre    = "genre"

	NameMaxLength = 256
)
