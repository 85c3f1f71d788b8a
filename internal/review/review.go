// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

/*
Package review manages the social layer of the catalog: scored reviews on
titles and threaded comments on reviews.

Each user may review a given title at most once. That rule is enforced by a
storage-level unique constraint, never by a read-then-write check, so
concurrent duplicates collapse deterministically into a conflict.

# Access Control

  - Public: reading reviews and comments.
  - Authenticated: creating reviews and comments.
  - Author: updating and deleting own content.
  - Moderator/Admin/Superuser: updating and deleting anyone's content.
*/
package review

import "time"

// Review is a scored opinion on a title, one per author per title.
type Review struct {
	ID        int       `json:"id"`
	TitleID   int       `json:"-"`
	AuthorID  string    `json:"-"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"pub_date"`
}

// Comment is a threaded remark on a review.
type Comment struct {
	ID        int       `json:"id"`
	ReviewID  int       `json:"-"`
	AuthorID  string    `json:"-"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"pub_date"`
}

// Score bounds, inclusive.
const (
	ScoreMin = 1
	ScoreMax = 10
)

// Field name constants for validation details.
const (
	FieldText  = "text"
	FieldScore = "score"
)
