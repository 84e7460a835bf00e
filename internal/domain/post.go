package domain

import "time"

// Post is a piece of content owned by exactly one user. AuthorID is fixed at
// creation; there is no transfer operation.
type Post struct {
	ID        int64
	Content   string
	AuthorID  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
