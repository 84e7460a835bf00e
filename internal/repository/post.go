package repository

import (
	"context"

	"blog-api/internal/domain"
)

// PostRepository exposes persistence operations for Post entities.
type PostRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, post *domain.Post) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	// UpdateContent replaces the content of the post with the given id and
	// refreshes its update timestamp. Returns ErrNotFound when no row was
	// affected, including a concurrent delete between lookup and update.
	UpdateContent(ctx context.Context, id int64, content string) error
	Delete(ctx context.Context, id int64) error
}
