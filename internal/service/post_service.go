package service

import (
	"context"
	"errors"
	"strings"

	"blog-api/internal/auth"
	"blog-api/internal/domain"
	"blog-api/internal/repository"
)

// ErrForbidden is returned when an authenticated user tries to mutate a post
// they do not own. Distinct from repository.ErrNotFound: existence is always
// resolved before ownership.
var ErrForbidden = errors.New("forbidden")

// PostService coordinates post operations. Reads are public; mutations
// require the caller's verified identity.
type PostService interface {
	Create(ctx context.Context, identity auth.Identity, content string) (*domain.Post, error)
	Get(ctx context.Context, id int64) (*domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	Update(ctx context.Context, identity auth.Identity, id int64, content string) (*domain.Post, error)
	Delete(ctx context.Context, identity auth.Identity, id int64) error
}

type postService struct {
	posts repository.PostRepository
}

func NewPostService(posts repository.PostRepository) PostService {
	return &postService{posts: posts}
}

func (s *postService) Create(ctx context.Context, identity auth.Identity, content string) (*domain.Post, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}

	post := &domain.Post{
		Content:  content,
		AuthorID: identity.UserID,
	}
	if _, err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Get(ctx context.Context, id int64) (*domain.Post, error) {
	return s.posts.Get(ctx, id)
}

func (s *postService) List(ctx context.Context) ([]domain.Post, error) {
	return s.posts.List(ctx)
}

func (s *postService) Update(ctx context.Context, identity auth.Identity, id int64, content string) (*domain.Post, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}

	post, err := s.posts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(identity, post.AuthorID); err != nil {
		return nil, err
	}

	// a concurrent delete between the lookup and the update surfaces here as
	// ErrNotFound
	if err := s.posts.UpdateContent(ctx, id, content); err != nil {
		return nil, err
	}
	return s.posts.Get(ctx, id)
}

func (s *postService) Delete(ctx context.Context, identity auth.Identity, id int64) error {
	post, err := s.posts.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(identity, post.AuthorID); err != nil {
		return err
	}
	return s.posts.Delete(ctx, id)
}

// authorizeOwner is the ownership guard: allow iff the caller is the
// recorded author.
func authorizeOwner(identity auth.Identity, ownerID int64) error {
	if identity.UserID != ownerID {
		return ErrForbidden
	}
	return nil
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return &ValidationError{Fields: []FieldError{
			{Field: "content", Message: "Content is required"},
		}}
	}
	return nil
}
