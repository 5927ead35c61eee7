package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/msomdec/inkpost/internal/domain"
	"github.com/msomdec/inkpost/internal/validate"
)

// CreatePostInput is the payload for a new post. Published defaults to false.
type CreatePostInput struct {
	Title     string `json:"title" validate:"required"`
	Content   string `json:"content" validate:"required"`
	Published *bool  `json:"published"`
}

// UpdatePostInput is a partial update; nil fields are left unchanged.
type UpdatePostInput struct {
	Title     *string `json:"title" validate:"omitempty,min=1"`
	Content   *string `json:"content" validate:"omitempty,min=1"`
	Published *bool   `json:"published"`
}

// PostService handles post CRUD and the ownership rules around it.
// Every method takes the caller explicitly; a nil caller is anonymous.
type PostService struct {
	posts domain.PostRepository
}

// NewPostService creates a new PostService.
func NewPostService(posts domain.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// Create stores a new post owned by caller.
func (s *PostService) Create(ctx context.Context, caller *domain.User, in CreatePostInput) (*domain.Post, error) {
	validate.Trim(&in.Title, &in.Content)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}

	post := &domain.Post{
		Title:     in.Title,
		Content:   in.Content,
		Published: in.Published != nil && *in.Published,
		UserID:    caller.ID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	post.Author = caller.Summary()
	return post, nil
}

// Get returns the post if caller may see it. Unpublished posts of other users
// are reported as domain.ErrNotFound so their existence is not revealed.
func (s *PostService) Get(ctx context.Context, caller *domain.User, uid string) (*domain.Post, error) {
	post, err := s.posts.GetByUID(ctx, uid)
	if err != nil {
		return nil, notFound(err, domain.ErrPostNotFound)
	}
	if !post.VisibleTo(caller) {
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}

// ListPublished returns every published post, newest first.
func (s *PostService) ListPublished(ctx context.Context) ([]domain.Post, error) {
	return s.posts.ListPublished(ctx)
}

// ListMine returns all of caller's posts regardless of published state.
func (s *PostService) ListMine(ctx context.Context, caller *domain.User) ([]domain.Post, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.posts.ListByUser(ctx, caller.ID)
}

// Update applies the supplied fields. A missing post is domain.ErrNotFound;
// an existing post owned by someone else is domain.ErrForbidden.
func (s *PostService) Update(ctx context.Context, caller *domain.User, uid string, in UpdatePostInput) (*domain.Post, error) {
	validate.Trim(in.Title, in.Content)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if in.Title == nil && in.Content == nil && in.Published == nil {
		return nil, domain.NewValidationError("custom", "At least one field must be provided")
	}

	post, err := s.owned(ctx, caller, uid)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	if in.Published != nil {
		post.Published = *in.Published
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// Delete removes the post and its comments. Same not-found/forbidden ordering as Update.
func (s *PostService) Delete(ctx context.Context, caller *domain.User, uid string) error {
	post, err := s.owned(ctx, caller, uid)
	if err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, post.ID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func (s *PostService) owned(ctx context.Context, caller *domain.User, uid string) (*domain.Post, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}
	post, err := s.posts.GetByUID(ctx, uid)
	if err != nil {
		return nil, notFound(err, domain.ErrPostNotFound)
	}
	if !post.OwnedBy(caller) {
		return nil, domain.ErrForbidden
	}
	return post, nil
}

// notFound replaces a repository's bare domain.ErrNotFound with a more specific sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return sentinel
	}
	return err
}
