package service

import (
	"context"
	"fmt"

	"github.com/msomdec/inkpost/internal/domain"
	"github.com/msomdec/inkpost/internal/validate"
)

// CreateCommentInput is the payload for a new comment. DisplayName is only
// kept for anonymous callers.
type CreateCommentInput struct {
	Content     string  `json:"content" validate:"required"`
	DisplayName *string `json:"displayName" validate:"omitempty,min=1"`
}

// UpdateCommentInput is the payload for editing a comment; only content is editable.
type UpdateCommentInput struct {
	Content string `json:"content" validate:"required"`
}

// CommentService handles comments on posts. Comment routes resolve the parent
// post with the same visibility rule as PostService.Get.
type CommentService struct {
	comments domain.CommentRepository
	posts    domain.PostRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(comments domain.CommentRepository, posts domain.PostRepository) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

// List returns all comments on the post, newest first.
func (s *CommentService) List(ctx context.Context, caller *domain.User, postUID string) ([]domain.Comment, error) {
	post, err := s.visiblePost(ctx, caller, postUID)
	if err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, post.ID)
}

// Create adds a comment. An authenticated caller becomes the author and any
// display name is discarded; an anonymous caller may supply one.
func (s *CommentService) Create(ctx context.Context, caller *domain.User, postUID string, in CreateCommentInput) (*domain.Comment, error) {
	validate.Trim(&in.Content, in.DisplayName)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	post, err := s.visiblePost(ctx, caller, postUID)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{PostID: post.ID, Content: in.Content}
	if caller != nil {
		comment.UserID = &caller.ID
		comment.Author = caller.Summary()
	} else {
		comment.DisplayName = in.DisplayName
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// Update edits a comment's content. Only the comment's author may edit it, so
// anonymous comments can never be edited, not even by the post owner.
func (s *CommentService) Update(ctx context.Context, caller *domain.User, postUID, commentUID string, in UpdateCommentInput) (*domain.Comment, error) {
	validate.Trim(&in.Content)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}

	_, comment, err := s.lookup(ctx, caller, postUID, commentUID)
	if err != nil {
		return nil, err
	}
	if !comment.AuthoredBy(caller) {
		return nil, domain.ErrForbidden
	}

	comment.Content = in.Content
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

// Delete removes a comment. The comment's author and the parent post's owner may delete it.
func (s *CommentService) Delete(ctx context.Context, caller *domain.User, postUID, commentUID string) error {
	if caller == nil {
		return domain.ErrUnauthenticated
	}

	post, comment, err := s.lookup(ctx, caller, postUID, commentUID)
	if err != nil {
		return err
	}
	if !comment.AuthoredBy(caller) && !post.OwnedBy(caller) {
		return domain.ErrForbidden
	}

	if err := s.comments.Delete(ctx, comment.ID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

func (s *CommentService) visiblePost(ctx context.Context, caller *domain.User, postUID string) (*domain.Post, error) {
	post, err := s.posts.GetByUID(ctx, postUID)
	if err != nil {
		return nil, notFound(err, domain.ErrPostNotFound)
	}
	if !post.VisibleTo(caller) {
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}

// lookup resolves the post and a comment that must belong to it. A comment on
// a different post is reported as domain.ErrCommentNotFound.
func (s *CommentService) lookup(ctx context.Context, caller *domain.User, postUID, commentUID string) (*domain.Post, *domain.Comment, error) {
	post, err := s.visiblePost(ctx, caller, postUID)
	if err != nil {
		return nil, nil, err
	}
	comment, err := s.comments.GetByUID(ctx, commentUID)
	if err != nil {
		return nil, nil, notFound(err, domain.ErrCommentNotFound)
	}
	if comment.PostID != post.ID {
		return nil, nil, domain.ErrCommentNotFound
	}
	return post, comment, nil
}
