package domain

import (
	"context"
	"time"
)

// Comment is a reply on a post. UserID is nil for anonymous comments, which
// may carry a caller-supplied DisplayName instead.
type Comment struct {
	ID          int64
	UID         string
	PostID      int64
	Content     string
	DisplayName *string
	UserID      *int64
	Author      *UserSummary // nil for anonymous comments
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AuthoredBy reports whether caller wrote the comment. Anonymous comments have
// no author, so no caller ever matches them.
func (c *Comment) AuthoredBy(caller *User) bool {
	return caller != nil && c.UserID != nil && *c.UserID == caller.ID
}

type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	GetByUID(ctx context.Context, uid string) (*Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]Comment, error)
	Update(ctx context.Context, comment *Comment) error
	Delete(ctx context.Context, id int64) error
}
