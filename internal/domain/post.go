package domain

import (
	"context"
	"time"
)

type Post struct {
	ID           int64
	UID          string
	Title        string
	Content      string
	Published    bool
	UserID       int64
	Author       *UserSummary // populated on reads
	CommentCount int          // populated on reads
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// VisibleTo reports whether the post may be shown to the caller. Unpublished
// posts are visible only to their owner; caller may be nil for anonymous requests.
func (p *Post) VisibleTo(caller *User) bool {
	return p.Published || p.OwnedBy(caller)
}

// OwnedBy reports whether caller is the post's owner.
func (p *Post) OwnedBy(caller *User) bool {
	return caller != nil && caller.ID == p.UserID
}

type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	GetByUID(ctx context.Context, uid string) (*Post, error)
	ListPublished(ctx context.Context) ([]Post, error)
	ListByUser(ctx context.Context, userID int64) ([]Post, error)
	Update(ctx context.Context, post *Post) error
	// Delete removes the post and all of its comments as a single unit.
	Delete(ctx context.Context, id int64) error
}
