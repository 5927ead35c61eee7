package postgres

import (
	"time"

	"github.com/msomdec/inkpost/internal/domain"
)

type userRow struct {
	ID           int64   `gorm:"primaryKey"`
	UID          string  `gorm:"type:varchar(36);not null;uniqueIndex"`
	Email        string  `gorm:"type:varchar(320);not null;uniqueIndex"`
	Username     *string `gorm:"type:varchar(30)"`
	PasswordHash string  `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userRow) TableName() string { return "users" }

func (r *userRow) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		UID:          r.UID,
		Email:        r.Email,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (r *userRow) summary() *domain.UserSummary {
	if r == nil {
		return nil
	}
	return &domain.UserSummary{UID: r.UID, Username: r.Username}
}

type postRow struct {
	ID        int64     `gorm:"primaryKey"`
	UID       string    `gorm:"type:varchar(36);not null;uniqueIndex"`
	Title     string    `gorm:"type:text;not null"`
	Content   string    `gorm:"type:text;not null"`
	Published bool      `gorm:"not null;default:false;index:idx_posts_published_created_at,priority:1"`
	UserID    int64     `gorm:"not null;index"`
	User      userRow   `gorm:"foreignKey:UserID"`
	CreatedAt time.Time `gorm:"index:idx_posts_published_created_at,priority:2"`
	UpdatedAt time.Time
}

func (postRow) TableName() string { return "posts" }

func (r *postRow) toDomain(commentCount int) domain.Post {
	return domain.Post{
		ID:           r.ID,
		UID:          r.UID,
		Title:        r.Title,
		Content:      r.Content,
		Published:    r.Published,
		UserID:       r.UserID,
		Author:       r.User.summary(),
		CommentCount: commentCount,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type commentRow struct {
	ID          int64     `gorm:"primaryKey"`
	UID         string    `gorm:"type:varchar(36);not null;uniqueIndex"`
	PostID      int64     `gorm:"not null;index:idx_comments_post_id_created_at,priority:1"`
	Post        postRow   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Content     string    `gorm:"type:text;not null"`
	DisplayName *string   `gorm:"type:text;check:chk_comments_author,user_id IS NULL OR display_name IS NULL"`
	UserID      *int64    `gorm:"index"`
	User        *userRow  `gorm:"foreignKey:UserID"`
	CreatedAt   time.Time `gorm:"index:idx_comments_post_id_created_at,priority:2"`
	UpdatedAt   time.Time
}

func (commentRow) TableName() string { return "comments" }

func (r *commentRow) toDomain() domain.Comment {
	return domain.Comment{
		ID:          r.ID,
		UID:         r.UID,
		PostID:      r.PostID,
		Content:     r.Content,
		DisplayName: r.DisplayName,
		UserID:      r.UserID,
		Author:      r.User.summary(),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
