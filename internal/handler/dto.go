package handler

import (
	"time"

	"github.com/msomdec/inkpost/internal/domain"
	"github.com/msomdec/inkpost/internal/service"
)

// UserDTO is the JSON representation of the caller's own account.
type UserDTO struct {
	UID      string  `json:"uid"`
	Email    string  `json:"email"`
	Username *string `json:"username"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{UID: u.UID, Email: u.Email, Username: u.Username}
}

// AuthorDTO is the public author summary embedded in posts and comments.
type AuthorDTO struct {
	UID      string  `json:"uid"`
	Username *string `json:"username"`
}

func toAuthorDTO(a *domain.UserSummary) *AuthorDTO {
	if a == nil {
		return nil
	}
	return &AuthorDTO{UID: a.UID, Username: a.Username}
}

type SessionDTO struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

func toSessionDTO(s *service.Session) SessionDTO {
	return SessionDTO{Token: s.Token, User: toUserDTO(s.User)}
}

type PostDTO struct {
	UID          string     `json:"uid"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Published    bool       `json:"published"`
	Author       *AuthorDTO `json:"author"`
	CommentCount int        `json:"commentCount"`
	CreatedAt    string     `json:"createdAt"`
	UpdatedAt    string     `json:"updatedAt"`
}

func toPostDTO(p *domain.Post) PostDTO {
	return PostDTO{
		UID:          p.UID,
		Title:        p.Title,
		Content:      p.Content,
		Published:    p.Published,
		Author:       toAuthorDTO(p.Author),
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    p.UpdatedAt.Format(time.RFC3339),
	}
}

func toPostDTOs(posts []domain.Post) []PostDTO {
	dtos := make([]PostDTO, len(posts))
	for i := range posts {
		dtos[i] = toPostDTO(&posts[i])
	}
	return dtos
}

// CommentDTO is the JSON representation of a comment. Author is null for
// anonymous comments; DisplayName is null for authored ones.
type CommentDTO struct {
	UID         string     `json:"uid"`
	Content     string     `json:"content"`
	DisplayName *string    `json:"displayName"`
	Author      *AuthorDTO `json:"author"`
	CreatedAt   string     `json:"createdAt"`
	UpdatedAt   string     `json:"updatedAt"`
}

func toCommentDTO(c *domain.Comment) CommentDTO {
	return CommentDTO{
		UID:         c.UID,
		Content:     c.Content,
		DisplayName: c.DisplayName,
		Author:      toAuthorDTO(c.Author),
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   c.UpdatedAt.Format(time.RFC3339),
	}
}

func toCommentDTOs(comments []domain.Comment) []CommentDTO {
	dtos := make([]CommentDTO, len(comments))
	for i := range comments {
		dtos[i] = toCommentDTO(&comments[i])
	}
	return dtos
}
