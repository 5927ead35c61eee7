package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/msomdec/inkpost/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type commentRepo struct {
	db *gorm.DB
}

func (r *commentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	row := commentRow{
		UID:         uuid.NewString(),
		PostID:      comment.PostID,
		Content:     comment.Content,
		DisplayName: comment.DisplayName,
		UserID:      comment.UserID,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}

	comment.ID = row.ID
	comment.UID = row.UID
	comment.CreatedAt = row.CreatedAt
	comment.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *commentRepo) GetByUID(ctx context.Context, uid string) (*domain.Comment, error) {
	var row commentRow
	if err := r.db.WithContext(ctx).Preload("User").Where("uid = ?", uid).First(&row).Error; err != nil {
		return nil, notFound("get comment", err)
	}
	c := row.toDomain()
	return &c, nil
}

func (r *commentRepo) ListByPost(ctx context.Context, postID int64) ([]domain.Comment, error) {
	var rows []commentRow
	err := r.db.WithContext(ctx).Preload("User").
		Where("post_id = ?", postID).
		Order(newestFirst).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	comments := make([]domain.Comment, len(rows))
	for i := range rows {
		comments[i] = rows[i].toDomain()
	}
	return comments, nil
}

func (r *commentRepo) Update(ctx context.Context, comment *domain.Comment) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&commentRow{ID: comment.ID}).Updates(map[string]any{
		"content":    comment.Content,
		"updated_at": now,
	})
	if result.Error != nil {
		return fmt.Errorf("update comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	comment.UpdatedAt = now
	return nil
}

func (r *commentRepo) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&commentRow{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
