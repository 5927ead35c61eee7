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

type postRepo struct {
	db *gorm.DB
}

const newestFirst = "created_at DESC, id DESC"

func (r *postRepo) Create(ctx context.Context, post *domain.Post) error {
	row := postRow{
		UID:       uuid.NewString(),
		Title:     post.Title,
		Content:   post.Content,
		Published: post.Published,
		UserID:    post.UserID,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return fmt.Errorf("insert post: %w", err)
	}

	post.ID = row.ID
	post.UID = row.UID
	post.CreatedAt = row.CreatedAt
	post.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *postRepo) GetByUID(ctx context.Context, uid string) (*domain.Post, error) {
	var row postRow
	if err := r.db.WithContext(ctx).Preload("User").Where("uid = ?", uid).First(&row).Error; err != nil {
		return nil, notFound("get post", err)
	}

	counts, err := r.commentCounts(ctx, []int64{row.ID})
	if err != nil {
		return nil, err
	}
	p := row.toDomain(counts[row.ID])
	return &p, nil
}

func (r *postRepo) ListPublished(ctx context.Context) ([]domain.Post, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("published = ?", true))
}

func (r *postRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Post, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *postRepo) list(ctx context.Context, q *gorm.DB) ([]domain.Post, error) {
	var rows []postRow
	if err := q.Preload("User").Order(newestFirst).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	ids := make([]int64, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	counts, err := r.commentCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	posts := make([]domain.Post, len(rows))
	for i := range rows {
		posts[i] = rows[i].toDomain(counts[rows[i].ID])
	}
	return posts, nil
}

// commentCounts returns the number of comments per post id in one grouped query.
func (r *postRepo) commentCounts(ctx context.Context, postIDs []int64) (map[int64]int, error) {
	counts := make(map[int64]int, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var results []struct {
		PostID int64
		N      int
	}
	err := r.db.WithContext(ctx).Model(&commentRow{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	for _, res := range results {
		counts[res.PostID] = res.N
	}
	return counts, nil
}

func (r *postRepo) Update(ctx context.Context, post *domain.Post) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&postRow{ID: post.ID}).Updates(map[string]any{
		"title":      post.Title,
		"content":    post.Content,
		"published":  post.Published,
		"updated_at": now,
	})
	if result.Error != nil {
		return fmt.Errorf("update post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	post.UpdatedAt = now
	return nil
}

// Delete removes the post's comments and then the post inside one transaction.
func (r *postRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&commentRow{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}

		result := tx.Delete(&postRow{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete post: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}
