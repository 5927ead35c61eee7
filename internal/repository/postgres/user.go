package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/msomdec/inkpost/internal/domain"
	"gorm.io/gorm"
)

type userRepo struct {
	db *gorm.DB
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	row := userRow{
		UID:          uuid.NewString(),
		Email:        user.Email,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}

	user.ID = row.ID
	user.UID = row.UID
	user.CreatedAt = row.CreatedAt
	user.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *userRepo) GetByUID(ctx context.Context, uid string) (*domain.User, error) {
	return r.getOne(ctx, "uid = ?", uid)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "email = ?", email)
}

func (r *userRepo) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	result := r.db.WithContext(ctx).Model(&userRow{}).Where("id = ?", id).Update("password_hash", hash)
	if result.Error != nil {
		return fmt.Errorf("update password hash: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) getOne(ctx context.Context, where string, value any) (*domain.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).Where(where, value).First(&row).Error; err != nil {
		return nil, notFound("get user", err)
	}
	return row.toDomain(), nil
}
