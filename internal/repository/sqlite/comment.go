package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/msomdec/inkpost/internal/domain"
)

// commentRepo implements domain.CommentRepository using SQLite.
type commentRepo struct {
	db *sql.DB
}

const commentSelect = `SELECT c.id, c.uid, c.post_id, c.content, c.display_name, c.user_id,
		u.uid, u.username, c.created_at, c.updated_at
	FROM comments c LEFT JOIN users u ON u.id = c.user_id`

func (r *commentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	now := time.Now().UTC()
	uid := uuid.NewString()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (uid, post_id, content, display_name, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uid, comment.PostID, comment.Content, nullString(comment.DisplayName), nullInt64(comment.UserID), now, now,
	)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get comment id: %w", err)
	}

	comment.ID = id
	comment.UID = uid
	comment.CreatedAt = now
	comment.UpdatedAt = now
	return nil
}

func (r *commentRepo) GetByUID(ctx context.Context, uid string) (*domain.Comment, error) {
	row := r.db.QueryRowContext(ctx, commentSelect+` WHERE c.uid = ?`, uid)
	c, err := scanComment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return c, nil
}

func (r *commentRepo) ListByPost(ctx context.Context, postID int64) ([]domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		commentSelect+` WHERE c.post_id = ? ORDER BY c.created_at DESC, c.id DESC`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}

// Update persists the comment's content; nothing else about a comment is mutable.
func (r *commentRepo) Update(ctx context.Context, comment *domain.Comment) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE comments SET content = ?, updated_at = ? WHERE id = ?`,
		comment.Content, now, comment.ID,
	)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	comment.UpdatedAt = now
	return nil
}

func (r *commentRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanComment(row rowScanner) (*domain.Comment, error) {
	c := &domain.Comment{}
	var (
		displayName, authorUID, authorName sql.NullString
		userID                             sql.NullInt64
	)
	if err := row.Scan(&c.ID, &c.UID, &c.PostID, &c.Content, &displayName, &userID,
		&authorUID, &authorName, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.DisplayName = nullableString(displayName)
	c.UserID = nullableInt64(userID)
	if authorUID.Valid {
		c.Author = &domain.UserSummary{UID: authorUID.String, Username: nullableString(authorName)}
	}
	return c, nil
}
