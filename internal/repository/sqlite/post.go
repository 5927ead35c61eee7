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

// postRepo implements domain.PostRepository using SQLite.
type postRepo struct {
	db *sql.DB
}

const postSelect = `SELECT p.id, p.uid, p.title, p.content, p.published, p.user_id,
		u.uid, u.username,
		(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id),
		p.created_at, p.updated_at
	FROM posts p JOIN users u ON u.id = p.user_id`

func (r *postRepo) Create(ctx context.Context, post *domain.Post) error {
	now := time.Now().UTC()
	uid := uuid.NewString()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (uid, title, content, published, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uid, post.Title, post.Content, post.Published, post.UserID, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get post id: %w", err)
	}

	post.ID = id
	post.UID = uid
	post.CreatedAt = now
	post.UpdatedAt = now
	return nil
}

func (r *postRepo) GetByUID(ctx context.Context, uid string) (*domain.Post, error) {
	row := r.db.QueryRowContext(ctx, postSelect+` WHERE p.uid = ?`, uid)
	p, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return p, nil
}

func (r *postRepo) ListPublished(ctx context.Context) ([]domain.Post, error) {
	return r.list(ctx, postSelect+` WHERE p.published = 1 ORDER BY p.created_at DESC, p.id DESC`)
}

func (r *postRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Post, error) {
	return r.list(ctx, postSelect+` WHERE p.user_id = ? ORDER BY p.created_at DESC, p.id DESC`, userID)
}

func (r *postRepo) list(ctx context.Context, query string, args ...any) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func (r *postRepo) Update(ctx context.Context, post *domain.Post) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE posts SET title = ?, content = ?, published = ?, updated_at = ? WHERE id = ?`,
		post.Title, post.Content, post.Published, now, post.ID,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	post.UpdatedAt = now
	return nil
}

// Delete removes the post's comments and then the post inside one transaction,
// so a failure part way leaves both in place.
func (r *postRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM comments WHERE post_id = ?", id); err != nil {
		return fmt.Errorf("delete comments: %w", err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*domain.Post, error) {
	p := &domain.Post{Author: &domain.UserSummary{}}
	var username sql.NullString
	if err := row.Scan(&p.ID, &p.UID, &p.Title, &p.Content, &p.Published, &p.UserID,
		&p.Author.UID, &username, &p.CommentCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Author.Username = nullableString(username)
	return p, nil
}
