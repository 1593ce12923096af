package repository

import (
	"context"
	"database/sql"
	"time"
)

// Comment is a comment row joined with its author's public fields, as
// rendered under a post.
type Comment struct {
	ID         uint64    `json:"id"`
	PostID     uint64    `json:"post_id"`
	UserID     uint64    `json:"user_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	Username   string    `json:"username"`
	ProfilePic *string   `json:"profile_pic,omitempty"`
}

type CommentRepo struct{ DB *sql.DB }

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{DB: db} }

// Create inserts a comment and returns its ID.
func (r *CommentRepo) Create(ctx context.Context, postID, userID uint64, content string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO comments (post_id, user_id, content) VALUES (?,?,?)",
		postID, userID, content)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByPost returns a post's comments newest-first with author fields.
func (r *CommentRepo) ListByPost(ctx context.Context, postID uint64) ([]Comment, error) {
	rows, err := r.DB.QueryContext(ctx, `
SELECT c.id, c.post_id, c.user_id, c.content, c.created_at, u.username, u.profile_pic
FROM comments c
JOIN users u ON u.id = c.user_id
WHERE c.post_id = ?
ORDER BY c.created_at DESC`, postID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := make([]Comment, 0)
	for rows.Next() {
		var (
			cm  Comment
			pic sql.NullString
		)
		if err := rows.Scan(&cm.ID, &cm.PostID, &cm.UserID, &cm.Content, &cm.CreatedAt,
			&cm.Username, &pic); err != nil {
			return nil, err
		}
		if pic.Valid {
			cm.ProfilePic = &pic.String
		}
		items = append(items, cm)
	}
	return items, rows.Err()
}
