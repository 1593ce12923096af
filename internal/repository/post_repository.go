// This file defines the Post model and the feed queries.  Feed rows join
// the author and aggregate likes so one query serves the whole listing;
// the liked flag is computed against the viewing user.
package repository

import (
	"context"
	"database/sql"
	"time"
)

// Post mirrors the 'posts' table.
type Post struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Content   string    `json:"content"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedPost is a post as rendered in a feed: the row itself plus the
// author's public fields, the like count and whether the viewer liked it.
type FeedPost struct {
	Post
	Username   string  `json:"username"`
	ProfilePic *string `json:"profile_pic,omitempty"`
	LikeCount  uint64  `json:"like_count"`
	Liked      bool    `json:"liked"`
}

type PostRepo struct{ DB *sql.DB }

func NewPostRepo(db *sql.DB) *PostRepo { return &PostRepo{DB: db} }

// Create inserts a post and returns its ID.  imageURL may be empty, which
// is stored as NULL.
func (r *PostRepo) Create(ctx context.Context, userID uint64, content, imageURL string) (uint64, error) {
	var img sql.NullString
	if imageURL != "" {
		img = sql.NullString{String: imageURL, Valid: true}
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO posts (user_id, content, image_url) VALUES (?,?,?)",
		userID, content, img)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

const feedQuery = `
SELECT p.id, p.user_id, p.content, p.image_url, p.created_at,
       u.username, u.profile_pic,
       (SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS like_count,
       EXISTS(SELECT 1 FROM likes l WHERE l.post_id = p.id AND l.user_id = ?) AS liked
FROM posts p
JOIN users u ON u.id = p.user_id`

// Feed returns every post newest-first with author and like data from the
// viewer's point of view.
func (r *PostRepo) Feed(ctx context.Context, viewerID uint64) ([]FeedPost, error) {
	rows, err := r.DB.QueryContext(ctx, feedQuery+" ORDER BY p.created_at DESC", viewerID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanFeed(rows)
}

// ListByUser returns one author's posts newest-first, same shape as Feed.
func (r *PostRepo) ListByUser(ctx context.Context, authorID, viewerID uint64) ([]FeedPost, error) {
	rows, err := r.DB.QueryContext(ctx,
		feedQuery+" WHERE p.user_id = ? ORDER BY p.created_at DESC", viewerID, authorID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanFeed(rows)
}

// Exists reports whether a post row is present.
func (r *PostRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM posts WHERE id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func scanFeed(rows *sql.Rows) ([]FeedPost, error) {
	items := make([]FeedPost, 0)
	for rows.Next() {
		var (
			fp    FeedPost
			img   sql.NullString
			pic   sql.NullString
			liked int
		)
		if err := rows.Scan(&fp.ID, &fp.UserID, &fp.Content, &img, &fp.CreatedAt,
			&fp.Username, &pic, &fp.LikeCount, &liked); err != nil {
			return nil, err
		}
		if img.Valid {
			fp.ImageURL = &img.String
		}
		if pic.Valid {
			fp.ProfilePic = &pic.String
		}
		fp.Liked = liked != 0
		items = append(items, fp)
	}
	return items, rows.Err()
}
