// This file defines the like repository.  Likes are guarded by a
// UNIQUE(user_id, post_id) index, which lets Add and Remove be idempotent:
// a duplicate insert and a delete of a missing row are both successes, so
// double-clicks and concurrent requests converge on the same state.
package repository

import (
	"context"
	"database/sql"
	"strings"
)

type LikeRepo struct{ DB *sql.DB }

func NewLikeRepo(db *sql.DB) *LikeRepo { return &LikeRepo{DB: db} }

// Add records that a user likes a post.  Liking an already-liked post is a
// no-op, not an error.
func (r *LikeRepo) Add(ctx context.Context, userID, postID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO likes (user_id, post_id) VALUES (?,?)", userID, postID)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return nil
	}
	return err
}

// Remove deletes a user's like of a post.  Removing a like that does not
// exist is a no-op.
func (r *LikeRepo) Remove(ctx context.Context, userID, postID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM likes WHERE user_id=? AND post_id=?", userID, postID)
	return err
}

// CountForPost returns the number of likes of a post.
func (r *LikeRepo) CountForPost(ctx context.Context, postID uint64) (uint64, error) {
	var n uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM likes WHERE post_id=?", postID).Scan(&n)
	return n, err
}
