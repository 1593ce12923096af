// Package queue defines message payloads exchanged over the message broker.
package queue

// Activity event types published to the feed.activity queue.
const (
    ActivityPostCreated  = "post.created"
    ActivityPostLiked    = "post.liked"
    ActivityPostUnliked  = "post.unliked"
    ActivityCommentAdded = "comment.added"
)

// ActivityEvent is published whenever a user writes to the feed.  It
// contains enough information for downstream consumers to log, notify, or
// feed analytics without querying the primary database.
type ActivityEvent struct {
    Type       string `json:"type"`
    UserID     uint64 `json:"user_id"`
    PostID     uint64 `json:"post_id"`
    CommentID  uint64 `json:"comment_id,omitempty"`
    OccurredAt string `json:"occurred_at"`
}
