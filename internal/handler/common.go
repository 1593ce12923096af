package handler // handler defines http handlers

import (
    "context"
    "errors"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/social-feed/internal/repository"
)

// The stores consumed by handlers are declared as interfaces so tests can
// substitute in-memory fakes; the repository types satisfy them.

// UserStore is the credential and profile persistence boundary.
type UserStore interface {
    Create(ctx context.Context, username, email, passwordHash string) (uint64, error)
    GetByEmail(ctx context.Context, email string) (repository.User, error)
    GetByID(ctx context.Context, id uint64) (repository.User, error)
    UpdatePhoto(ctx context.Context, id uint64, url string) error
    ClearPhoto(ctx context.Context, id uint64) error
}

// PostStore persists posts and serves feed listings.
type PostStore interface {
    Create(ctx context.Context, userID uint64, content, imageURL string) (uint64, error)
    Feed(ctx context.Context, viewerID uint64) ([]repository.FeedPost, error)
    ListByUser(ctx context.Context, authorID, viewerID uint64) ([]repository.FeedPost, error)
    Exists(ctx context.Context, id uint64) (bool, error)
}

// LikeStore persists like rows.
type LikeStore interface {
    Add(ctx context.Context, userID, postID uint64) error
    Remove(ctx context.Context, userID, postID uint64) error
    CountForPost(ctx context.Context, postID uint64) (uint64, error)
}

// CommentStore persists comments.
type CommentStore interface {
    Create(ctx context.Context, postID, userID uint64, content string) (uint64, error)
    ListByPost(ctx context.Context, postID uint64) ([]repository.Comment, error)
}

var errNoUser = errors.New("no authenticated user in context")

// Messages shared by handlers that resolve a target post before acting.
var (
    errUnauthorized = errors.New("unauthorized")
    errInvalidID    = errors.New("invalid id")
    errDB           = errors.New("db error")
    errPostNotFound = errors.New("post not found")
)

// getUserID extracts the user_id placed in the echo.Context by the JWT
// middleware.  Handlers behind that middleware can rely on it being set;
// the error path only triggers when a handler is wired without auth.
func getUserID(c echo.Context) (uint64, error) {
    switch t := c.Get("user_id").(type) {
    case uint64:
        return t, nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errNoUser
}
