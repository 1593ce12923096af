package handler

import (
    "context"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/social-feed/internal/queue"
)

// Like and Unlike are explicit, idempotent operations rather than a single
// toggle: repeating either request leaves the row set unchanged and simply
// reports the current count, so double-clicks and concurrent retries are
// harmless.

// Like handles POST /api/posts/:id/like.
func (h *PostHandler) Like(c echo.Context) error {
    uid, postID, code, err := h.targetPost(c)
    if err != nil {
        return c.JSON(code, echo.Map{"message": err.Error()})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Likes.Add(ctx, uid, postID); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not like post"})
    }
    n, err := h.Likes.CountForPost(ctx, postID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not fetch like count"})
    }
    h.publish(queue.ActivityEvent{Type: queue.ActivityPostLiked, UserID: uid, PostID: postID})
    return c.JSON(http.StatusOK, echo.Map{"liked": true, "like_count": n})
}

// Unlike handles DELETE /api/posts/:id/like.
func (h *PostHandler) Unlike(c echo.Context) error {
    uid, postID, code, err := h.targetPost(c)
    if err != nil {
        return c.JSON(code, echo.Map{"message": err.Error()})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Likes.Remove(ctx, uid, postID); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not unlike post"})
    }
    n, err := h.Likes.CountForPost(ctx, postID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not fetch like count"})
    }
    h.publish(queue.ActivityEvent{Type: queue.ActivityPostUnliked, UserID: uid, PostID: postID})
    return c.JSON(http.StatusOK, echo.Map{"liked": false, "like_count": n})
}

// targetPost resolves the caller and the target post shared by the like
// and comment handlers, returning the HTTP status to respond with when
// resolution fails.
func (h *PostHandler) targetPost(c echo.Context) (uid, postID uint64, code int, err error) {
    uid, err = getUserID(c)
    if err != nil {
        return 0, 0, http.StatusUnauthorized, errUnauthorized
    }
    postID, err = strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return 0, 0, http.StatusBadRequest, errInvalidID
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    ok, err := h.Posts.Exists(ctx, postID)
    if err != nil {
        return 0, 0, http.StatusInternalServerError, errDB
    }
    if !ok {
        return 0, 0, http.StatusNotFound, errPostNotFound
    }
    return uid, postID, 0, nil
}
