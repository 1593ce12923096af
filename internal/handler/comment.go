package handler

import (
    "context"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/social-feed/internal/queue"
)

type commentReq struct {
    Content string `json:"content"`
}

// CreateComment handles POST /api/posts/:id/comments.
func (h *PostHandler) CreateComment(c echo.Context) error {
    uid, postID, code, err := h.targetPost(c)
    if err != nil {
        return c.JSON(code, echo.Map{"message": err.Error()})
    }
    var req commentReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
    }
    content := strings.TrimSpace(req.Content)
    if content == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "comment content is required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    id, err := h.Comments.Create(ctx, postID, uid, content)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not add comment"})
    }
    h.publish(queue.ActivityEvent{Type: queue.ActivityCommentAdded, UserID: uid, PostID: postID, CommentID: id})
    return c.JSON(http.StatusCreated, echo.Map{
        "message":    "comment added successfully",
        "comment_id": id,
        "post_id":    postID,
        "user_id":    uid,
        "content":    content,
    })
}

// ListComments handles GET /api/posts/:id/comments.  The listing is public:
// reading a conversation requires no account, matching the feed's public
// profile pages.
func (h *PostHandler) ListComments(c echo.Context) error {
    postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, err := h.Comments.ListByPost(ctx, postID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "db error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}
