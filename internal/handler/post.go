package handler

import (
    "context"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/social-feed/internal/queue"
    "github.com/iliyamo/social-feed/internal/utils"
)

// PostHandler bundles the stores behind the feed: posts, likes and
// comments.  Publish, when set, receives best-effort activity events; a
// publish failure is logged by the publisher and never fails the request.
type PostHandler struct {
    Posts     PostStore
    Likes     LikeStore
    Comments  CommentStore
    UploadDir string
    Publish   func(ctx context.Context, ev queue.ActivityEvent) error
}

func NewPostHandler(posts PostStore, likes LikeStore, comments CommentStore, uploadDir string) *PostHandler {
    if posts == nil || likes == nil || comments == nil {
        panic("nil store passed to NewPostHandler")
    }
    return &PostHandler{Posts: posts, Likes: likes, Comments: comments, UploadDir: uploadDir}
}

func (h *PostHandler) publish(ev queue.ActivityEvent) {
    if h.Publish == nil {
        return
    }
    ev.OccurredAt = time.Now().UTC().Format(time.RFC3339)
    // Detached context: the event outlives the request that produced it.
    _ = h.Publish(context.Background(), ev)
}

// Create handles POST /api/posts.  The body is multipart: a required
// "content" field and an optional "image" file stored under the uploads
// dir and referenced by URL.
func (h *PostHandler) Create(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
    }
    content := strings.TrimSpace(c.FormValue("content"))
    if content == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "post content is required"})
    }

    imageURL := ""
    if fh, err := c.FormFile("image"); err == nil {
        name, err := utils.SaveUpload(fh, h.UploadDir)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not store file"})
        }
        imageURL = "/uploads/" + name
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    id, err := h.Posts.Create(ctx, uid, content, imageURL)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not create post"})
    }
    h.publish(queue.ActivityEvent{Type: queue.ActivityPostCreated, UserID: uid, PostID: id})
    return c.JSON(http.StatusCreated, echo.Map{"message": "post created successfully", "post_id": id})
}

// Feed handles GET /api/posts: every post newest-first, with like counts
// computed for the requesting user.
func (h *PostHandler) Feed(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, err := h.Posts.Feed(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "db error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListByUser handles GET /api/posts/user/:id and returns one author's
// posts in the same shape as the feed.
func (h *PostHandler) ListByUser(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
    }
    authorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, err := h.Posts.ListByUser(ctx, authorID, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "db error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}
