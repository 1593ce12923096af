package handler

import (
    "context"
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/social-feed/internal/repository"
    "github.com/iliyamo/social-feed/internal/utils"
)

// UserHandler serves public profiles and the authenticated user's profile
// picture operations.
type UserHandler struct {
    Users     UserStore
    UploadDir string
}

func NewUserHandler(users UserStore, uploadDir string) *UserHandler {
    if users == nil {
        panic("nil store passed to NewUserHandler")
    }
    return &UserHandler{Users: users, UploadDir: uploadDir}
}

// profileResp shapes a user row for responses.  The password hash never
// appears here.
func profileResp(u repository.User) echo.Map {
    resp := echo.Map{
        "id":       u.ID,
        "username": u.Username,
        "email":    u.Email,
    }
    if u.ProfilePic.Valid {
        resp["profile_pic"] = u.ProfilePic.String
    }
    return resp
}

// GetProfile handles GET /api/users/:id and returns a user's public fields.
func (h *UserHandler) GetProfile(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "db error"})
    }
    return c.JSON(http.StatusOK, profileResp(u))
}

// UpdatePhoto handles POST /api/users/photo.  The uploaded file is
// attributed to the user resolved from the token, never to an ID supplied
// by the client.
func (h *UserHandler) UpdatePhoto(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
    }
    fh, err := c.FormFile("profile_pic")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "no file uploaded"})
    }
    name, err := utils.SaveUpload(fh, h.UploadDir)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not store file"})
    }
    url := "/uploads/" + name

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()
    if err := h.Users.UpdatePhoto(ctx, uid, url); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "db error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "profile picture updated", "profile_pic": url})
}

// DeletePhoto handles DELETE /api/users/photo and clears the authenticated
// user's picture reference.  The stored file is left in place; uploads are
// content-addressed by random name and harmless once unreferenced.
func (h *UserHandler) DeletePhoto(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()
    if err := h.Users.ClearPhoto(ctx, uid); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "db error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "profile picture deleted"})
}
