package handler

import (
    "context"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/social-feed/internal/config"
    "github.com/iliyamo/social-feed/internal/repository"
    "github.com/iliyamo/social-feed/internal/utils"
)

// AuthHandler bundles dependencies for the register and login endpoints.
type AuthHandler struct {
    Cfg   config.Config
    Users UserStore
}

func NewAuthHandler(cfg config.Config, u UserStore) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registerReq struct {
    Username string `json:"username"`
    Email    string `json:"email"`
    Password string `json:"password"`
}
type loginReq struct {
    Email    string `json:"email"`
    Password string `json:"password"`
}

// Register creates a user from a username/email/password triple.  The
// password is hashed before it ever reaches the store.  Any store failure,
// duplicate key included, collapses into one generic response: the client
// must not be able to tell whether a username or email is already taken.
// No token is issued; the user logs in separately.
func (h *AuthHandler) Register(c echo.Context) error {
    var req registerReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
    }
    req.Username = strings.TrimSpace(req.Username)
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if req.Username == "" || req.Email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "username, email and password are required"})
    }

    hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "registration failed"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if _, err := h.Users.Create(ctx, req.Username, req.Email, hash); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "registration failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "user registered successfully"})
}

// Login verifies an email/password pair and issues an access token.  A
// missing account and a wrong password produce byte-identical responses so
// the endpoint cannot be used to enumerate accounts.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if req.Email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "email and password are required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.GetByEmail(ctx, req.Email)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            // Same status and body as a wrong password below, so the
            // endpoint cannot be used to enumerate accounts.
            return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid credentials"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "login failed"})
    }
    if !utils.VerifyPassword(u.PasswordHash, req.Password) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid credentials"})
    }

    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "login failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"token": access.Token, "userId": u.ID})
}

// Me returns the authenticated user's public profile.  It doubles as the
// simplest protected endpoint for clients to probe token validity.
func (h *AuthHandler) Me(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.GetByID(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "load user failed"})
    }
    return c.JSON(http.StatusOK, profileResp(u))
}
