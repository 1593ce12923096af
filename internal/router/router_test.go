package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/social-feed/internal/config"
	"github.com/iliyamo/social-feed/internal/handler"
	"github.com/iliyamo/social-feed/internal/repository"
)

// memUsers is a minimal in-memory UserStore backing the full HTTP stack.
type memUsers struct {
	seq   uint64
	users map[uint64]repository.User
}

func (m *memUsers) Create(_ context.Context, username, email, hash string) (uint64, error) {
	for _, u := range m.users {
		if u.Email == email || u.Username == username {
			return 0, repository.ErrDuplicateUser
		}
	}
	m.seq++
	m.users[m.seq] = repository.User{ID: m.seq, Username: username, Email: email, PasswordHash: hash}
	return m.seq, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (repository.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return repository.User{}, repository.ErrNotFound
}

func (m *memUsers) GetByID(_ context.Context, id uint64) (repository.User, error) {
	u, ok := m.users[id]
	if !ok {
		return repository.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) UpdatePhoto(context.Context, uint64, string) error { return nil }
func (m *memUsers) ClearPhoto(context.Context, uint64) error          { return nil }

// memPosts satisfies the remaining stores with empty data; the protected
// route under test is GET /api/me.
type memPosts struct{}

func (memPosts) Create(context.Context, uint64, string, string) (uint64, error) { return 1, nil }
func (memPosts) Feed(context.Context, uint64) ([]repository.FeedPost, error) {
	return []repository.FeedPost{}, nil
}
func (memPosts) ListByUser(context.Context, uint64, uint64) ([]repository.FeedPost, error) {
	return []repository.FeedPost{}, nil
}
func (memPosts) Exists(context.Context, uint64) (bool, error)        { return false, nil }
func (memPosts) Add(context.Context, uint64, uint64) error           { return nil }
func (memPosts) Remove(context.Context, uint64, uint64) error        { return nil }
func (memPosts) CountForPost(context.Context, uint64) (uint64, error) { return 0, nil }
func (memPosts) CreateComment(context.Context, uint64, uint64, string) (uint64, error) {
	return 0, nil
}
func (memPosts) ListByPost(context.Context, uint64) ([]repository.Comment, error) {
	return []repository.Comment{}, nil
}

type memComments struct{ memPosts }

func (m memComments) Create(ctx context.Context, postID, userID uint64, content string) (uint64, error) {
	return m.CreateComment(ctx, postID, userID, content)
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	cfg := config.Config{JWTSecret: "test-signing-secret", BcryptCost: bcrypt.MinCost, UploadDir: t.TempDir()}
	users := &memUsers{users: map[uint64]repository.User{}}

	e := echo.New()
	RegisterRoutes(e)
	RegisterAuth(e, handler.NewAuthHandler(cfg, users), nil)
	RegisterFeed(e,
		handler.NewAuthHandler(cfg, users),
		handler.NewPostHandler(memPosts{}, memPosts{}, memComments{}, cfg.UploadDir),
		handler.NewUserHandler(users, cfg.UploadDir),
		cfg.JWTSecret, nil)
	return e
}

func do(e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegisterLoginProtectedFlow(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/auth/register", "",
		map[string]string{"username": "alice", "email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		Token  string `json:"token"`
		UserID uint64 `json:"userId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)
	require.Equal(t, uint64(1), login.UserID)

	// Valid token reaches the protected handler.
	rec = do(e, http.MethodGet, "/api/me", login.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)

	// No header at all.
	rec = do(e, http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Present but unverifiable token.
	rec = do(e, http.MethodGet, "/api/me", "garbage", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPublicRoutesNeedNoToken(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodPost, "/api/auth/register", "",
		map[string]string{"username": "alice", "email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/api/users/1", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/api/posts/1/comments", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestFeedRequiresToken(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodGet, "/api/posts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
