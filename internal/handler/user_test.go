package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, store *mockUserStore) {
	t.Helper()
	h := NewAuthHandler(testConfig(), store)
	rec := postJSON(t, h.Register, "/api/auth/register",
		map[string]string{"username": "alice", "email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetProfile(t *testing.T) {
	store := newMockUserStore()
	seedUser(t, store)
	h := NewUserHandler(store, t.TempDir())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/:id", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, h.GetProfile(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestGetProfileNotFound(t *testing.T) {
	h := NewUserHandler(newMockUserStore(), t.TempDir())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/:id", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")

	require.NoError(t, h.GetProfile(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateAndDeletePhoto(t *testing.T) {
	store := newMockUserStore()
	seedUser(t, store)
	dir := t.TempDir()
	h := NewUserHandler(store, dir)

	// Build a multipart body with a profile_pic file.
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("profile_pic", "avatar.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/users/photo", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	c, rec := authedContext(e, req, 1)

	require.NoError(t, h.UpdatePhoto(c))
	require.Equal(t, http.StatusOK, rec.Code)

	u := store.users[1]
	require.True(t, u.ProfilePic.Valid)
	assert.True(t, filepath.Ext(u.ProfilePic.String) == ".png")

	// The referenced file exists on disk under a generated name.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEqual(t, "avatar.png", entries[0].Name())

	// Delete clears the reference.
	req = httptest.NewRequest(http.MethodDelete, "/api/users/photo", nil)
	c, rec = authedContext(e, req, 1)
	require.NoError(t, h.DeletePhoto(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, store.users[1].ProfilePic.Valid)
}

func TestUpdatePhotoRequiresFile(t *testing.T) {
	store := newMockUserStore()
	seedUser(t, store)
	h := NewUserHandler(store, t.TempDir())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/users/photo", nil)
	c, rec := authedContext(e, req, 1)

	require.NoError(t, h.UpdatePhoto(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
