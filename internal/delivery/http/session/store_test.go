package session

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"authgate/config"
	"authgate/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) Store {
	t.Helper()

	cfg := &config.Config{
		Session: &config.SessionConfig{
			CookieName: "ag_session",
			Secret:     "test-secret",
			MaxAge:     time.Hour,
		},
	}

	return New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newContext(e *echo.Echo, cookies []*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestCookieStore_AttachAndCurrentUser(t *testing.T) {
	store := newTestStore(t)
	e := echo.New()

	user := &entity.User{ID: 1, Username: "sue", PasswordHash: "hashed"}

	// Attach on one request, read on the next via the issued cookie.
	c, rec := newContext(e, nil)
	require.NoError(t, store.AttachUser(c, user))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	c2, _ := newContext(e, cookies)
	got, ok := store.CurrentUser(c2)
	require.True(t, ok)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Username, got.Username)
	assert.Equal(t, user.PasswordHash, got.PasswordHash)
}

func TestCookieStore_CurrentUser_Anonymous(t *testing.T) {
	store := newTestStore(t)
	e := echo.New()

	c, _ := newContext(e, nil)
	_, ok := store.CurrentUser(c)
	assert.False(t, ok)
}

func TestCookieStore_CurrentUser_TamperedCookie(t *testing.T) {
	store := newTestStore(t)
	e := echo.New()

	c, _ := newContext(e, []*http.Cookie{{Name: "ag_session", Value: "forged"}})
	_, ok := store.CurrentUser(c)
	assert.False(t, ok)
}

func TestCookieStore_Destroy(t *testing.T) {
	store := newTestStore(t)
	e := echo.New()

	user := &entity.User{ID: 1, Username: "sue", PasswordHash: "hashed"}

	c, rec := newContext(e, nil)
	require.NoError(t, store.AttachUser(c, user))
	cookies := rec.Result().Cookies()

	// Destroy expires the cookie.
	c2, rec2 := newContext(e, cookies)
	require.NoError(t, store.Destroy(c2))

	expired := rec2.Result().Cookies()
	require.NotEmpty(t, expired)
	assert.Less(t, expired[0].MaxAge, 0)

	// The destroyed session no longer carries a user.
	c3, _ := newContext(e, expired)
	_, ok := store.CurrentUser(c3)
	assert.False(t, ok)
}

func TestCookieStore_CookieAttributes(t *testing.T) {
	store := newTestStore(t)
	e := echo.New()

	c, rec := newContext(e, nil)
	require.NoError(t, store.AttachUser(c, &entity.User{ID: 1, Username: "sue"}))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "ag_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, "/", cookies[0].Path)
}
