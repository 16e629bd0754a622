// Package session owns the cookie-backed session record of the auth
// protocol. The rest of the application only ever attaches, reads or clears
// the user snapshot of the current request's session.
package session

import (
	"encoding/gob"
	"log/slog"
	"net/http"

	"authgate/config"
	"authgate/internal/domain/entity"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const userKey = "auth_user"

// Store abstracts the session backend so handlers and tests depend on the
// narrow operations the auth contract needs.
type Store interface {
	// AttachUser stores a full snapshot of the authenticated user under the
	// caller's session. The snapshot is written whole; a partially populated
	// session is never observable.
	AttachUser(c echo.Context, user *entity.User) error

	// CurrentUser returns the attached user snapshot, if any.
	// An absent snapshot means the caller is anonymous.
	CurrentUser(c echo.Context) (*entity.User, bool)

	// Destroy removes the caller's session record and expires the cookie.
	// On error the session is presumed still live.
	Destroy(c echo.Context) error
}

// userSnapshot is the gob-encoded session payload, mirroring what login
// attached.
type userSnapshot struct {
	ID           int64
	Username     string
	PasswordHash string
}

func init() {
	gob.Register(&userSnapshot{})
}

// cookieStore implements Store on top of gorilla/sessions' CookieStore.
type cookieStore struct {
	store  *sessions.CookieStore
	name   string
	logger *slog.Logger
}

// New builds the cookie session store from configuration.
func New(cfg *config.Config, logger *slog.Logger) Store {
	store := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.Session.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &cookieStore{
		store:  store,
		name:   cfg.Session.CookieName,
		logger: logger,
	}
}

func (s *cookieStore) AttachUser(c echo.Context, user *entity.User) error {
	sess, err := s.store.Get(c.Request(), s.name)
	if err != nil {
		// An undecodable cookie is replaced, not fatal: Get already handed
		// back a fresh session.
		s.logger.Warn("Replacing undecodable session cookie", slog.Any("error", err))
	}

	sess.Values[userKey] = &userSnapshot{
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
	}

	return errors.Wrap(sess.Save(c.Request(), c.Response()), "failed to save session")
}

func (s *cookieStore) CurrentUser(c echo.Context) (*entity.User, bool) {
	sess, err := s.store.Get(c.Request(), s.name)
	if err != nil {
		return nil, false
	}

	snapshot, ok := sess.Values[userKey].(*userSnapshot)
	if !ok {
		return nil, false
	}

	return &entity.User{
		ID:           snapshot.ID,
		Username:     snapshot.Username,
		PasswordHash: snapshot.PasswordHash,
	}, true
}

func (s *cookieStore) Destroy(c echo.Context) error {
	sess, err := s.store.Get(c.Request(), s.name)
	if err != nil {
		return errors.Wrap(err, "failed to load session for destruction")
	}

	delete(sess.Values, userKey)
	sess.Options.MaxAge = -1

	return errors.Wrap(sess.Save(c.Request(), c.Response()), "failed to destroy session")
}
