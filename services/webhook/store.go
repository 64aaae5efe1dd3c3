package webhook

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/pkg/errors"

	"quote-generator-api/config"
)

const sessionIDKey = "sid"

// Backend maps a session id to at most one webhook URL.
type Backend interface {
	Get(ctx context.Context, sessionID string) (string, bool, error)
	Set(ctx context.Context, sessionID, url string) error
	Delete(ctx context.Context, sessionID string) error
}

// Store keeps the webhook URL of the caller's browser session. The cookie only
// carries an opaque session id; the URL itself lives in the backend.
// Concurrent writes from the same session are not ordered: last write wins.
type Store struct {
	sessions sessions.Store
	name     string
	backend  Backend
	logger   *slog.Logger
}

func NewStore(store sessions.Store, name string, backend Backend, logger *slog.Logger) *Store {
	return &Store{
		sessions: store,
		name:     name,
		backend:  backend,
		logger:   logger,
	}
}

func NewCookieStore(cfg config.SessionConfig) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		Domain:   cfg.Domain,
		MaxAge:   cfg.MaxAge,
		Secure:   cfg.Secure,
		HttpOnly: cfg.HttpOnly,
		SameSite: parseSameSite(cfg.SameSite),
	}
	return store
}

func (s *Store) Set(w http.ResponseWriter, r *http.Request, url string) error {
	if err := Validate(url); err != nil {
		return err
	}

	id, err := s.sessionID(w, r, true)
	if err != nil {
		return err
	}

	if err := s.backend.Set(r.Context(), id, url); err != nil {
		return errors.Wrap(err, "failed to store webhook URL")
	}
	s.logger.Debug("webhook stored", "session", id)
	return nil
}

func (s *Store) Get(r *http.Request) (string, error) {
	id, err := s.sessionID(nil, r, false)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", ErrWebhookNotFound
	}

	url, ok, err := s.backend.Get(r.Context(), id)
	if err != nil {
		return "", errors.Wrap(err, "failed to load webhook URL")
	}
	if !ok || url == "" {
		return "", ErrWebhookNotFound
	}
	return url, nil
}

func (s *Store) Clear(w http.ResponseWriter, r *http.Request) error {
	id, err := s.sessionID(w, r, false)
	if err != nil {
		return err
	}
	if id == "" {
		return nil
	}

	if err := s.backend.Delete(r.Context(), id); err != nil {
		return errors.Wrap(err, "failed to clear webhook URL")
	}
	s.logger.Debug("webhook cleared", "session", id)
	return nil
}

// sessionID returns the id stored in the session cookie, minting and saving a
// new one when create is set. A cookie that fails to decode (rotated secret,
// tampering) is treated as a fresh session.
func (s *Store) sessionID(w http.ResponseWriter, r *http.Request, create bool) (string, error) {
	session, err := s.sessions.Get(r, s.name)
	if session == nil {
		return "", errors.Wrap(err, "failed to get session")
	}
	if err != nil {
		s.logger.Warn("discarding unreadable session cookie", "error", err)
	}

	if id, ok := session.Values[sessionIDKey].(string); ok && id != "" {
		return id, nil
	}
	if !create {
		return "", nil
	}

	id := uuid.NewString()
	session.Values[sessionIDKey] = id
	if err := session.Save(r, w); err != nil {
		return "", errors.Wrap(err, "failed to save session")
	}
	return id, nil
}

func parseSameSite(v string) http.SameSite {
	switch strings.ToLower(v) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
