package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"szabo-data/inkwell/internal/shared/config"
)

// payload is the durable session record: exactly the two string fields of
// the session pair, plus transient flash notices.
type payload struct {
	Token   string  `json:"token"`
	User    string  `json:"user"`
	Flashes []Flash `json:"flashes,omitempty"`
}

// Manager owns cookie-addressed sessions persisted in Redis. It is the only
// component that touches the durable store; everything else goes through the
// Session it hands out per request.
type Manager struct {
	client     *redis.Client
	cookieName string
	ttl        time.Duration
	secure     bool
	logger     zerolog.Logger
}

func NewRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
}

func NewManager(cfg *config.Config, client *redis.Client, logger zerolog.Logger) *Manager {
	return &Manager{
		client:     client,
		cookieName: cfg.SessionCookie,
		ttl:        cfg.SessionTTL,
		secure:     cfg.CookieSecure,
		logger:     logger.With().Str("component", "session").Logger(),
	}
}

// CookieName returns the cookie identifier used for sessions.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// Load resolves the session for a request. A missing cookie, expired record,
// or unreadable payload resolves to an empty session; only a store transport
// failure leaves the session unresolved, so guards can hold off instead of
// wrongly redirecting.
func (m *Manager) Load(ctx context.Context, r *http.Request) *Session {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return &Session{resolved: true, isNew: true}
	}

	data, err := m.client.Get(ctx, m.redisKey(cookie.Value)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &Session{ID: cookie.Value, resolved: true, isNew: true}
		}
		m.logger.Error().Err(err).Msg("session store unreachable")
		return &Session{ID: cookie.Value}
	}

	var stored payload
	if err := json.Unmarshal(data, &stored); err != nil {
		m.logger.Warn().Str("session_id", cookie.Value).Msg("discarding unreadable session record")
		return &Session{ID: cookie.Value, resolved: true, isNew: true}
	}

	return &Session{
		ID:       cookie.Value,
		token:    stored.Token,
		rawUser:  stored.User,
		flashes:  stored.Flashes,
		resolved: true,
	}
}

// Commit persists pending session changes and writes cookie headers. It must
// run before the first response byte; the middleware takes care of that. A
// destroyed session is removed from Redis before any redirect goes out.
func (m *Manager) Commit(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if s == nil || !s.dirty {
		return nil
	}

	if s.destroyed {
		if s.ID != "" {
			if err := m.client.Del(ctx, m.redisKey(s.ID)).Err(); err != nil && !errors.Is(err, redis.Nil) {
				return err
			}
		}
		http.SetCookie(w, &http.Cookie{
			Name:     m.cookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   m.secure,
			SameSite: http.SameSiteLaxMode,
		})
		s.dirty = false
		return nil
	}

	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	data, err := json.Marshal(payload{Token: s.token, User: s.rawUser, Flashes: s.flashes})
	if err != nil {
		return err
	}
	if err := m.client.Set(ctx, m.redisKey(s.ID), data, m.ttl).Err(); err != nil {
		return err
	}
	s.dirty = false

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(m.ttl),
	})
	return nil
}

// Ping reports whether the session store is reachable.
func (m *Manager) Ping(ctx context.Context) error {
	return m.client.Ping(ctx).Err()
}

func (m *Manager) redisKey(id string) string {
	return "session:" + id
}
