package session

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"farmgrocery/internal/feature/auth/domain/entity"
	"farmgrocery/internal/feature/auth/usecase"
	"farmgrocery/internal/platform/config"
	"farmgrocery/internal/platform/logger"
	"farmgrocery/internal/platform/token"
)

// Context keys used to expose the request's session state to handlers.
const (
	managerKey = "sessionManager"
	sessionKey = "session"
	userKey    = "currentUser"
)

// UserLookup resolves the user bound to a session.
// Defined here because the manager is the consumer.
type UserLookup interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// Manager resolves, creates, and mutates sessions for each request.
// Sessions are created lazily: an anonymous visitor gets one only when
// something must be remembered (a flash, a return-to URL, a login).
type Manager struct {
	sessions   usecase.SessionRepository
	users      UserLookup
	codec      *token.Codec
	cookieName string
	ttl        time.Duration
	secure     bool
}

// NewManager creates a session Manager.
func NewManager(sessions usecase.SessionRepository, users UserLookup, codec *token.Codec, cfg config.SessionConfig, secure bool) *Manager {
	return &Manager{
		sessions:   sessions,
		users:      users,
		codec:      codec,
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL,
		secure:     secure,
	}
}

// Middleware binds the request's session and current user to the context.
// A missing, tampered, or expired cookie simply yields an anonymous request.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(managerKey, m)

		if cookie, err := c.Cookie(m.cookieName); err == nil {
			if sid, err := m.codec.Parse(cookie); err == nil {
				if sess, err := m.sessions.FindByID(c.Request.Context(), sid); err == nil && !sess.IsExpired() {
					c.Set(sessionKey, sess)
					if sess.LoggedIn() {
						if user, err := m.users.FindByID(c.Request.Context(), sess.UserID); err == nil {
							c.Set(userKey, user)
						}
					}
				}
			}
		}

		c.Next()
	}
}

func fromContext(c *gin.Context) *Manager {
	if v, ok := c.Get(managerKey); ok {
		if m, ok := v.(*Manager); ok {
			return m
		}
	}
	return nil
}

// CurrentSession returns the request's session, or nil when anonymous.
func CurrentSession(c *gin.Context) *entity.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*entity.Session); ok {
			return s
		}
	}
	return nil
}

// CurrentUser returns the authenticated user, or nil.
func CurrentUser(c *gin.Context) *entity.User {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(*entity.User); ok {
			return u
		}
	}
	return nil
}

func (m *Manager) writeCookie(c *gin.Context, sessionID string) {
	signed, err := m.codec.Sign(sessionID)
	if err != nil {
		logger.FromContext(c).Error("failed to sign session cookie", zap.Error(err))
		return
	}
	c.SetCookie(m.cookieName, signed, int(m.ttl/time.Second), "/", "", m.secure, true)
}

// ensure returns the request's session, creating one on first use.
func (m *Manager) ensure(c *gin.Context) *entity.Session {
	if s := CurrentSession(c); s != nil {
		return s
	}

	now := time.Now()
	sess := &entity.Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.sessions.Create(c.Request.Context(), sess); err != nil {
		logger.FromContext(c).Error("failed to create session", zap.Error(err))
	}
	m.writeCookie(c, sess.ID)
	c.Set(sessionKey, sess)
	return sess
}

func (m *Manager) save(c *gin.Context, sess *entity.Session) {
	if err := m.sessions.Save(c.Request.Context(), sess); err != nil {
		logger.FromContext(c).Warn("failed to save session", zap.Error(err))
	}
}

// Flash queues a one-shot notice on the session.
func Flash(c *gin.Context, kind, text string) {
	m := fromContext(c)
	if m == nil {
		return
	}
	sess := m.ensure(c)
	sess.AddFlash(kind, text)
	m.save(c, sess)
}

// PopFlashes drains the session's queued notices for rendering.
func PopFlashes(c *gin.Context) []entity.Flash {
	m := fromContext(c)
	sess := CurrentSession(c)
	if m == nil || sess == nil || len(sess.Flashes) == 0 {
		return nil
	}
	flashes := sess.PopFlashes()
	m.save(c, sess)
	return flashes
}

// SetReturnTo remembers where to send the user after the next login.
func SetReturnTo(c *gin.Context, url string) {
	m := fromContext(c)
	if m == nil {
		return
	}
	sess := m.ensure(c)
	sess.ReturnTo = url
	m.save(c, sess)
}

// ConsumeReturnTo returns the deferred redirect target at most once.
func ConsumeReturnTo(c *gin.Context) string {
	m := fromContext(c)
	sess := CurrentSession(c)
	if m == nil || sess == nil || sess.ReturnTo == "" {
		return ""
	}
	url := sess.ConsumeReturnTo()
	m.save(c, sess)
	return url
}

// Login binds a user to the request's session. The session ID is rotated
// to prevent fixation; flashes and the return-to URL carry over.
func Login(c *gin.Context, user *entity.User) {
	m := fromContext(c)
	if m == nil {
		return
	}

	old := CurrentSession(c)
	now := time.Now()
	sess := &entity.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if old != nil {
		sess.Flashes = old.Flashes
		sess.ReturnTo = old.ReturnTo
		if err := m.sessions.Delete(c.Request.Context(), old.ID); err != nil {
			logger.FromContext(c).Warn("failed to delete old session", zap.Error(err))
		}
	}
	if err := m.sessions.Create(c.Request.Context(), sess); err != nil {
		logger.FromContext(c).Error("failed to create session", zap.Error(err))
	}
	m.writeCookie(c, sess.ID)
	c.Set(sessionKey, sess)
	c.Set(userKey, user)
}

// Logout unbinds the user from the session. The session itself survives
// so the goodbye flash can still render.
func Logout(c *gin.Context) {
	m := fromContext(c)
	sess := CurrentSession(c)
	if m == nil || sess == nil {
		return
	}
	sess.UserID = 0
	m.save(c, sess)
	c.Set(userKey, (*entity.User)(nil))
}
