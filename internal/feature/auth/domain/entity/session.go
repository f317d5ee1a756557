package entity

import "time"

// Flash is a one-shot user-facing notice. It is rendered once and discarded.
type Flash struct {
	Kind string `json:"kind"` // "success" or "error"
	Text string `json:"text"`
}

// Session represents a browser session stored server-side.
// The cookie carries only a signed token wrapping the session ID.
// UserID is zero while the session is anonymous.
type Session struct {
	ID        string
	UserID    uint
	Flashes   []Flash
	ReturnTo  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired returns true if the session has passed its expiration time.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// LoggedIn returns true if a user is bound to the session.
func (s *Session) LoggedIn() bool {
	return s.UserID != 0
}

// AddFlash queues a one-shot notice.
func (s *Session) AddFlash(kind, text string) {
	s.Flashes = append(s.Flashes, Flash{Kind: kind, Text: text})
}

// PopFlashes drains and returns all queued notices.
func (s *Session) PopFlashes() []Flash {
	f := s.Flashes
	s.Flashes = nil
	return f
}

// ConsumeReturnTo returns the deferred redirect target and clears it,
// so it is honored at most once.
func (s *Session) ConsumeReturnTo() string {
	url := s.ReturnTo
	s.ReturnTo = ""
	return url
}
