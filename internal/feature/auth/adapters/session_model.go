package adapters

import (
	"encoding/json"
	"time"

	"farmgrocery/internal/feature/auth/domain/entity"
)

// SessionModel is the database representation of a session for the
// GORM fallback store. Flashes are serialized to JSON so the row stays
// a single document, mirroring the redis representation.
type SessionModel struct {
	ID        string `gorm:"primaryKey;size:64"`
	UserID    uint   `gorm:"index"`
	Flashes   string `gorm:"type:text"`
	ReturnTo  string `gorm:"size:512"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index"`
}

// TableName keeps the table name explicit.
func (SessionModel) TableName() string {
	return "sessions"
}

// SessionModelFromEntity converts a domain session to its database form.
func SessionModelFromEntity(s *entity.Session) *SessionModel {
	flashes, _ := json.Marshal(s.Flashes)
	return &SessionModel{
		ID:        s.ID,
		UserID:    s.UserID,
		Flashes:   string(flashes),
		ReturnTo:  s.ReturnTo,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	}
}

// ToEntity converts the database form back to a domain session.
func (m *SessionModel) ToEntity() *entity.Session {
	var flashes []entity.Flash
	if m.Flashes != "" {
		_ = json.Unmarshal([]byte(m.Flashes), &flashes)
	}
	return &entity.Session{
		ID:        m.ID,
		UserID:    m.UserID,
		Flashes:   flashes,
		ReturnTo:  m.ReturnTo,
		CreatedAt: m.CreatedAt,
		ExpiresAt: m.ExpiresAt,
	}
}
