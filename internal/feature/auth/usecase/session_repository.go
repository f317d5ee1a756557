package usecase

import (
	"context"

	"farmgrocery/internal/feature/auth/domain/entity"
)

// SessionRepository abstracts the persistence layer for session entities.
// Following Go convention: interfaces are defined by the consumer, not the provider.
type SessionRepository interface {
	// Create persists a new session to the storage.
	Create(ctx context.Context, session *entity.Session) error

	// Save overwrites the stored state of an existing session.
	Save(ctx context.Context, session *entity.Session) error

	// FindByID retrieves a session by its ID.
	// It returns ErrSessionNotFound if the session does not exist.
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// Delete removes a session from storage.
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes all expired sessions from storage.
	// Returns the number of deleted sessions.
	DeleteExpired(ctx context.Context) (int64, error)
}
