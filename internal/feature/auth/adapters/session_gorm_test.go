package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmgrocery/internal/feature/auth/domain/entity"
	"farmgrocery/internal/feature/auth/usecase"
)

func newTestSession(id string, userID uint, expiresIn time.Duration) *entity.Session {
	now := time.Now()
	return &entity.Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(expiresIn),
	}
}

func TestSessionGorm_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionGorm(db)

	sess := newTestSession("sess-001", 7, time.Hour)
	sess.AddFlash("success", "Welcome!")
	sess.ReturnTo = "/farms/3"
	require.NoError(t, repo.Create(context.Background(), sess))

	found, err := repo.FindByID(context.Background(), "sess-001")

	require.NoError(t, err)
	assert.Equal(t, uint(7), found.UserID)
	assert.Equal(t, "/farms/3", found.ReturnTo)
	require.Len(t, found.Flashes, 1, "flashes should survive the round trip")
	assert.Equal(t, "Welcome!", found.Flashes[0].Text)
}

func TestSessionGorm_FindByID_Missing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionGorm(db)

	found, err := repo.FindByID(context.Background(), "nope")

	assert.Nil(t, found)
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionGorm_FindByID_Expired(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionGorm(db)

	require.NoError(t, repo.Create(context.Background(), newTestSession("old", 1, -time.Hour)))

	found, err := repo.FindByID(context.Background(), "old")

	assert.Nil(t, found, "expired session should be treated as missing")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionGorm_Save(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionGorm(db)

	sess := newTestSession("sess-save", 2, time.Hour)
	require.NoError(t, repo.Create(context.Background(), sess))

	sess.AddFlash("error", "Nope")
	sess.UserID = 0
	require.NoError(t, repo.Save(context.Background(), sess))

	found, err := repo.FindByID(context.Background(), "sess-save")
	require.NoError(t, err)
	assert.Zero(t, found.UserID, "user binding should be cleared")
	require.Len(t, found.Flashes, 1)
	assert.Equal(t, "error", found.Flashes[0].Kind)
}

func TestSessionGorm_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionGorm(db)

	require.NoError(t, repo.Create(context.Background(), newTestSession("gone", 3, time.Hour)))
	require.NoError(t, repo.Delete(context.Background(), "gone"))

	_, err := repo.FindByID(context.Background(), "gone")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionGorm_DeleteExpired(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionGorm(db)

	require.NoError(t, repo.Create(context.Background(), newTestSession("live", 1, time.Hour)))
	require.NoError(t, repo.Create(context.Background(), newTestSession("dead-1", 1, -time.Minute)))
	require.NoError(t, repo.Create(context.Background(), newTestSession("dead-2", 2, -time.Hour)))

	deleted, err := repo.DeleteExpired(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = repo.FindByID(context.Background(), "live")
	assert.NoError(t, err, "live session should survive the sweep")
}
