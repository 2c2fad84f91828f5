package repositories

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/gatesvc/domain"
)

func TestSessionRepository_CreateAndFind(t *testing.T) {
	client := setupTestRedis(t)
	repo := NewSessionRepository(client, time.Hour)

	session := &domain.Session{
		ID:        "sess-abc",
		UserID:    3,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(testContext(), session))

	found, err := repo.FindByID(testContext(), "sess-abc")
	require.NoError(t, err)
	assert.Equal(t, uint(3), found.UserID)
}

func TestSessionRepository_NotFound(t *testing.T) {
	client := setupTestRedis(t)
	repo := NewSessionRepository(client, time.Hour)

	_, err := repo.FindByID(testContext(), "ghost")
	assert.True(t, errors.Is(err, domain.ErrSessionNotFound))
}

func TestSessionRepository_ExpiredSessionEvicted(t *testing.T) {
	client := setupTestRedis(t)
	repo := NewSessionRepository(client, time.Hour)

	session := &domain.Session{
		ID:        "sess-old",
		UserID:    3,
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}
	require.NoError(t, repo.Create(testContext(), session))

	_, err := repo.FindByID(testContext(), "sess-old")
	assert.True(t, errors.Is(err, domain.ErrSessionExpired))

	// The stale entry is cleaned up on read.
	_, err = repo.FindByID(testContext(), "sess-old")
	assert.True(t, errors.Is(err, domain.ErrSessionNotFound))
}

func TestSessionRepository_Delete(t *testing.T) {
	client := setupTestRedis(t)
	repo := NewSessionRepository(client, time.Hour)

	session := &domain.Session{
		ID:        "sess-del",
		UserID:    3,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Create(testContext(), session))
	require.NoError(t, repo.Delete(testContext(), "sess-del"))

	_, err := repo.FindByID(testContext(), "sess-del")
	assert.True(t, errors.Is(err, domain.ErrSessionNotFound))
}
