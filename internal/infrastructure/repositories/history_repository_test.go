package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/gatesvc/domain"
)

func TestHistoryRepository_AppendAndFindRecent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHistoryRepository(db)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	records := []domain.AttemptRecord{
		{UserID: 1, GateID: 2, Username: "dana", GateName: "North", Timestamp: now.Add(-2 * time.Hour), Success: false, ErrorMessage: "wrong gate password"},
		{UserID: 1, GateID: 2, Username: "dana", GateName: "North", Timestamp: now.Add(-1 * time.Hour), Success: true, CallSID: "CA123"},
		{UserID: 1, GateID: 9, Username: "dana", GateName: "South", Timestamp: now.Add(-1 * time.Hour), Success: false},
		{UserID: 7, GateID: 2, Username: "omer", GateName: "North", Timestamp: now.Add(-1 * time.Hour), Success: false},
		{UserID: 1, GateID: 2, Username: "dana", GateName: "North", Timestamp: now.Add(-30 * time.Hour), Success: false},
	}
	for i := range records {
		require.NoError(t, repo.Append(testContext(), &records[i]))
		assert.NotZero(t, records[i].ID, "append must backfill the record ID")
	}

	found, err := repo.FindRecent(testContext(), 1, 2, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, found, 2, "only the pair's records inside the window")
	assert.True(t, found[0].Timestamp.Before(found[1].Timestamp), "oldest first")
	assert.False(t, found[0].Success)
	assert.True(t, found[1].Success)
	assert.Equal(t, "CA123", found[1].CallSID)
}

func TestHistoryRepository_FindRecent_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHistoryRepository(db)

	found, err := repo.FindRecent(testContext(), 1, 2, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, found)
}
