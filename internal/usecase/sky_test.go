package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Sternentyp/internal/astro"
	"Sternentyp/internal/domain/models"
)

func TestSkySnapshot(t *testing.T) {
	watcher := NewSkyWatcher(testConfig(), staticEphemeris())

	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	snap, err := watcher.Snapshot(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, now, snap.UTC)
	assert.InDelta(t, astro.JulianDay(now), snap.JulianDay, 1e-9)
	assert.Len(t, snap.Bodies, 10)

	sonne := snap.Bodies[models.Sonne]
	assert.Equal(t, "Widder", sonne.Position.Sign)
	assert.False(t, sonne.Retrograde)
	assert.True(t, snap.Bodies[models.Merkur].Retrograde)
	assert.NotEmpty(t, snap.Aspects)
}
