package seed_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zherujiang/spotlight/internal/config"
	"github.com/zherujiang/spotlight/internal/database"
	"github.com/zherujiang/spotlight/internal/database/migrations"
	"github.com/zherujiang/spotlight/internal/directory/db"
	"github.com/zherujiang/spotlight/internal/logger"
	"github.com/zherujiang/spotlight/internal/seed"
)

func TestDefaultFixture(t *testing.T) {
	f, err := seed.Default()
	require.NoError(t, err)

	assert.Len(t, f.Venues, 3)
	assert.Len(t, f.Artists, 3)
	assert.Len(t, f.Shows, 5)
	assert.Equal(t, "The Musical Hop", f.Venues[0].Name)
	assert.Equal(t, []string{"Jazz", "Reggae", "Swing", "Classical", "Folk"}, f.Venues[0].Genres)
	assert.True(t, f.Artists[0].SeekingVenue)
	assert.True(t, time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC).Equal(f.Shows[0].StartTime))
}

func TestParse_UnknownShowReference(t *testing.T) {
	_, err := seed.Parse(strings.NewReader(`
venues:
  - key: hop
    name: Hop
shows:
  - venue: hop
    artist: nobody
    start_time: 2030-01-01T00:00:00Z
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown artist key "nobody"`)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := seed.Parse(strings.NewReader(`
venues:
  - key: hop
    name: Hop
    capacity: 300
`))
	assert.Error(t, err)
}

func TestApply_IsRepeatable(t *testing.T) {
	ctx := context.Background()
	log := logger.NewLogger(config.LogConfig{})

	bunDB, err := database.OpenSQLiteMemory()
	require.NoError(t, err)
	defer bunDB.Close()
	require.NoError(t, migrations.Up(ctx, bunDB, config.DriverSQLite, log))
	store := &db.DB{Bun: bunDB}

	f, err := seed.Default()
	require.NoError(t, err)

	first, err := seed.Apply(ctx, store, f, log)
	require.NoError(t, err)
	assert.Equal(t, seed.Summary{Venues: 3, Artists: 3, Shows: 5}, first)

	second, err := seed.Apply(ctx, store, f, log)
	require.NoError(t, err)
	assert.Equal(t, seed.Summary{Skipped: 11}, second)

	shows, err := store.ListShows(ctx)
	require.NoError(t, err)
	assert.Len(t, shows, 5)

	hits, err := store.SearchVenues(ctx, "music")
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}
