//go:build integration

package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/zherujiang/spotlight/internal/config"
	"github.com/zherujiang/spotlight/internal/database"
	"github.com/zherujiang/spotlight/internal/database/migrations"
	"github.com/zherujiang/spotlight/internal/directory/db"
	"github.com/zherujiang/spotlight/internal/logger"
	"github.com/zherujiang/spotlight/internal/models"
)

func TestPostgresIntegration(t *testing.T) {
	// Skip if short test mode
	if testing.Short() {
		t.Skip("Skipping Postgres integration test in short mode")
	}

	ctx := context.Background()
	log := logger.NewLogger(config.LogConfig{})

	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "spotlight",
				"POSTGRES_PASSWORD": "spotlight",
				"POSTGRES_DB":       "spotlight",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer pgContainer.Terminate(ctx)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	bunDB, err := database.Open(ctx, config.DatabaseConfig{
		Driver:   config.DriverPostgres,
		Host:     host,
		Port:     port.Port(),
		Username: "spotlight",
		Password: "spotlight",
		Database: "spotlight",
	}, log)
	require.NoError(t, err)
	defer bunDB.Close()

	runner := migrations.NewRunner(bunDB, config.DriverPostgres, log)
	require.NoError(t, runner.MigrateUp(ctx))
	version, err := runner.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
	// a second run is a no-op
	require.NoError(t, runner.MigrateUp(ctx))
	require.NoError(t, runner.Close())

	store := &db.DB{Bun: bunDB}
	asOf := time.Date(2030, 6, 1, 20, 0, 0, 0, time.UTC)

	venue, err := store.CreateVenue(ctx, venueFields("The Musical Hop", "San Francisco", "CA"))
	require.NoError(t, err)
	_, err = store.CreateVenue(ctx, venueFields("The Musical Hop", "Austin", "TX"))
	assert.ErrorIs(t, err, db.ErrConstraintViolation)

	artist, err := store.CreateArtist(ctx, artistFields("Guns N Petals"))
	require.NoError(t, err)

	_, err = store.CreateShow(ctx, venue.ID, artist.ID, asOf)
	require.NoError(t, err)
	_, err = store.CreateShow(ctx, venue.ID, artist.ID, asOf.Add(-time.Hour))
	require.NoError(t, err)
	_, err = store.CreateShow(ctx, venue.ID+100, artist.ID, asOf)
	assert.ErrorIs(t, err, db.ErrInvalidReference)

	past, upcoming, err := store.ListShowsForVenueSplitByTime(ctx, venue.ID, asOf)
	require.NoError(t, err)
	assert.Len(t, past, 1)
	assert.Len(t, upcoming, 1)

	count, err := store.CountUpcomingShowsForVenue(ctx, venue.ID, asOf)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	hits, err := store.SearchVenues(ctx, "HOP")
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	got, err := store.GetVenue(ctx, venue.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jazz", "Reggae"}, got.Genres)

	require.NoError(t, store.DeleteArtist(ctx, artist.ID))
	n, err := bunDB.NewSelect().Model((*models.Show)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
