package directory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zherujiang/spotlight/internal/config"
	"github.com/zherujiang/spotlight/internal/directory/db"
	directory "github.com/zherujiang/spotlight/internal/directory/service"
	"github.com/zherujiang/spotlight/internal/kafka"
	"github.com/zherujiang/spotlight/internal/logger"
	"github.com/zherujiang/spotlight/internal/models"
)

var now = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

func newService(store *MockStore, events *MockPublisher) *directory.DirectoryService {
	svc := directory.NewDirectoryService(store, events, logger.NewLogger(config.LogConfig{}))
	svc.Now = func() time.Time { return now }
	return svc
}

func TestVenuesByCity_GroupsAdjacentCities(t *testing.T) {
	store := new(MockStore)
	svc := newService(store, new(MockPublisher))
	ctx := context.Background()

	store.On("ListVenuesOrderedByCity", ctx).Return([]models.VenueLocation{
		{ID: 1, Name: "A", City: "Austin", State: "TX"},
		{ID: 2, Name: "B", City: "Austin", State: "TX"},
		{ID: 3, Name: "C", City: "Boston", State: "MA"},
	}, nil)
	store.On("CountUpcomingShowsForVenue", ctx, int64(1), now).Return(2, nil)
	store.On("CountUpcomingShowsForVenue", ctx, int64(2), now).Return(0, nil)
	store.On("CountUpcomingShowsForVenue", ctx, int64(3), now).Return(1, nil)

	groups, err := svc.VenuesByCity(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "Austin", groups[0].City)
	assert.Equal(t, "TX", groups[0].State)
	assert.Equal(t, []directory.EntitySummary{
		{ID: 1, Name: "A", NumUpcomingShows: 2},
		{ID: 2, Name: "B", NumUpcomingShows: 0},
	}, groups[0].Venues)

	assert.Equal(t, "Boston", groups[1].City)
	assert.Equal(t, []directory.EntitySummary{{ID: 3, Name: "C", NumUpcomingShows: 1}}, groups[1].Venues)
	store.AssertExpectations(t)
}

func TestVenuesByCity_SameCityDifferentState(t *testing.T) {
	store := new(MockStore)
	svc := newService(store, new(MockPublisher))
	ctx := context.Background()

	store.On("ListVenuesOrderedByCity", ctx).Return([]models.VenueLocation{
		{ID: 1, Name: "Portland Hall", City: "Portland", State: "ME"},
		{ID: 2, Name: "Rose Room", City: "Portland", State: "OR"},
	}, nil)
	store.On("CountUpcomingShowsForVenue", ctx, mock.Anything, now).Return(0, nil)

	groups, err := svc.VenuesByCity(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "ME", groups[0].State)
	assert.Equal(t, "OR", groups[1].State)
}

func TestVenuesByCity_Empty(t *testing.T) {
	store := new(MockStore)
	svc := newService(store, new(MockPublisher))
	ctx := context.Background()

	store.On("ListVenuesOrderedByCity", ctx).Return([]models.VenueLocation{}, nil)

	groups, err := svc.VenuesByCity(ctx)
	require.NoError(t, err)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestVenuesByCity_StoreFailure(t *testing.T) {
	store := new(MockStore)
	svc := newService(store, new(MockPublisher))
	ctx := context.Background()

	store.On("ListVenuesOrderedByCity", ctx).Return(nil, db.ErrTransient)

	_, err := svc.VenuesByCity(ctx)
	assert.ErrorIs(t, err, db.ErrTransient)
}

func TestSearchVenues(t *testing.T) {
	store := new(MockStore)
	svc := newService(store, new(MockPublisher))
	ctx := context.Background()

	store.On("SearchVenues", ctx, "hop").Return([]models.NamedEntity{{ID: 1, Name: "The Musical Hop"}}, nil)
	store.On("CountUpcomingShowsForVenue", ctx, int64(1), now).Return(3, nil)

	result, err := svc.SearchVenues(ctx, "hop")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, []directory.EntitySummary{{ID: 1, Name: "The Musical Hop", NumUpcomingShows: 3}}, result.Data)
}

func TestSearchArtists_NoMatches(t *testing.T) {
	store := new(MockStore)
	svc := newService(store, new(MockPublisher))
	ctx := context.Background()

	store.On("SearchArtists", ctx, "zzz").Return([]models.NamedEntity{}, nil)

	result, err := svc.SearchArtists(ctx, "zzz")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.NotNil(t, result.Data)
	store.AssertNotCalled(t, "CountUpcomingShowsForArtist", mock.Anything, mock.Anything, mock.Anything)
}

func TestVenueDetail(t *testing.T) {
	store := new(MockStore)
	svc := newService(store, new(MockPublisher))
	ctx := context.Background()

	venue := &models.Venue{ID: 1, Name: "The Musical Hop", City: "San Francisco", State: "CA", Genres: []string{"Jazz"}}
	past := []models.ArtistAppearance{
		{ArtistID: 4, ArtistName: "Guns N Petals", StartTime: now.Add(-48 * time.Hour)},
	}
	upcoming := []models.ArtistAppearance{
		{ArtistID: 5, ArtistName: "Matt Quevedo", StartTime: now},
		{ArtistID: 6, ArtistName: "The Wild Sax Band", StartTime: now.Add(24 * time.Hour)},
	}
	store.On("GetVenue", ctx, int64(1)).Return(venue, nil)
	store.On("ListShowsForVenueSplitByTime", ctx, int64(1), now).Return(past, upcoming, nil)

	detail, err := svc.VenueDetail(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "The Musical Hop", detail.Name)
	assert.Equal(t, 1, detail.PastShowsCount)
	assert.Equal(t, 2, detail.UpcomingShowsCount)
	assert.Len(t, detail.UpcomingShows, detail.UpcomingShowsCount)
	assert.Equal(t, "2030-05-30T12:00:00Z", detail.PastShows[0].StartTime)
	assert.Equal(t, "2030-06-01T12:00:00Z", detail.UpcomingShows[0].StartTime)
}

func TestVenueDetail_NotFound(t *testing.T) {
	store := new(MockStore)
	svc := newService(store, new(MockPublisher))
	ctx := context.Background()

	store.On("GetVenue", ctx, int64(99)).Return(nil, db.ErrNotFound)

	_, err := svc.VenueDetail(ctx, 99)
	assert.ErrorIs(t, err, db.ErrNotFound)
	store.AssertNotCalled(t, "ListShowsForVenueSplitByTime", mock.Anything, mock.Anything, mock.Anything)
}

func TestArtistDetail(t *testing.T) {
	store := new(MockStore)
	svc := newService(store, new(MockPublisher))
	ctx := context.Background()

	artist := &models.Artist{ID: 4, Name: "Guns N Petals", Genres: []string{"Rock n Roll"}}
	store.On("GetArtist", ctx, int64(4)).Return(artist, nil)
	store.On("ListShowsForArtistSplitByTime", ctx, int64(4), now).Return(
		[]models.VenueAppearance{{VenueID: 1, VenueName: "The Musical Hop", StartTime: now.Add(-time.Hour)}},
		[]models.VenueAppearance{},
		nil,
	)

	detail, err := svc.ArtistDetail(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.PastShowsCount)
	assert.Equal(t, 0, detail.UpcomingShowsCount)
	assert.NotNil(t, detail.UpcomingShows)
	assert.Equal(t, "The Musical Hop", detail.PastShows[0].VenueName)
}

func TestCreateVenue_PublishesEvent(t *testing.T) {
	store := new(MockStore)
	events := new(MockPublisher)
	svc := newService(store, events)
	ctx := context.Background()

	fields := models.VenueFields{Name: "Hop", City: "SF", State: "CA", Address: "1 Main", Genres: []string{"Jazz"}}
	created := &models.Venue{ID: 7, Name: "Hop"}
	store.On("CreateVenue", ctx, fields).Return(created, nil)
	events.On("Publish", ctx, kafka.VenueCreated, "7", created).Return(nil)

	venue, err := svc.CreateVenue(ctx, fields)
	require.NoError(t, err)
	assert.Equal(t, int64(7), venue.ID)
	events.AssertExpectations(t)
}

func TestCreateVenue_PublishFailureIsNotAnError(t *testing.T) {
	store := new(MockStore)
	events := new(MockPublisher)
	svc := newService(store, events)
	ctx := context.Background()

	fields := models.VenueFields{Name: "Hop"}
	store.On("CreateVenue", ctx, fields).Return(&models.Venue{ID: 7}, nil)
	events.On("Publish", ctx, kafka.VenueCreated, "7", mock.Anything).Return(errors.New("broker down"))

	_, err := svc.CreateVenue(ctx, fields)
	assert.NoError(t, err)
}

func TestCreateVenue_ConstraintViolationSkipsEvent(t *testing.T) {
	store := new(MockStore)
	events := new(MockPublisher)
	svc := newService(store, events)
	ctx := context.Background()

	fields := models.VenueFields{Name: "Hop"}
	store.On("CreateVenue", ctx, fields).Return(nil, db.ErrConstraintViolation)

	_, err := svc.CreateVenue(ctx, fields)
	assert.ErrorIs(t, err, db.ErrConstraintViolation)
	events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateArtist_PublishesEvent(t *testing.T) {
	store := new(MockStore)
	events := new(MockPublisher)
	svc := newService(store, events)
	ctx := context.Background()

	fields := models.ArtistFields{Name: "Matt Quevedo", City: "New York", State: "NY", Genres: []string{"Jazz"}}
	updated := &models.Artist{ID: 5, Name: "Matt Quevedo"}
	store.On("UpdateArtist", ctx, int64(5), fields).Return(updated, nil)
	events.On("Publish", ctx, kafka.ArtistUpdated, "5", updated).Return(nil)

	_, err := svc.UpdateArtist(ctx, 5, fields)
	require.NoError(t, err)
	events.AssertExpectations(t)
}

func TestDeleteVenue_NotFound(t *testing.T) {
	store := new(MockStore)
	events := new(MockPublisher)
	svc := newService(store, events)
	ctx := context.Background()

	store.On("DeleteVenue", ctx, int64(3)).Return(db.ErrNotFound)

	err := svc.DeleteVenue(ctx, 3)
	assert.ErrorIs(t, err, db.ErrNotFound)
	events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteArtist_PublishesEvent(t *testing.T) {
	store := new(MockStore)
	events := new(MockPublisher)
	svc := newService(store, events)
	ctx := context.Background()

	store.On("DeleteArtist", ctx, int64(5)).Return(nil)
	events.On("Publish", ctx, kafka.ArtistDeleted, "5", mock.Anything).Return(nil)

	require.NoError(t, svc.DeleteArtist(ctx, 5))
	events.AssertExpectations(t)
}

func TestCreateShow(t *testing.T) {
	store := new(MockStore)
	events := new(MockPublisher)
	svc := newService(store, events)
	ctx := context.Background()

	start := now.Add(72 * time.Hour)
	show := &models.Show{VenueID: 1, ArtistID: 4, StartTime: start}
	store.On("CreateShow", ctx, int64(1), int64(4), start).Return(show, nil)
	events.On("Publish", ctx, kafka.ShowCreated, "1:4", show).Return(nil)

	got, err := svc.CreateShow(ctx, models.ShowRequest{VenueID: 1, ArtistID: 4, StartTime: start})
	require.NoError(t, err)
	assert.Equal(t, show, got)
	events.AssertExpectations(t)
}

func TestCreateShow_InvalidReference(t *testing.T) {
	store := new(MockStore)
	svc := newService(store, new(MockPublisher))
	ctx := context.Background()

	start := now.Add(time.Hour)
	store.On("CreateShow", ctx, int64(404), int64(4), start).Return(nil, &db.ReferenceError{Entity: "venue", ID: 404})

	_, err := svc.CreateShow(ctx, models.ShowRequest{VenueID: 404, ArtistID: 4, StartTime: start})
	require.ErrorIs(t, err, db.ErrInvalidReference)

	var refErr *db.ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "venue", refErr.Entity)
}

func TestListShows_FormatsStartTime(t *testing.T) {
	store := new(MockStore)
	svc := newService(store, new(MockPublisher))
	ctx := context.Background()

	store.On("ListShows", ctx).Return([]models.ShowListing{
		{VenueID: 1, VenueName: "The Musical Hop", ArtistID: 4, ArtistName: "Guns N Petals",
			StartTime: time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC)},
	}, nil)

	shows, err := svc.ListShows(ctx)
	require.NoError(t, err)
	require.Len(t, shows, 1)
	assert.Equal(t, "2019-05-21T21:30:00Z", shows[0].StartTime)
	assert.Equal(t, "Guns N Petals", shows[0].ArtistName)
}

func TestNewDirectoryService_DefaultsToNoopPublisher(t *testing.T) {
	store := new(MockStore)
	svc := directory.NewDirectoryService(store, nil, logger.NewLogger(config.LogConfig{}))
	ctx := context.Background()

	store.On("DeleteVenue", ctx, int64(1)).Return(nil)
	assert.NoError(t, svc.DeleteVenue(ctx, 1))
}
