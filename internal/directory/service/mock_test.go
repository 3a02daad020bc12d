package directory_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/zherujiang/spotlight/internal/models"
)

// MockStore is a mock implementation of the directory Store interface
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStore) GetVenue(ctx context.Context, id int64) (*models.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Venue), args.Error(1)
}

func (m *MockStore) ListVenuesOrderedByCity(ctx context.Context) ([]models.VenueLocation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VenueLocation), args.Error(1)
}

func (m *MockStore) CountUpcomingShowsForVenue(ctx context.Context, id int64, asOf time.Time) (int, error) {
	args := m.Called(ctx, id, asOf)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) ListShowsForVenueSplitByTime(ctx context.Context, id int64, asOf time.Time) ([]models.ArtistAppearance, []models.ArtistAppearance, error) {
	args := m.Called(ctx, id, asOf)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]models.ArtistAppearance), args.Get(1).([]models.ArtistAppearance), args.Error(2)
}

func (m *MockStore) SearchVenues(ctx context.Context, term string) ([]models.NamedEntity, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.NamedEntity), args.Error(1)
}

func (m *MockStore) CreateVenue(ctx context.Context, fields models.VenueFields) (*models.Venue, error) {
	args := m.Called(ctx, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Venue), args.Error(1)
}

func (m *MockStore) UpdateVenue(ctx context.Context, id int64, fields models.VenueFields) (*models.Venue, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Venue), args.Error(1)
}

func (m *MockStore) DeleteVenue(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStore) GetArtist(ctx context.Context, id int64) (*models.Artist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artist), args.Error(1)
}

func (m *MockStore) ListArtists(ctx context.Context) ([]models.NamedEntity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.NamedEntity), args.Error(1)
}

func (m *MockStore) CountUpcomingShowsForArtist(ctx context.Context, id int64, asOf time.Time) (int, error) {
	args := m.Called(ctx, id, asOf)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) ListShowsForArtistSplitByTime(ctx context.Context, id int64, asOf time.Time) ([]models.VenueAppearance, []models.VenueAppearance, error) {
	args := m.Called(ctx, id, asOf)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]models.VenueAppearance), args.Get(1).([]models.VenueAppearance), args.Error(2)
}

func (m *MockStore) SearchArtists(ctx context.Context, term string) ([]models.NamedEntity, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.NamedEntity), args.Error(1)
}

func (m *MockStore) CreateArtist(ctx context.Context, fields models.ArtistFields) (*models.Artist, error) {
	args := m.Called(ctx, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artist), args.Error(1)
}

func (m *MockStore) UpdateArtist(ctx context.Context, id int64, fields models.ArtistFields) (*models.Artist, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artist), args.Error(1)
}

func (m *MockStore) DeleteArtist(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStore) CreateShow(ctx context.Context, venueID, artistID int64, startTime time.Time) (*models.Show, error) {
	args := m.Called(ctx, venueID, artistID, startTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Show), args.Error(1)
}

func (m *MockStore) ListShows(ctx context.Context) ([]models.ShowListing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ShowListing), args.Error(1)
}

// MockPublisher records published booking events
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, eventType, key string, payload any) error {
	return m.Called(ctx, eventType, key, payload).Error(0)
}
