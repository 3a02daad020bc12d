package directory

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/zherujiang/spotlight/internal/logger"
	"github.com/zherujiang/spotlight/internal/models"
)

// Store is the repository surface the directory needs. *db.DB implements it.
type Store interface {
	Ping(ctx context.Context) error

	GetVenue(ctx context.Context, id int64) (*models.Venue, error)
	ListVenuesOrderedByCity(ctx context.Context) ([]models.VenueLocation, error)
	CountUpcomingShowsForVenue(ctx context.Context, id int64, asOf time.Time) (int, error)
	ListShowsForVenueSplitByTime(ctx context.Context, id int64, asOf time.Time) (past, upcoming []models.ArtistAppearance, err error)
	SearchVenues(ctx context.Context, term string) ([]models.NamedEntity, error)
	CreateVenue(ctx context.Context, fields models.VenueFields) (*models.Venue, error)
	UpdateVenue(ctx context.Context, id int64, fields models.VenueFields) (*models.Venue, error)
	DeleteVenue(ctx context.Context, id int64) error

	GetArtist(ctx context.Context, id int64) (*models.Artist, error)
	ListArtists(ctx context.Context) ([]models.NamedEntity, error)
	CountUpcomingShowsForArtist(ctx context.Context, id int64, asOf time.Time) (int, error)
	ListShowsForArtistSplitByTime(ctx context.Context, id int64, asOf time.Time) (past, upcoming []models.VenueAppearance, err error)
	SearchArtists(ctx context.Context, term string) ([]models.NamedEntity, error)
	CreateArtist(ctx context.Context, fields models.ArtistFields) (*models.Artist, error)
	UpdateArtist(ctx context.Context, id int64, fields models.ArtistFields) (*models.Artist, error)
	DeleteArtist(ctx context.Context, id int64) error

	CreateShow(ctx context.Context, venueID, artistID int64, startTime time.Time) (*models.Show, error)
	ListShows(ctx context.Context) ([]models.ShowListing, error)
}

// Publisher sends booking events. *kafka.Producer implements it.
type Publisher interface {
	Publish(ctx context.Context, eventType, key string, payload any) error
}

// NoopPublisher drops every event. Used when Kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, string, any) error { return nil }

type DirectoryService struct {
	DB     Store
	Events Publisher
	Logger *logger.Logger
	// Now supplies the reference instant for past/upcoming splits.
	Now func() time.Time
}

func NewDirectoryService(db Store, events Publisher, log *logger.Logger) *DirectoryService {
	if events == nil {
		events = NoopPublisher{}
	}
	return &DirectoryService{
		DB:     db,
		Events: events,
		Logger: log,
		Now:    time.Now,
	}
}

func (s *DirectoryService) Ping(ctx context.Context) error {
	return s.DB.Ping(ctx)
}

// publish runs after the write has committed. A broker failure is logged and
// never undoes or fails the booking.
func (s *DirectoryService) publish(ctx context.Context, eventType, key string, payload any) {
	if err := s.Events.Publish(ctx, eventType, key, payload); err != nil {
		s.Logger.Error("KAFKA", fmt.Sprintf("Failed to publish %s event for %s: %v", eventType, key, err))
	}
}

func idKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

// deletedEvent is the payload of the *.deleted events.
type deletedEvent struct {
	ID int64 `json:"id"`
}
