package directory

import (
	"context"
	"fmt"

	"github.com/zherujiang/spotlight/internal/kafka"
	"github.com/zherujiang/spotlight/internal/models"
)

// ListArtists returns every artist's id and name, ordered by name.
func (s *DirectoryService) ListArtists(ctx context.Context) ([]models.NamedEntity, error) {
	return s.DB.ListArtists(ctx)
}

func (s *DirectoryService) SearchArtists(ctx context.Context, term string) (*SearchResult, error) {
	rows, err := s.DB.SearchArtists(ctx, term)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, rows, s.DB.CountUpcomingShowsForArtist)
}

func (s *DirectoryService) ArtistDetail(ctx context.Context, id int64) (*ArtistDetail, error) {
	artist, err := s.DB.GetArtist(ctx, id)
	if err != nil {
		return nil, err
	}
	past, upcoming, err := s.DB.ListShowsForArtistSplitByTime(ctx, id, s.Now())
	if err != nil {
		return nil, err
	}
	return &ArtistDetail{
		Artist:             *artist,
		PastShows:          venueShowViews(past),
		UpcomingShows:      venueShowViews(upcoming),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

func (s *DirectoryService) GetArtist(ctx context.Context, id int64) (*models.Artist, error) {
	return s.DB.GetArtist(ctx, id)
}

func (s *DirectoryService) CreateArtist(ctx context.Context, fields models.ArtistFields) (*models.Artist, error) {
	artist, err := s.DB.CreateArtist(ctx, fields)
	if err != nil {
		return nil, err
	}
	s.Logger.LogBooking("CREATE", "artist", fmt.Sprintf("Artist %d %q listed", artist.ID, artist.Name))
	s.publish(ctx, kafka.ArtistCreated, idKey(artist.ID), artist)
	return artist, nil
}

func (s *DirectoryService) UpdateArtist(ctx context.Context, id int64, fields models.ArtistFields) (*models.Artist, error) {
	artist, err := s.DB.UpdateArtist(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.Logger.LogBooking("UPDATE", "artist", fmt.Sprintf("Artist %d updated", id))
	s.publish(ctx, kafka.ArtistUpdated, idKey(id), artist)
	return artist, nil
}

func (s *DirectoryService) DeleteArtist(ctx context.Context, id int64) error {
	if err := s.DB.DeleteArtist(ctx, id); err != nil {
		return err
	}
	s.Logger.LogBooking("DELETE", "artist", fmt.Sprintf("Artist %d deleted", id))
	s.publish(ctx, kafka.ArtistDeleted, idKey(id), deletedEvent{ID: id})
	return nil
}
