package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/zherujiang/spotlight/internal/kafka"
	"github.com/zherujiang/spotlight/internal/models"
)

// VenuesByCity groups every venue by (city, state). The store returns venues
// sorted by that key, so one pass opening a new group on each key change is
// enough.
func (s *DirectoryService) VenuesByCity(ctx context.Context) ([]CityGroup, error) {
	rows, err := s.DB.ListVenuesOrderedByCity(ctx)
	if err != nil {
		return nil, err
	}

	asOf := s.Now()
	groups := []CityGroup{}
	for _, row := range rows {
		upcoming, err := s.DB.CountUpcomingShowsForVenue(ctx, row.ID, asOf)
		if err != nil {
			return nil, err
		}
		entry := EntitySummary{ID: row.ID, Name: row.Name, NumUpcomingShows: upcoming}

		last := len(groups) - 1
		if last >= 0 && groups[last].City == row.City && groups[last].State == row.State {
			groups[last].Venues = append(groups[last].Venues, entry)
			continue
		}
		groups = append(groups, CityGroup{
			City:   row.City,
			State:  row.State,
			Venues: []EntitySummary{entry},
		})
	}
	return groups, nil
}

func (s *DirectoryService) SearchVenues(ctx context.Context, term string) (*SearchResult, error) {
	rows, err := s.DB.SearchVenues(ctx, term)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, rows, s.DB.CountUpcomingShowsForVenue)
}

// VenueDetail assembles the venue page: the venue and its shows split
// around the current instant.
func (s *DirectoryService) VenueDetail(ctx context.Context, id int64) (*VenueDetail, error) {
	venue, err := s.DB.GetVenue(ctx, id)
	if err != nil {
		return nil, err
	}
	past, upcoming, err := s.DB.ListShowsForVenueSplitByTime(ctx, id, s.Now())
	if err != nil {
		return nil, err
	}
	return &VenueDetail{
		Venue:              *venue,
		PastShows:          artistShowViews(past),
		UpcomingShows:      artistShowViews(upcoming),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

// GetVenue returns the stored venue, as used to pre-fill the edit form.
func (s *DirectoryService) GetVenue(ctx context.Context, id int64) (*models.Venue, error) {
	return s.DB.GetVenue(ctx, id)
}

func (s *DirectoryService) CreateVenue(ctx context.Context, fields models.VenueFields) (*models.Venue, error) {
	venue, err := s.DB.CreateVenue(ctx, fields)
	if err != nil {
		return nil, err
	}
	s.Logger.LogBooking("CREATE", "venue", fmt.Sprintf("Venue %d %q listed", venue.ID, venue.Name))
	s.publish(ctx, kafka.VenueCreated, idKey(venue.ID), venue)
	return venue, nil
}

func (s *DirectoryService) UpdateVenue(ctx context.Context, id int64, fields models.VenueFields) (*models.Venue, error) {
	venue, err := s.DB.UpdateVenue(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.Logger.LogBooking("UPDATE", "venue", fmt.Sprintf("Venue %d updated", id))
	s.publish(ctx, kafka.VenueUpdated, idKey(id), venue)
	return venue, nil
}

// DeleteVenue removes the venue together with its shows.
func (s *DirectoryService) DeleteVenue(ctx context.Context, id int64) error {
	if err := s.DB.DeleteVenue(ctx, id); err != nil {
		return err
	}
	s.Logger.LogBooking("DELETE", "venue", fmt.Sprintf("Venue %d deleted", id))
	s.publish(ctx, kafka.VenueDeleted, idKey(id), deletedEvent{ID: id})
	return nil
}

type upcomingCounter func(ctx context.Context, id int64, asOf time.Time) (int, error)

// summarize annotates search hits with their upcoming show counts.
func (s *DirectoryService) summarize(ctx context.Context, rows []models.NamedEntity, count upcomingCounter) (*SearchResult, error) {
	asOf := s.Now()
	data := make([]EntitySummary, 0, len(rows))
	for _, row := range rows {
		upcoming, err := count(ctx, row.ID, asOf)
		if err != nil {
			return nil, err
		}
		data = append(data, EntitySummary{ID: row.ID, Name: row.Name, NumUpcomingShows: upcoming})
	}
	return &SearchResult{Count: len(data), Data: data}, nil
}
