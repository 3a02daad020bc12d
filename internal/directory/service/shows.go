package directory

import (
	"context"
	"fmt"

	"github.com/zherujiang/spotlight/internal/kafka"
	"github.com/zherujiang/spotlight/internal/models"
	"github.com/zherujiang/spotlight/internal/utils"
)

// ListShows returns every show, earliest first, with both sides resolved.
func (s *DirectoryService) ListShows(ctx context.Context) ([]ShowView, error) {
	rows, err := s.DB.ListShows(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]ShowView, 0, len(rows))
	for _, row := range rows {
		views = append(views, ShowView{
			VenueID:         row.VenueID,
			VenueName:       row.VenueName,
			ArtistID:        row.ArtistID,
			ArtistName:      row.ArtistName,
			ArtistImageLink: row.ArtistImageLink,
			StartTime:       utils.FormatTimestamp(row.StartTime),
		})
	}
	return views, nil
}

// CreateShow books an artist at a venue. A missing venue or artist comes
// back as a *db.ReferenceError.
func (s *DirectoryService) CreateShow(ctx context.Context, req models.ShowRequest) (*models.Show, error) {
	show, err := s.DB.CreateShow(ctx, req.VenueID, req.ArtistID, req.StartTime)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%d:%d", show.VenueID, show.ArtistID)
	s.Logger.LogBooking("CREATE", "show",
		fmt.Sprintf("Artist %d booked at venue %d for %s", show.ArtistID, show.VenueID, utils.FormatTimestamp(show.StartTime)))
	s.publish(ctx, kafka.ShowCreated, key, show)
	return show, nil
}
