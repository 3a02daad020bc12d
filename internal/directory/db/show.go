package db

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/zherujiang/spotlight/internal/models"
)

// CreateShow books artistID at venueID. Both references are resolved inside
// the transaction; if either is missing nothing is written and the returned
// error is a *ReferenceError naming the missing side.
func (d *DB) CreateShow(ctx context.Context, venueID, artistID int64, startTime time.Time) (*models.Show, error) {
	show := models.Show{
		VenueID:   venueID,
		ArtistID:  artistID,
		StartTime: storedTime(startTime),
	}
	err := d.inTx(ctx, "create show", func(ctx context.Context, tx bun.Tx) error {
		venueExists, err := tx.NewSelect().Model((*models.Venue)(nil)).Where("id = ?", venueID).Exists(ctx)
		if err != nil {
			return err
		}
		if !venueExists {
			return &ReferenceError{Entity: "venue", ID: venueID}
		}

		artistExists, err := tx.NewSelect().Model((*models.Artist)(nil)).Where("id = ?", artistID).Exists(ctx)
		if err != nil {
			return err
		}
		if !artistExists {
			return &ReferenceError{Entity: "artist", ID: artistID}
		}

		_, err = tx.NewInsert().Model(&show).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &show, nil
}

// ListShows returns every show joined with its venue and artist, earliest
// first.
func (d *DB) ListShows(ctx context.Context) ([]models.ShowListing, error) {
	var rows []models.ShowListing
	err := d.Bun.NewRaw(`
		SELECT
			s.venue_id,
			v.name AS venue_name,
			s.artist_id,
			a.name AS artist_name,
			a.image_link AS artist_image_link,
			s.start_time
		FROM shows s
		JOIN venues v ON v.id = s.venue_id
		JOIN artists a ON a.id = s.artist_id
		ORDER BY s.start_time ASC, s.venue_id ASC, s.artist_id ASC
	`).Scan(ctx, &rows)
	if err != nil {
		return nil, classify("list shows", err)
	}
	return rows, nil
}
