package db

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/zherujiang/spotlight/internal/models"
)

// GetVenue fetches one venue by id.
func (d *DB) GetVenue(ctx context.Context, id int64) (*models.Venue, error) {
	var venue models.Venue
	err := d.Bun.NewSelect().
		Model(&venue).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, classify(fmt.Sprintf("get venue %d", id), err)
	}
	return &venue, nil
}

// ListVenuesOrderedByCity returns every venue's location ordered by city.
// State and id break ties so venues sharing (city, state) stay adjacent and
// in insertion order.
func (d *DB) ListVenuesOrderedByCity(ctx context.Context) ([]models.VenueLocation, error) {
	var rows []models.VenueLocation
	err := d.Bun.NewRaw(`
		SELECT id, name, city, state
		FROM venues
		ORDER BY city ASC, state ASC, id ASC
	`).Scan(ctx, &rows)
	if err != nil {
		return nil, classify("list venues by city", err)
	}
	return rows, nil
}

// CountUpcomingShowsForVenue counts the venue's shows starting at or after asOf.
func (d *DB) CountUpcomingShowsForVenue(ctx context.Context, id int64, asOf time.Time) (int, error) {
	count, err := d.Bun.NewSelect().
		Model((*models.Show)(nil)).
		Where("venue_id = ?", id).
		Where("start_time >= ?", storedTime(asOf)).
		Count(ctx)
	if err != nil {
		return 0, classify(fmt.Sprintf("count upcoming shows for venue %d", id), err)
	}
	return count, nil
}

// ListShowsForVenueSplitByTime returns the venue's shows joined with their
// artists, partitioned into past (start_time < asOf) and upcoming
// (start_time >= asOf). Both slices are ordered by start time.
func (d *DB) ListShowsForVenueSplitByTime(ctx context.Context, id int64, asOf time.Time) (past, upcoming []models.ArtistAppearance, err error) {
	var rows []models.ArtistAppearance
	err = d.Bun.NewRaw(`
		SELECT
			s.artist_id,
			a.name AS artist_name,
			a.image_link AS artist_image_link,
			s.start_time
		FROM shows s
		JOIN artists a ON a.id = s.artist_id
		WHERE s.venue_id = ?
		ORDER BY s.start_time ASC, s.artist_id ASC
	`, id).Scan(ctx, &rows)
	if err != nil {
		return nil, nil, classify(fmt.Sprintf("list shows for venue %d", id), err)
	}

	cut := storedTime(asOf)
	past = []models.ArtistAppearance{}
	upcoming = []models.ArtistAppearance{}
	for _, row := range rows {
		if row.StartTime.Before(cut) {
			past = append(past, row)
		} else {
			upcoming = append(upcoming, row)
		}
	}
	return past, upcoming, nil
}

// SearchVenues returns venues whose name contains term, ignoring case. A
// blank term matches every venue.
func (d *DB) SearchVenues(ctx context.Context, term string) ([]models.NamedEntity, error) {
	return d.searchByName(ctx, "venues", term)
}

// CreateVenue inserts a new venue. A duplicate name fails with
// ErrConstraintViolation and leaves nothing behind.
func (d *DB) CreateVenue(ctx context.Context, fields models.VenueFields) (*models.Venue, error) {
	if err := requireVenueFields("create venue", fields); err != nil {
		return nil, err
	}

	var venue models.Venue
	fields.Apply(&venue)
	err := d.inTx(ctx, "create venue", func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&venue).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

// UpdateVenue replaces every mutable field of venue id.
func (d *DB) UpdateVenue(ctx context.Context, id int64, fields models.VenueFields) (*models.Venue, error) {
	op := fmt.Sprintf("update venue %d", id)
	if err := requireVenueFields(op, fields); err != nil {
		return nil, err
	}

	venue := models.Venue{ID: id}
	fields.Apply(&venue)
	err := d.inTx(ctx, op, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Model((*models.Venue)(nil)).Where("id = ?", id).Exists(ctx)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		_, err = tx.NewUpdate().
			Model(&venue).
			ExcludeColumn("id").
			WherePK().
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

// DeleteVenue removes venue id and, in the same transaction, every show
// booked there.
func (d *DB) DeleteVenue(ctx context.Context, id int64) error {
	return d.inTx(ctx, fmt.Sprintf("delete venue %d", id), func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Model((*models.Venue)(nil)).Where("id = ?", id).Exists(ctx)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		if _, err := tx.NewDelete().Model((*models.Show)(nil)).Where("venue_id = ?", id).Exec(ctx); err != nil {
			return err
		}
		_, err = tx.NewDelete().Model((*models.Venue)(nil)).Where("id = ?", id).Exec(ctx)
		return err
	})
}

func requireVenueFields(op string, f models.VenueFields) error {
	return requireFields(op, map[string]string{
		"name":    f.Name,
		"city":    f.City,
		"state":   f.State,
		"address": f.Address,
	}, f.Genres)
}
