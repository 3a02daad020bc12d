package db

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/zherujiang/spotlight/internal/models"
)

// GetArtist fetches one artist by id.
func (d *DB) GetArtist(ctx context.Context, id int64) (*models.Artist, error) {
	var artist models.Artist
	err := d.Bun.NewSelect().
		Model(&artist).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, classify(fmt.Sprintf("get artist %d", id), err)
	}
	return &artist, nil
}

// ListArtists returns the id and name of every artist, ordered by name.
func (d *DB) ListArtists(ctx context.Context) ([]models.NamedEntity, error) {
	var rows []models.NamedEntity
	err := d.Bun.NewRaw(`SELECT id, name FROM artists ORDER BY name ASC, id ASC`).Scan(ctx, &rows)
	if err != nil {
		return nil, classify("list artists", err)
	}
	return rows, nil
}

// CountUpcomingShowsForArtist counts the artist's shows starting at or after asOf.
func (d *DB) CountUpcomingShowsForArtist(ctx context.Context, id int64, asOf time.Time) (int, error) {
	count, err := d.Bun.NewSelect().
		Model((*models.Show)(nil)).
		Where("artist_id = ?", id).
		Where("start_time >= ?", storedTime(asOf)).
		Count(ctx)
	if err != nil {
		return 0, classify(fmt.Sprintf("count upcoming shows for artist %d", id), err)
	}
	return count, nil
}

// ListShowsForArtistSplitByTime is the artist-side counterpart of
// ListShowsForVenueSplitByTime, joined against venues.
func (d *DB) ListShowsForArtistSplitByTime(ctx context.Context, id int64, asOf time.Time) (past, upcoming []models.VenueAppearance, err error) {
	var rows []models.VenueAppearance
	err = d.Bun.NewRaw(`
		SELECT
			s.venue_id,
			v.name AS venue_name,
			v.image_link AS venue_image_link,
			s.start_time
		FROM shows s
		JOIN venues v ON v.id = s.venue_id
		WHERE s.artist_id = ?
		ORDER BY s.start_time ASC, s.venue_id ASC
	`, id).Scan(ctx, &rows)
	if err != nil {
		return nil, nil, classify(fmt.Sprintf("list shows for artist %d", id), err)
	}

	cut := storedTime(asOf)
	past = []models.VenueAppearance{}
	upcoming = []models.VenueAppearance{}
	for _, row := range rows {
		if row.StartTime.Before(cut) {
			past = append(past, row)
		} else {
			upcoming = append(upcoming, row)
		}
	}
	return past, upcoming, nil
}

// SearchArtists returns artists whose name contains term, ignoring case.
func (d *DB) SearchArtists(ctx context.Context, term string) ([]models.NamedEntity, error) {
	return d.searchByName(ctx, "artists", term)
}

func (d *DB) CreateArtist(ctx context.Context, fields models.ArtistFields) (*models.Artist, error) {
	if err := requireArtistFields("create artist", fields); err != nil {
		return nil, err
	}

	var artist models.Artist
	fields.Apply(&artist)
	err := d.inTx(ctx, "create artist", func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&artist).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

func (d *DB) UpdateArtist(ctx context.Context, id int64, fields models.ArtistFields) (*models.Artist, error) {
	op := fmt.Sprintf("update artist %d", id)
	if err := requireArtistFields(op, fields); err != nil {
		return nil, err
	}

	artist := models.Artist{ID: id}
	fields.Apply(&artist)
	err := d.inTx(ctx, op, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Model((*models.Artist)(nil)).Where("id = ?", id).Exists(ctx)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		_, err = tx.NewUpdate().
			Model(&artist).
			ExcludeColumn("id").
			WherePK().
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

// DeleteArtist removes artist id together with all of its shows.
func (d *DB) DeleteArtist(ctx context.Context, id int64) error {
	return d.inTx(ctx, fmt.Sprintf("delete artist %d", id), func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Model((*models.Artist)(nil)).Where("id = ?", id).Exists(ctx)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		if _, err := tx.NewDelete().Model((*models.Show)(nil)).Where("artist_id = ?", id).Exec(ctx); err != nil {
			return err
		}
		_, err = tx.NewDelete().Model((*models.Artist)(nil)).Where("id = ?", id).Exec(ctx)
		return err
	})
}

func requireArtistFields(op string, f models.ArtistFields) error {
	return requireFields(op, map[string]string{
		"name":  f.Name,
		"city":  f.City,
		"state": f.State,
	}, f.Genres)
}
