package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zherujiang/spotlight/internal/directory/db"
	"github.com/zherujiang/spotlight/internal/logger"
	"github.com/zherujiang/spotlight/internal/models"
)

//go:embed fixtures/directory.yaml
var defaultFixture string

// Fixture is a directory snapshot. Venues and artists carry a key that shows
// use to refer to them.
type Fixture struct {
	Venues  []VenueFixture  `yaml:"venues"`
	Artists []ArtistFixture `yaml:"artists"`
	Shows   []ShowFixture   `yaml:"shows"`
}

type VenueFixture struct {
	Key                string   `yaml:"key"`
	Name               string   `yaml:"name"`
	City               string   `yaml:"city"`
	State              string   `yaml:"state"`
	Address            string   `yaml:"address"`
	Phone              string   `yaml:"phone"`
	Genres             []string `yaml:"genres"`
	ImageLink          string   `yaml:"image_link"`
	FacebookLink       string   `yaml:"facebook_link"`
	Website            string   `yaml:"website"`
	SeekingTalent      bool     `yaml:"seeking_talent"`
	SeekingDescription string   `yaml:"seeking_description"`
}

type ArtistFixture struct {
	Key                string   `yaml:"key"`
	Name               string   `yaml:"name"`
	City               string   `yaml:"city"`
	State              string   `yaml:"state"`
	Phone              string   `yaml:"phone"`
	Genres             []string `yaml:"genres"`
	ImageLink          string   `yaml:"image_link"`
	FacebookLink       string   `yaml:"facebook_link"`
	Website            string   `yaml:"website"`
	SeekingVenue       bool     `yaml:"seeking_venue"`
	SeekingDescription string   `yaml:"seeking_description"`
}

type ShowFixture struct {
	Venue     string    `yaml:"venue"`
	Artist    string    `yaml:"artist"`
	StartTime time.Time `yaml:"start_time"`
}

// Store is the part of the repository seeding writes through.
type Store interface {
	CreateVenue(ctx context.Context, fields models.VenueFields) (*models.Venue, error)
	CreateArtist(ctx context.Context, fields models.ArtistFields) (*models.Artist, error)
	CreateShow(ctx context.Context, venueID, artistID int64, startTime time.Time) (*models.Show, error)
	SearchVenues(ctx context.Context, term string) ([]models.NamedEntity, error)
	SearchArtists(ctx context.Context, term string) ([]models.NamedEntity, error)
}

// Summary counts what a run inserted and what was already present.
type Summary struct {
	Venues, Artists, Shows int
	Skipped                int
}

// Default returns the bundled sample directory.
func Default() (*Fixture, error) {
	return Parse(strings.NewReader(defaultFixture))
}

// Parse decodes a YAML fixture and checks that every show refers to a
// declared venue and artist.
func Parse(r io.Reader) (*Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}

	venues := make(map[string]bool, len(f.Venues))
	for _, v := range f.Venues {
		if v.Key == "" {
			return nil, fmt.Errorf("venue %q has no key", v.Name)
		}
		venues[v.Key] = true
	}
	artists := make(map[string]bool, len(f.Artists))
	for _, a := range f.Artists {
		if a.Key == "" {
			return nil, fmt.Errorf("artist %q has no key", a.Name)
		}
		artists[a.Key] = true
	}
	for i, s := range f.Shows {
		if !venues[s.Venue] {
			return nil, fmt.Errorf("show %d: unknown venue key %q", i, s.Venue)
		}
		if !artists[s.Artist] {
			return nil, fmt.Errorf("show %d: unknown artist key %q", i, s.Artist)
		}
		if s.StartTime.IsZero() {
			return nil, fmt.Errorf("show %d: start_time is required", i)
		}
	}
	return &f, nil
}

// Apply writes the fixture through store. Entities whose name already exists
// are reused, so running it twice leaves the directory unchanged.
func Apply(ctx context.Context, store Store, f *Fixture, log *logger.Logger) (Summary, error) {
	var sum Summary

	venueIDs := make(map[string]int64, len(f.Venues))
	for _, v := range f.Venues {
		venue, err := store.CreateVenue(ctx, v.fields())
		switch {
		case err == nil:
			venueIDs[v.Key] = venue.ID
			sum.Venues++
		case errors.Is(err, db.ErrConstraintViolation):
			id, lookupErr := existingID(ctx, store.SearchVenues, v.Name)
			if lookupErr != nil {
				return sum, fmt.Errorf("seed venue %q: %w", v.Name, err)
			}
			venueIDs[v.Key] = id
			sum.Skipped++
		default:
			return sum, fmt.Errorf("seed venue %q: %w", v.Name, err)
		}
	}

	artistIDs := make(map[string]int64, len(f.Artists))
	for _, a := range f.Artists {
		artist, err := store.CreateArtist(ctx, a.fields())
		switch {
		case err == nil:
			artistIDs[a.Key] = artist.ID
			sum.Artists++
		case errors.Is(err, db.ErrConstraintViolation):
			id, lookupErr := existingID(ctx, store.SearchArtists, a.Name)
			if lookupErr != nil {
				return sum, fmt.Errorf("seed artist %q: %w", a.Name, err)
			}
			artistIDs[a.Key] = id
			sum.Skipped++
		default:
			return sum, fmt.Errorf("seed artist %q: %w", a.Name, err)
		}
	}

	for _, s := range f.Shows {
		_, err := store.CreateShow(ctx, venueIDs[s.Venue], artistIDs[s.Artist], s.StartTime)
		switch {
		case err == nil:
			sum.Shows++
		case errors.Is(err, db.ErrConstraintViolation):
			sum.Skipped++
		default:
			return sum, fmt.Errorf("seed show %s/%s: %w", s.Venue, s.Artist, err)
		}
	}

	log.LogDatabase("SEED", "directory", fmt.Sprintf("inserted %d venues, %d artists, %d shows; %d already present",
		sum.Venues, sum.Artists, sum.Shows, sum.Skipped))
	return sum, nil
}

// existingID resolves name through a search, requiring an exact match.
func existingID(ctx context.Context, search func(context.Context, string) ([]models.NamedEntity, error), name string) (int64, error) {
	rows, err := search(ctx, name)
	if err != nil {
		return 0, err
	}
	for _, row := range rows {
		if row.Name == name {
			return row.ID, nil
		}
	}
	return 0, db.ErrNotFound
}

func (v VenueFixture) fields() models.VenueFields {
	return models.VenueFields{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		Genres:             v.Genres,
		ImageLink:          v.ImageLink,
		FacebookLink:       v.FacebookLink,
		Website:            v.Website,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
	}
}

func (a ArtistFixture) fields() models.ArtistFields {
	return models.ArtistFields{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Genres:             a.Genres,
		ImageLink:          a.ImageLink,
		FacebookLink:       a.FacebookLink,
		Website:            a.Website,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
	}
}
