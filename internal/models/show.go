package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Show books one artist at one venue at one time. It has no identity of its
// own: the key is (venue_id, artist_id, start_time).
type Show struct {
	bun.BaseModel `bun:"table:shows"`

	VenueID   int64     `bun:"venue_id,pk" json:"venue_id"`
	ArtistID  int64     `bun:"artist_id,pk" json:"artist_id"`
	StartTime time.Time `bun:"start_time,pk" json:"start_time"`

	Venue  *Venue  `bun:"rel:belongs-to,join:venue_id=id" json:"-"`
	Artist *Artist `bun:"rel:belongs-to,join:artist_id=id" json:"-"`
}

// ShowRequest is the booking payload.
type ShowRequest struct {
	VenueID   int64     `json:"venue_id" validate:"required,gt=0"`
	ArtistID  int64     `json:"artist_id" validate:"required,gt=0"`
	StartTime time.Time `json:"start_time" validate:"required"`
}

// VenueLocation is one row of the city-ordered venue listing.
type VenueLocation struct {
	ID    int64  `bun:"id"`
	Name  string `bun:"name"`
	City  string `bun:"city"`
	State string `bun:"state"`
}

// NamedEntity is an id/name projection used by listings and search.
type NamedEntity struct {
	ID   int64  `bun:"id" json:"id"`
	Name string `bun:"name" json:"name"`
}

// ArtistAppearance is a show seen from its venue: the performing artist and
// the start time.
type ArtistAppearance struct {
	ArtistID        int64     `bun:"artist_id"`
	ArtistName      string    `bun:"artist_name"`
	ArtistImageLink string    `bun:"artist_image_link"`
	StartTime       time.Time `bun:"start_time"`
}

// VenueAppearance is a show seen from its artist.
type VenueAppearance struct {
	VenueID        int64     `bun:"venue_id"`
	VenueName      string    `bun:"venue_name"`
	VenueImageLink string    `bun:"venue_image_link"`
	StartTime      time.Time `bun:"start_time"`
}

// ShowListing is a show joined with both of its sides.
type ShowListing struct {
	VenueID         int64     `bun:"venue_id"`
	VenueName       string    `bun:"venue_name"`
	ArtistID        int64     `bun:"artist_id"`
	ArtistName      string    `bun:"artist_name"`
	ArtistImageLink string    `bun:"artist_image_link"`
	StartTime       time.Time `bun:"start_time"`
}
