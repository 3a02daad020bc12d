package directory

import (
	"github.com/zherujiang/spotlight/internal/models"
	"github.com/zherujiang/spotlight/internal/utils"
)

// EntitySummary is one venue or artist in a grouped listing or search result.
type EntitySummary struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// CityGroup collects the venues sharing a (city, state) pair.
type CityGroup struct {
	City   string          `json:"city"`
	State  string          `json:"state"`
	Venues []EntitySummary `json:"venues"`
}

type SearchResult struct {
	Count int             `json:"count"`
	Data  []EntitySummary `json:"data"`
}

// ShowView is one row of the flat shows listing.
type ShowView struct {
	VenueID         int64  `json:"venue_id"`
	VenueName       string `json:"venue_name"`
	ArtistID        int64  `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link,omitempty"`
	StartTime       string `json:"start_time"`
}

// ArtistShowView is a show on a venue page.
type ArtistShowView struct {
	ArtistID        int64  `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link,omitempty"`
	StartTime       string `json:"start_time"`
}

// VenueShowView is a show on an artist page.
type VenueShowView struct {
	VenueID        int64  `json:"venue_id"`
	VenueName      string `json:"venue_name"`
	VenueImageLink string `json:"venue_image_link,omitempty"`
	StartTime      string `json:"start_time"`
}

type VenueDetail struct {
	models.Venue
	PastShows          []ArtistShowView `json:"past_shows"`
	UpcomingShows      []ArtistShowView `json:"upcoming_shows"`
	PastShowsCount     int              `json:"past_shows_count"`
	UpcomingShowsCount int              `json:"upcoming_shows_count"`
}

type ArtistDetail struct {
	models.Artist
	PastShows          []VenueShowView `json:"past_shows"`
	UpcomingShows      []VenueShowView `json:"upcoming_shows"`
	PastShowsCount     int             `json:"past_shows_count"`
	UpcomingShowsCount int             `json:"upcoming_shows_count"`
}

func artistShowViews(rows []models.ArtistAppearance) []ArtistShowView {
	views := make([]ArtistShowView, 0, len(rows))
	for _, row := range rows {
		views = append(views, ArtistShowView{
			ArtistID:        row.ArtistID,
			ArtistName:      row.ArtistName,
			ArtistImageLink: row.ArtistImageLink,
			StartTime:       utils.FormatTimestamp(row.StartTime),
		})
	}
	return views
}

func venueShowViews(rows []models.VenueAppearance) []VenueShowView {
	views := make([]VenueShowView, 0, len(rows))
	for _, row := range rows {
		views = append(views, VenueShowView{
			VenueID:        row.VenueID,
			VenueName:      row.VenueName,
			VenueImageLink: row.VenueImageLink,
			StartTime:      utils.FormatTimestamp(row.StartTime),
		})
	}
	return views
}
