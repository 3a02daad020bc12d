package directory_api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/zherujiang/spotlight/internal/models"
	"github.com/zherujiang/spotlight/internal/utils"
)

// formBool reads a checkbox. Browsers send "y" or "on" for a ticked box and
// nothing otherwise.
func formBool(form url.Values, key string) bool {
	switch strings.ToLower(strings.TrimSpace(form.Get(key))) {
	case "y", "yes", "on", "true", "1":
		return true
	}
	return false
}

// formList reads a multi-select, dropping blank entries.
func formList(form url.Values, key string) []string {
	var items []string
	for _, v := range form[key] {
		if v = strings.TrimSpace(v); v != "" {
			items = append(items, v)
		}
	}
	return items
}

func formID(form url.Values, key string) (int64, error) {
	raw := strings.TrimSpace(form.Get(key))
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return id, nil
}

func venueFieldsFromForm(form url.Values, f *models.VenueFields) error {
	*f = models.VenueFields{
		Name:               strings.TrimSpace(form.Get("name")),
		City:               strings.TrimSpace(form.Get("city")),
		State:              strings.TrimSpace(form.Get("state")),
		Address:            strings.TrimSpace(form.Get("address")),
		Phone:              strings.TrimSpace(form.Get("phone")),
		Genres:             formList(form, "genres"),
		ImageLink:          strings.TrimSpace(form.Get("image_link")),
		FacebookLink:       strings.TrimSpace(form.Get("facebook_link")),
		Website:            strings.TrimSpace(form.Get("website")),
		SeekingTalent:      formBool(form, "seeking_talent"),
		SeekingDescription: strings.TrimSpace(form.Get("seeking_description")),
	}
	return nil
}

func artistFieldsFromForm(form url.Values, f *models.ArtistFields) error {
	*f = models.ArtistFields{
		Name:               strings.TrimSpace(form.Get("name")),
		City:               strings.TrimSpace(form.Get("city")),
		State:              strings.TrimSpace(form.Get("state")),
		Phone:              strings.TrimSpace(form.Get("phone")),
		Genres:             formList(form, "genres"),
		ImageLink:          strings.TrimSpace(form.Get("image_link")),
		FacebookLink:       strings.TrimSpace(form.Get("facebook_link")),
		Website:            strings.TrimSpace(form.Get("website")),
		SeekingVenue:       formBool(form, "seeking_venue"),
		SeekingDescription: strings.TrimSpace(form.Get("seeking_description")),
	}
	return nil
}

// showRequestFromForm reads the booking form. start_time is either RFC 3339
// or "2006-01-02 15:04:05" in UTC. Missing values stay zero for the
// validator to reject.
func showRequestFromForm(form url.Values, req *models.ShowRequest) error {
	venueID, err := formID(form, "venue_id")
	if err != nil {
		return err
	}
	artistID, err := formID(form, "artist_id")
	if err != nil {
		return err
	}
	*req = models.ShowRequest{VenueID: venueID, ArtistID: artistID}

	if raw := strings.TrimSpace(form.Get("start_time")); raw != "" {
		start, err := utils.ParseTimestamp(raw)
		if err != nil {
			return fmt.Errorf("invalid start_time %q", raw)
		}
		req.StartTime = start
	}
	return nil
}
