package models

import (
	"github.com/uptrace/bun"
)

// Artist is a performer.
type Artist struct {
	bun.BaseModel `bun:"table:artists"`

	ID                 int64    `bun:"id,pk,autoincrement" json:"id"`
	Name               string   `bun:"name,notnull,unique" json:"name"`
	City               string   `bun:"city,notnull" json:"city"`
	State              string   `bun:"state,notnull" json:"state"`
	Phone              string   `bun:"phone,nullzero" json:"phone,omitempty"`
	Genres             []string `bun:"genres,notnull" json:"genres"`
	ImageLink          string   `bun:"image_link,nullzero" json:"image_link,omitempty"`
	FacebookLink       string   `bun:"facebook_link,nullzero" json:"facebook_link,omitempty"`
	Website            string   `bun:"website,nullzero" json:"website,omitempty"`
	SeekingVenue       bool     `bun:"seeking_venue,notnull,default:false" json:"seeking_venue"`
	SeekingDescription string   `bun:"seeking_description,type:text,nullzero" json:"seeking_description,omitempty"`
}

// ArtistFields holds every mutable Artist attribute.
type ArtistFields struct {
	Name               string   `json:"name" validate:"required"`
	City               string   `json:"city" validate:"required"`
	State              string   `json:"state" validate:"required"`
	Phone              string   `json:"phone"`
	Genres             []string `json:"genres" validate:"required,min=1,dive,required"`
	ImageLink          string   `json:"image_link" validate:"omitempty,url"`
	FacebookLink       string   `json:"facebook_link" validate:"omitempty,url"`
	Website            string   `json:"website" validate:"omitempty,url"`
	SeekingVenue       bool     `json:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description"`
}

func (f ArtistFields) Apply(a *Artist) {
	a.Name = f.Name
	a.City = f.City
	a.State = f.State
	a.Phone = f.Phone
	a.Genres = append([]string(nil), f.Genres...)
	a.ImageLink = f.ImageLink
	a.FacebookLink = f.FacebookLink
	a.Website = f.Website
	a.SeekingVenue = f.SeekingVenue
	a.SeekingDescription = f.SeekingDescription
}

func (a Artist) Fields() ArtistFields {
	return ArtistFields{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Genres:             append([]string(nil), a.Genres...),
		ImageLink:          a.ImageLink,
		FacebookLink:       a.FacebookLink,
		Website:            a.Website,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
	}
}
