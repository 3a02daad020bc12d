package models

import (
	"github.com/uptrace/bun"
)

// Venue is a physical performance location.
type Venue struct {
	bun.BaseModel `bun:"table:venues"`

	ID                 int64    `bun:"id,pk,autoincrement" json:"id"`
	Name               string   `bun:"name,notnull,unique" json:"name"`
	City               string   `bun:"city,notnull" json:"city"`
	State              string   `bun:"state,notnull" json:"state"`
	Address            string   `bun:"address,notnull" json:"address"`
	Phone              string   `bun:"phone,nullzero" json:"phone,omitempty"`
	Genres             []string `bun:"genres,notnull" json:"genres"`
	ImageLink          string   `bun:"image_link,nullzero" json:"image_link,omitempty"`
	FacebookLink       string   `bun:"facebook_link,nullzero" json:"facebook_link,omitempty"`
	Website            string   `bun:"website,nullzero" json:"website,omitempty"`
	SeekingTalent      bool     `bun:"seeking_talent,notnull,default:false" json:"seeking_talent"`
	SeekingDescription string   `bun:"seeking_description,type:text,nullzero" json:"seeking_description,omitempty"`
}

// VenueFields holds every mutable Venue attribute. It is the payload of both
// the create and the edit operations.
type VenueFields struct {
	Name               string   `json:"name" validate:"required"`
	City               string   `json:"city" validate:"required"`
	State              string   `json:"state" validate:"required"`
	Address            string   `json:"address" validate:"required"`
	Phone              string   `json:"phone"`
	Genres             []string `json:"genres" validate:"required,min=1,dive,required"`
	ImageLink          string   `json:"image_link" validate:"omitempty,url"`
	FacebookLink       string   `json:"facebook_link" validate:"omitempty,url"`
	Website            string   `json:"website" validate:"omitempty,url"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description"`
}

// Apply copies the mutable fields onto v, leaving its identity untouched.
func (f VenueFields) Apply(v *Venue) {
	v.Name = f.Name
	v.City = f.City
	v.State = f.State
	v.Address = f.Address
	v.Phone = f.Phone
	v.Genres = append([]string(nil), f.Genres...)
	v.ImageLink = f.ImageLink
	v.FacebookLink = f.FacebookLink
	v.Website = f.Website
	v.SeekingTalent = f.SeekingTalent
	v.SeekingDescription = f.SeekingDescription
}

// Fields returns the mutable part of v.
func (v Venue) Fields() VenueFields {
	return VenueFields{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		Genres:             append([]string(nil), v.Genres...),
		ImageLink:          v.ImageLink,
		FacebookLink:       v.FacebookLink,
		Website:            v.Website,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
	}
}
