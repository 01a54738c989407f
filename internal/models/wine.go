package models

import (
	"time"

	"github.com/google/uuid"
)

// WineType is the style of a wine. The zero value is not a valid type;
// use Normalize to apply the default.
type WineType string

const (
	TypeRed       WineType = "red"
	TypeWhite     WineType = "white"
	TypeRose      WineType = "rose"
	TypeSparkling WineType = "sparkling"
	TypeOrange    WineType = "orange"
	TypeOther     WineType = "other"

	// TypeAll is the filter wildcard. It is never stored on a record.
	TypeAll WineType = "all"
)

// WineTypes lists the valid types in form order. The first entry is the default.
var WineTypes = []WineType{TypeRed, TypeWhite, TypeRose, TypeSparkling, TypeOrange, TypeOther}

// Valid reports whether t is one of WineTypes.
func (t WineType) Valid() bool {
	for _, v := range WineTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Normalize returns the default type for an empty value and t otherwise.
func (t WineType) Normalize() WineType {
	if t == "" {
		return WineTypes[0]
	}
	return t
}

// WineRecord is one tasting note. Records are never edited after creation.
type WineRecord struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Grape     string    `json:"grape,omitempty"`
	Comment   string    `json:"comment,omitempty"`
	Type      WineType  `json:"type"`
	Location  string    `json:"location"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Coordinates returns the stored position of the record.
func (w WineRecord) Coordinates() Coordinates {
	return Coordinates{Lat: w.Lat, Lng: w.Lng}
}

// NewWineRecord builds a record from a draft and the coordinates its
// location resolved to. image is the already encoded image, if any.
func NewWineRecord(d Draft, at Coordinates, image string) WineRecord {
	return WineRecord{
		ID:        uuid.New(),
		Name:      d.Name,
		Grape:     d.Grape,
		Comment:   d.Comment,
		Type:      d.Type.Normalize(),
		Location:  d.Location,
		Lat:       at.Lat,
		Lng:       at.Lng,
		Image:     image,
		CreatedAt: time.Now().UTC(),
	}
}

// Draft is the form state a record is created from.
type Draft struct {
	Name     string   `json:"name"`
	Grape    string   `json:"grape,omitempty"`
	Comment  string   `json:"comment,omitempty"`
	Type     WineType `json:"type,omitempty"`
	Location string   `json:"location"`
	// ImageURL is kept verbatim when no image file is attached.
	ImageURL string `json:"imageUrl,omitempty"`
	// Image holds the bytes of an attached image file.
	Image []byte `json:"image,omitempty"`
}

// Reset clears the draft back to an empty form.
func (d *Draft) Reset() {
	*d = Draft{}
}
