package placement

import (
	"strings"

	"winemap/internal/imageenc"
	"winemap/internal/models"
	"winemap/internal/regions"
)

// PinColor is the marker colour for a wine type.
type PinColor string

const (
	PinRed    PinColor = "red"
	PinBlue   PinColor = "blue"
	PinGreen  PinColor = "green"
	PinPink   PinColor = "pink"
	PinOrange PinColor = "orange"
	PinGrey   PinColor = "grey"
)

var pinColors = map[models.WineType]PinColor{
	models.TypeRed:       PinRed,
	models.TypeWhite:     PinBlue,
	models.TypeRose:      PinPink,
	models.TypeSparkling: PinGreen,
	models.TypeOrange:    PinOrange,
	models.TypeOther:     PinGrey,
}

// ColorFor returns the pin colour of t. Unknown types get the default
// type's colour.
func ColorFor(t models.WineType) PinColor {
	if c, ok := pinColors[t]; ok {
		return c
	}
	return pinColors[models.WineTypes[0]]
}

// MarkerStyle is what the map needs to draw a pin.
type MarkerStyle struct {
	Color PinColor `json:"color"`
}

// Popup is the content shown when a marker is clicked.
type Popup struct {
	Name    string          `json:"name"`
	Type    models.WineType `json:"type"`
	Grape   string          `json:"grape,omitempty"`
	Comment string          `json:"comment,omitempty"`
	Image   string          `json:"image,omitempty"`
}

// Marker is one (position, style, popup) triple for the map.
type Marker struct {
	ID       string      `json:"id"`
	Position Position    `json:"position"`
	Style    MarkerStyle `json:"style"`
	Popup    Popup       `json:"popup"`
}

// Markers builds map markers for records, in input order.
func Markers(records []models.WineRecord) []Marker {
	positions := ComputePositions(records)
	out := make([]Marker, len(records))
	for i, r := range records {
		out[i] = Marker{
			ID:       r.ID.String(),
			Position: positions[i],
			Style:    MarkerStyle{Color: ColorFor(r.Type)},
			Popup: Popup{
				Name:    r.Name,
				Type:    r.Type,
				Grape:   r.Grape,
				Comment: r.Comment,
				Image:   popupImage(r.Image),
			},
		}
	}
	return out
}

// popupImage keeps inline images and web links; anything else is dropped.
func popupImage(image string) string {
	if strings.HasPrefix(image, "data:image/") || imageenc.IsWebURL(image) {
		return image
	}
	return ""
}

// Overlay is a static region annotation: a circle with a label.
type Overlay struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Radius float64 `json:"radius"`
	Label  string  `json:"label"`
}

// Overlays returns one overlay per named region.
func Overlays() []Overlay {
	all := regions.All()
	out := make([]Overlay, len(all))
	for i, r := range all {
		out[i] = Overlay{Lat: r.Lat, Lng: r.Lng, Radius: r.Radius, Label: r.Name}
	}
	return out
}
