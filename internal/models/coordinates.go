package models

// Coordinates is a WGS84 point in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location is a place name paired with where it resolved to.
type Location struct {
	Name        string      `json:"name"`
	Coordinates Coordinates `json:"coordinates"`
	Source      string      `json:"source,omitempty"` // "region" or "nominatim"
}
