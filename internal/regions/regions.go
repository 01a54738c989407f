// Package regions holds the curated table of well-known wine regions.
// The table is used both as map overlay annotations and as the first
// choice when a place name is resolved to coordinates.
package regions

import "winemap/internal/models"

// DefaultRadius is the overlay radius, in metres, used for every region.
const DefaultRadius = 50000

// NamedRegion is one entry of the table.
type NamedRegion struct {
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Radius float64 `json:"radius"`
}

// Coordinates returns the region centre.
func (r NamedRegion) Coordinates() models.Coordinates {
	return models.Coordinates{Lat: r.Lat, Lng: r.Lng}
}

var table = []NamedRegion{
	{Name: "ボルドー", Lat: 44.8378, Lng: -0.5792, Radius: DefaultRadius},
	{Name: "ブルゴーニュ", Lat: 47.0525, Lng: 4.3837, Radius: DefaultRadius},
	{Name: "シャンパーニュ", Lat: 49.2583, Lng: 4.0317, Radius: DefaultRadius},
	{Name: "ロワール", Lat: 47.3941, Lng: 0.6848, Radius: DefaultRadius},
	{Name: "アルザス", Lat: 48.0794, Lng: 7.3585, Radius: DefaultRadius},
	{Name: "ローヌ", Lat: 44.1381, Lng: 4.8075, Radius: DefaultRadius},
	{Name: "トスカーナ", Lat: 43.7711, Lng: 11.2486, Radius: DefaultRadius},
	{Name: "ピエモンテ", Lat: 44.7002, Lng: 8.0350, Radius: DefaultRadius},
	{Name: "ヴェネト", Lat: 45.4384, Lng: 10.9916, Radius: DefaultRadius},
	{Name: "リオハ", Lat: 42.4650, Lng: -2.4500, Radius: DefaultRadius},
	{Name: "ドウロ", Lat: 41.1621, Lng: -7.7870, Radius: DefaultRadius},
	{Name: "モーゼル", Lat: 49.9161, Lng: 7.0700, Radius: DefaultRadius},
	{Name: "ナパ", Lat: 38.2975, Lng: -122.2869, Radius: DefaultRadius},
	{Name: "ソノマ", Lat: 38.2919, Lng: -122.4580, Radius: DefaultRadius},
	{Name: "バロッサ", Lat: -34.5333, Lng: 138.9500, Radius: DefaultRadius},
	{Name: "マールボロ", Lat: -41.5167, Lng: 173.9500, Radius: DefaultRadius},
	{Name: "メンドーサ", Lat: -32.8895, Lng: -68.8458, Radius: DefaultRadius},
	{Name: "山梨", Lat: 35.6639, Lng: 138.5683, Radius: DefaultRadius},
}

// Lookup returns the region whose name is exactly place.
func Lookup(place string) (NamedRegion, bool) {
	for _, r := range table {
		if r.Name == place {
			return r, true
		}
	}
	return NamedRegion{}, false
}

// IsRegion reports whether place names a region in the table.
func IsRegion(place string) bool {
	_, ok := Lookup(place)
	return ok
}

// All returns a copy of the table in its curated order.
func All() []NamedRegion {
	out := make([]NamedRegion, len(table))
	copy(out, table)
	return out
}
