// Package placement computes where each record's marker goes on the map.
// Records sharing a base coordinate are fanned out on a circle around it so
// every marker stays clickable. Nothing here is cached; positions are
// recomputed from the visible records on every call.
package placement

import (
	"math"

	"winemap/internal/models"
	"winemap/internal/regions"
)

// Radius is the fan-out distance in degrees.
const Radius = 0.03

// Position is the placement of one record.
type Position struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	BaseLat float64 `json:"baseLat"`
	BaseLng float64 `json:"baseLng"`
	// Slot is the record's index within its group, Group the group size.
	Slot  int `json:"slot"`
	Group int `json:"group"`
}

// Coordinates returns the offset marker position.
func (p Position) Coordinates() models.Coordinates {
	return models.Coordinates{Lat: p.Lat, Lng: p.Lng}
}

// BaseCoordinate is the region centre when the record's location is exactly
// a region name, and the record's stored coordinate otherwise.
func BaseCoordinate(r models.WineRecord) models.Coordinates {
	if region, ok := regions.Lookup(r.Location); ok {
		return region.Coordinates()
	}
	return r.Coordinates()
}

// Offset returns the displacement of member i of a group of n. A lone
// member is not displaced.
func Offset(i, n int) (dLat, dLng float64) {
	if n <= 1 {
		return 0, 0
	}
	angle := 2 * math.Pi * float64(i) / float64(n)
	return Radius * math.Cos(angle), Radius * math.Sin(angle)
}

// ComputePositions returns one position per record, in input order. Groups
// are keyed by exact equality of the base coordinate, and members are
// numbered in the order they appear in records.
func ComputePositions(records []models.WineRecord) []Position {
	bases := make([]models.Coordinates, len(records))
	sizes := make(map[models.Coordinates]int, len(records))
	for i, r := range records {
		bases[i] = BaseCoordinate(r)
		sizes[bases[i]]++
	}

	seen := make(map[models.Coordinates]int, len(sizes))
	out := make([]Position, len(records))
	for i, base := range bases {
		slot, n := seen[base], sizes[base]
		seen[base]++
		dLat, dLng := Offset(slot, n)
		out[i] = Position{
			Lat:     base.Lat + dLat,
			Lng:     base.Lng + dLng,
			BaseLat: base.Lat,
			BaseLng: base.Lng,
			Slot:    slot,
			Group:   n,
		}
	}
	return out
}
