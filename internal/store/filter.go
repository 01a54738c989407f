package store

import (
	"strings"

	"winemap/internal/models"
)

// Criteria selects records for the list and map views. Empty fields match
// everything; Type also accepts models.TypeAll.
type Criteria struct {
	Type     models.WineType
	Grape    string
	Location string
}

// Match reports whether r satisfies c. Substring matches are case-sensitive.
func (c Criteria) Match(r models.WineRecord) bool {
	if c.Type != "" && c.Type != models.TypeAll && r.Type != c.Type {
		return false
	}
	if c.Grape != "" && !strings.Contains(r.Grape, c.Grape) {
		return false
	}
	if c.Location != "" && !strings.Contains(r.Location, c.Location) {
		return false
	}
	return true
}

// Filter returns the records matching c in their original order. The input
// slice is not modified.
func Filter(records []models.WineRecord, c Criteria) []models.WineRecord {
	out := make([]models.WineRecord, 0, len(records))
	for _, r := range records {
		if c.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Entry is a record together with its position in the collection.
type Entry struct {
	Index  int               `json:"index"`
	Record models.WineRecord `json:"record"`
}

// FilterEntries is Filter keeping each record's collection index, which is
// what Delete takes.
func FilterEntries(records []models.WineRecord, c Criteria) []Entry {
	out := make([]Entry, 0, len(records))
	for i, r := range records {
		if c.Match(r) {
			out = append(out, Entry{Index: i, Record: r})
		}
	}
	return out
}
