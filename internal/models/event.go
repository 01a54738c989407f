package models

import "time"

// EventKind names a collection mutation.
type EventKind string

const (
	EventAdded   EventKind = "added"
	EventDeleted EventKind = "deleted"
)

// RecordEvent describes one committed mutation of the collection.
// Index is the record's position at the time of the mutation.
type RecordEvent struct {
	Kind   EventKind  `json:"kind"`
	Index  int        `json:"index"`
	Record WineRecord `json:"record"`
	At     time.Time  `json:"at"`
}
