// Package storage persists the record collection into a single named slot.
// A slot holds the whole serialized collection as one blob and is rewritten
// wholesale on every mutation.
package storage

import (
	"context"
	"errors"
)

// ErrSlotEmpty is returned by Slot.Read when nothing was written yet.
var ErrSlotEmpty = errors.New("storage slot is empty")

// Slot is one named blob in some backend.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, blob []byte) error
}
