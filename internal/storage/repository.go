package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"winemap/internal/models"
)

// Repository reads and writes the collection through a Slot.
type Repository struct {
	slot   Slot
	logger *zap.Logger
}

func NewRepository(slot Slot, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{slot: slot, logger: logger}
}

// Load reads and decodes the collection. An empty slot is an empty
// collection; any other failure is returned.
func (r *Repository) Load(ctx context.Context) ([]models.WineRecord, error) {
	blob, err := r.slot.Read(ctx)
	if errors.Is(err, ErrSlotEmpty) {
		return []models.WineRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slot: %w", err)
	}
	return Decode(blob)
}

// Hydrate is Load for process startup: an unreadable or unparseable slot
// yields an empty collection and a warning, never an error.
func (r *Repository) Hydrate(ctx context.Context) []models.WineRecord {
	records, err := r.Load(ctx)
	if err != nil {
		r.logger.Warn("starting with an empty collection", zap.Error(err))
		return []models.WineRecord{}
	}
	r.logger.Info("collection loaded", zap.Int("records", len(records)))
	return records
}

// Save overwrites the slot with the full collection.
func (r *Repository) Save(ctx context.Context, records []models.WineRecord) error {
	blob, err := Encode(records)
	if err != nil {
		return err
	}
	if err := r.slot.Write(ctx, blob); err != nil {
		return fmt.Errorf("write slot: %w", err)
	}
	return nil
}
