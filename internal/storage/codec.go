package storage

import (
	"encoding/json"
	"fmt"

	"winemap/internal/models"
)

// Encode serializes the collection as a JSON array.
func Encode(records []models.WineRecord) ([]byte, error) {
	if records == nil {
		records = []models.WineRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal records to JSON: %w", err)
	}
	return data, nil
}

// Decode parses a blob written by Encode.
func Decode(blob []byte) ([]models.WineRecord, error) {
	var records []models.WineRecord
	if err := json.Unmarshal(blob, &records); err != nil {
		return nil, fmt.Errorf("failed to decode records JSON: %w", err)
	}
	if records == nil {
		records = []models.WineRecord{}
	}
	return records, nil
}
