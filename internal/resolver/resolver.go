// Package resolver turns a free-text place name into coordinates.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"winemap/internal/models"
	"winemap/internal/regions"
	"winemap/pkg/location"
)

// Resolution sources, also used as metric label values.
const (
	SourceRegion   = "region"
	SourceGeocoder = "nominatim"
	SourceMiss     = "miss"
)

// ErrLocationNotFound is matched by every LocationNotFound error.
var ErrLocationNotFound = errors.New("location not found")

// ErrGeocoder wraps failures to reach or parse the geocoding service.
var ErrGeocoder = errors.New("geocoding service failed")

// LocationNotFound reports that the geocoder had no candidate for Query.
type LocationNotFound struct {
	Query string
}

func (e *LocationNotFound) Error() string {
	return fmt.Sprintf("location not found: %q", e.Query)
}

func (e *LocationNotFound) Is(target error) bool {
	return target == ErrLocationNotFound
}

// Geocoder is the external search collaborator.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]location.Candidate, error)
}

// Observer is told how each resolution was answered.
type Observer interface {
	ObserveResolve(source string)
}

// Resolver prefers the named-region table and falls back to one
// geocoder query.
type Resolver struct {
	geocoder Geocoder
	observer Observer
	logger   *zap.Logger
}

func New(geocoder Geocoder, observer Observer, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{geocoder: geocoder, observer: observer, logger: logger}
}

// Resolve returns the coordinates for place. It performs network I/O only
// when place is not a region name, and makes a single attempt.
func (r *Resolver) Resolve(ctx context.Context, place string) (models.Location, error) {
	if region, ok := regions.Lookup(place); ok {
		r.observe(SourceRegion)
		return models.Location{Name: place, Coordinates: region.Coordinates(), Source: SourceRegion}, nil
	}

	candidates, err := r.geocoder.Search(ctx, place)
	if err != nil {
		return models.Location{}, fmt.Errorf("%w for %q: %w", ErrGeocoder, place, err)
	}
	if len(candidates) == 0 {
		r.observe(SourceMiss)
		r.logger.Info("no geocoding candidates", zap.String("query", place))
		return models.Location{}, &LocationNotFound{Query: place}
	}

	first := candidates[0]
	r.observe(SourceGeocoder)
	r.logger.Debug("geocoded location",
		zap.String("query", place),
		zap.String("display_name", first.DisplayName),
		zap.Float64("lat", first.Latitude),
		zap.Float64("lng", first.Longitude),
	)
	return models.Location{
		Name:        place,
		Coordinates: models.Coordinates{Lat: first.Latitude, Lng: first.Longitude},
		Source:      SourceGeocoder,
	}, nil
}

func (r *Resolver) observe(source string) {
	if r.observer != nil {
		r.observer.ObserveResolve(source)
	}
}
