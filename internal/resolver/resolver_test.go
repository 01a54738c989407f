package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winemap/internal/regions"
	"winemap/pkg/location"
)

type fakeGeocoder struct {
	calls   int
	results []location.Candidate
	err     error
}

func (f *fakeGeocoder) Search(_ context.Context, _ string) ([]location.Candidate, error) {
	f.calls++
	return f.results, f.err
}

type countingObserver map[string]int

func (c countingObserver) ObserveResolve(source string) { c[source]++ }

func TestResolve_RegionSkipsGeocoder(t *testing.T) {
	geo := &fakeGeocoder{}
	obs := countingObserver{}
	r := New(geo, obs, nil)

	for _, region := range regions.All() {
		got, err := r.Resolve(context.Background(), region.Name)
		require.NoError(t, err)
		assert.Equal(t, region.Lat, got.Coordinates.Lat)
		assert.Equal(t, region.Lng, got.Coordinates.Lng)
		assert.Equal(t, SourceRegion, got.Source)
	}
	assert.Zero(t, geo.calls)
	assert.Equal(t, len(regions.All()), obs[SourceRegion])
}

func TestResolve_GeocoderFirstCandidate(t *testing.T) {
	geo := &fakeGeocoder{results: []location.Candidate{
		{Latitude: 35.0, Longitude: 139.0},
		{Latitude: 1, Longitude: 2},
	}}
	r := New(geo, nil, nil)

	got, err := r.Resolve(context.Background(), "勝沼")
	require.NoError(t, err)
	assert.Equal(t, 35.0, got.Coordinates.Lat)
	assert.Equal(t, 139.0, got.Coordinates.Lng)
	assert.Equal(t, SourceGeocoder, got.Source)
	assert.Equal(t, 1, geo.calls)
}

func TestResolve_NoCandidates(t *testing.T) {
	geo := &fakeGeocoder{}
	obs := countingObserver{}
	r := New(geo, obs, nil)

	_, err := r.Resolve(context.Background(), "Nowhereville")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLocationNotFound)

	var nf *LocationNotFound
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Nowhereville", nf.Query)
	assert.Equal(t, 1, obs[SourceMiss])
}

func TestResolve_TransportError(t *testing.T) {
	boom := errors.New("connection refused")
	r := New(&fakeGeocoder{err: boom}, nil, nil)

	_, err := r.Resolve(context.Background(), "Nowhereville")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, ErrGeocoder)
	assert.NotErrorIs(t, err, ErrLocationNotFound)
}
