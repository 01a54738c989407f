package placement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winemap/internal/models"
	"winemap/internal/regions"
)

func TestColorFor(t *testing.T) {
	cases := []struct {
		input  models.WineType
		expect PinColor
	}{
		{models.TypeRed, PinRed},
		{models.TypeWhite, PinBlue},
		{models.TypeSparkling, PinGreen},
		{models.TypeRose, PinPink},
		{models.TypeOrange, PinOrange},
		{models.TypeOther, PinGrey},
		{"unknown", PinRed},
	}
	for _, tc := range cases {
		t.Run(string(tc.input), func(t *testing.T) {
			assert.Equal(t, tc.expect, ColorFor(tc.input))
		})
	}
}

func TestColorsDistinct(t *testing.T) {
	seen := map[PinColor]models.WineType{}
	for _, wt := range models.WineTypes {
		c := ColorFor(wt)
		_, dup := seen[c]
		assert.False(t, dup, "%s shares colour %s with %s", wt, c, seen[c])
		seen[c] = wt
	}
}

func TestMarkers(t *testing.T) {
	id := uuid.New()
	records := []models.WineRecord{{
		ID: id, Name: "Cava", Type: models.TypeSparkling, Grape: "Macabeo",
		Comment: "crisp", Location: "Penedès", Lat: 41.3, Lng: 1.7,
	}}
	got := Markers(records)
	require.Len(t, got, 1)
	assert.Equal(t, id.String(), got[0].ID)
	assert.Equal(t, PinGreen, got[0].Style.Color)
	assert.Equal(t, "Cava", got[0].Popup.Name)
	assert.Equal(t, "crisp", got[0].Popup.Comment)
	assert.Equal(t, 41.3, got[0].Position.Lat)
}

func TestOverlays(t *testing.T) {
	got := Overlays()
	all := regions.All()
	require.Len(t, got, len(all))
	for i, o := range got {
		assert.Equal(t, all[i].Name, o.Label)
		assert.Equal(t, all[i].Lat, o.Lat)
		assert.Positive(t, o.Radius)
	}
}

func TestMarkers_PopupImage(t *testing.T) {
	cases := map[string]string{
		"https://example.com/a.jpg":    "https://example.com/a.jpg",
		"data:image/gif;base64,R0lGOD": "data:image/gif;base64,R0lGOD",
		"javascript:alert(1)":          "",
		"data:text/html;base64,PGI+":   "",
		"":                             "",
	}
	for image, want := range cases {
		m := Markers([]models.WineRecord{{ID: uuid.New(), Location: "ボルドー", Image: image}})
		require.Len(t, m, 1)
		assert.Equal(t, want, m[0].Popup.Image, image)
	}
}
