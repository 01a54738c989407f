package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"winemap/internal/models"
)

func filterFixture() []models.WineRecord {
	return []models.WineRecord{
		{Name: "a", Type: models.TypeRed, Grape: "Merlot", Location: "ボルドー"},
		{Name: "b", Type: models.TypeWhite, Grape: "Sauvignon Blanc", Location: "ボルドー"},
		{Name: "c", Type: models.TypeRed, Grape: "Pinot Noir", Location: "ブルゴーニュ"},
		{Name: "d", Type: models.TypeSparkling, Grape: "Pinot Noir, Chardonnay", Location: "シャンパーニュ"},
		{Name: "e", Type: models.TypeWhite, Grape: "甲州", Location: "山梨 勝沼"},
	}
}

func names(records []models.WineRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func TestFilter(t *testing.T) {
	cases := []struct {
		name     string
		criteria Criteria
		expected []string
	}{
		{"zero criteria matches all", Criteria{}, []string{"a", "b", "c", "d", "e"}},
		{"wildcard type", Criteria{Type: models.TypeAll}, []string{"a", "b", "c", "d", "e"}},
		{"type exact", Criteria{Type: models.TypeRed}, []string{"a", "c"}},
		{"grape substring", Criteria{Grape: "Pinot"}, []string{"c", "d"}},
		{"grape case-sensitive", Criteria{Grape: "pinot"}, []string{}},
		{"location substring", Criteria{Location: "勝沼"}, []string{"e"}},
		{"combined", Criteria{Type: models.TypeWhite, Location: "ボルドー"}, []string{"b"}},
		{"no type match", Criteria{Type: models.TypeOrange}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := filterFixture()
			got := Filter(input, tc.criteria)
			assert.Equal(t, tc.expected, names(got))
			assert.Equal(t, filterFixture(), input, "input must not be mutated")
			assert.Equal(t, got, Filter(got, tc.criteria), "filter must be idempotent")
		})
	}
}

func TestFilterEntries(t *testing.T) {
	got := FilterEntries(filterFixture(), Criteria{Grape: "Pinot Noir"})
	assert.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Index)
	assert.Equal(t, 3, got[1].Index)
	assert.Equal(t, "d", got[1].Record.Name)
}
