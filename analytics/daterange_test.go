package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"solune-backend/models"
)

func dated(dates ...string) []models.Expense {
	out := make([]models.Expense, len(dates))
	for i, d := range dates {
		out[i] = models.Expense{Item: d, Date: d}
	}
	return out
}

func datesOf(xs []models.Expense) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = x.Date
	}
	return out
}

func TestFilterPresetBoundaries(t *testing.T) {
	records := dated("2026-03-15", "2026-03-08", "2026-03-07", "2026-03-16", "2025-03-15", "2025-03-14")

	tests := []struct {
		preset Preset
		want   []string
	}{
		{PresetToday, []string{"2026-03-15"}},
		{Preset7Days, []string{"2026-03-15", "2026-03-08"}},
		{Preset30Days, []string{"2026-03-15", "2026-03-08", "2026-03-07"}},
		{PresetThisMonth, []string{"2026-03-15", "2026-03-08", "2026-03-07", "2026-03-16"}},
		{PresetYear, []string{"2026-03-15", "2026-03-08", "2026-03-07", "2025-03-15"}},
		{PresetAll, []string{"2026-03-15", "2026-03-08", "2026-03-07", "2026-03-16", "2025-03-15", "2025-03-14"}},
		{"bogus", []string{"2026-03-15", "2026-03-08", "2026-03-07", "2026-03-16", "2025-03-15", "2025-03-14"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			got := FilterByDate(records, Selection{Preset: tt.preset}, testNow)
			assert.Equal(t, tt.want, datesOf(got))
		})
	}
}

func TestFilterLastMonth(t *testing.T) {
	records := dated("2026-01-31", "2026-02-01", "2026-02-28", "2026-03-01")
	got := FilterByDate(records, Selection{Preset: PresetLastMonth}, testNow)
	assert.Equal(t, []string{"2026-02-01", "2026-02-28"}, datesOf(got))
}

func TestCustomRangeOverridesPreset(t *testing.T) {
	records := dated("2026-01-10", "2026-01-11", "2026-01-12", "2026-03-15")

	got := FilterByDate(records, Selection{Preset: PresetToday, From: "2026-01-10", To: "2026-01-11"}, testNow)
	assert.Equal(t, []string{"2026-01-10", "2026-01-11"}, datesOf(got))

	single := FilterByDate(records, Selection{From: "2026-01-12"}, testNow)
	assert.Equal(t, []string{"2026-01-12"}, datesOf(single))
}

func TestFilterEmptyResult(t *testing.T) {
	got := FilterByDate(dated("2020-01-01"), Selection{Preset: PresetToday}, testNow)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestThreeMonthsClampsShortMonths(t *testing.T) {
	now := time.Date(2026, time.May, 31, 9, 0, 0, 0, ist)
	from, to, ok := Selection{Preset: Preset3Months}.Bounds(now)
	assert.True(t, ok)
	assert.Equal(t, "2026-02-28", from)
	assert.Equal(t, "2026-05-31", to)
}

func TestSelectionLabel(t *testing.T) {
	assert.Equal(t, "All Time", Selection{}.Label(testNow))
	assert.Equal(t, "March 2026", Selection{Preset: PresetThisMonth}.Label(testNow))
	assert.Equal(t, "February 2026", Selection{Preset: PresetLastMonth}.Label(testNow))
	assert.Equal(t, "Jan 10, 2026 - Jan 12, 2026", Selection{From: "2026-01-10", To: "2026-01-12"}.Label(testNow))
	assert.Equal(t, "Jan 10, 2026", Selection{From: "2026-01-10"}.Label(testNow))
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2026-02-28"))
	assert.False(t, ValidDate("2026-02-30"))
	assert.False(t, ValidDate("2026-2-3"))
	assert.False(t, ValidDate(""))
}
