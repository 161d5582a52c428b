// Package analytics derives business metrics from raw salon records.
// Every function here is pure: it never performs I/O and never fails.
package analytics

import "time"

// DateLayout is the fixed-width calendar date format every record uses.
// Range checks compare these strings lexicographically.
const DateLayout = "2006-01-02"

// Preset names a relative date window evaluated against "now".
type Preset string

const (
	PresetAll       Preset = "all"
	PresetToday     Preset = "today"
	Preset7Days     Preset = "7days"
	Preset30Days    Preset = "30days"
	Preset3Months   Preset = "3months"
	PresetThisMonth Preset = "thisMonth"
	PresetLastMonth Preset = "lastMonth"
	PresetYear      Preset = "year"
	PresetCustom    Preset = "custom"
)

// Dated is implemented by every record carrying a yyyy-MM-dd date.
type Dated interface {
	RecordDate() string
}

// Selection is either a named preset or an explicit [From, To] range. An
// explicit From always wins over the preset.
type Selection struct {
	Preset Preset `json:"preset"`
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
}

// Custom reports whether the selection is an explicit range.
func (s Selection) Custom() bool {
	return s.From != ""
}

// Bounds resolves the selection to inclusive date strings. ok is false when
// no filtering applies.
func (s Selection) Bounds(now time.Time) (from, to string, ok bool) {
	if s.Custom() {
		to = s.To
		if to == "" {
			to = s.From
		}
		return s.From, to, true
	}

	today := now.Format(DateLayout)
	switch s.Preset {
	case PresetToday:
		return today, today, true
	case Preset7Days:
		return now.AddDate(0, 0, -7).Format(DateLayout), today, true
	case Preset30Days:
		return now.AddDate(0, 0, -30).Format(DateLayout), today, true
	case Preset3Months:
		return subMonths(now, 3).Format(DateLayout), today, true
	case PresetYear:
		return now.AddDate(0, 0, -365).Format(DateLayout), today, true
	case PresetThisMonth:
		first, last := monthBounds(now)
		return first.Format(DateLayout), last.Format(DateLayout), true
	case PresetLastMonth:
		first, _ := monthBounds(now)
		prevFirst, prevLast := monthBounds(first.AddDate(0, 0, -1))
		return prevFirst.Format(DateLayout), prevLast.Format(DateLayout), true
	default:
		return "", "", false
	}
}

// Label is a human readable description of the window.
func (s Selection) Label(now time.Time) string {
	if s.Custom() {
		from, to, _ := s.Bounds(now)
		if from == to {
			return displayDate(from)
		}
		return displayDate(from) + " - " + displayDate(to)
	}
	switch s.Preset {
	case PresetToday:
		return "Today"
	case Preset7Days:
		return "Last 7 Days"
	case Preset30Days:
		return "Last 30 Days"
	case Preset3Months:
		return "Last 3 Months"
	case PresetThisMonth:
		return now.Format("January 2006")
	case PresetLastMonth:
		first, _ := monthBounds(now)
		return first.AddDate(0, 0, -1).Format("January 2006")
	case PresetYear:
		return "Last Year"
	default:
		return "All Time"
	}
}

// FilterByDate keeps the records whose date falls inside the selection.
// Input order is preserved.
func FilterByDate[T Dated](records []T, sel Selection, now time.Time) []T {
	from, to, ok := sel.Bounds(now)
	if !ok {
		return records
	}
	return FilterBetween(records, from, to)
}

// FilterBetween keeps the records with from <= date <= to.
func FilterBetween[T Dated](records []T, from, to string) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		d := r.RecordDate()
		if d >= from && d <= to {
			out = append(out, r)
		}
	}
	return out
}

// ValidDate reports whether s is a well-formed yyyy-MM-dd date.
func ValidDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func monthBounds(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first, first.AddDate(0, 1, -1)
}

// subMonths moves back n calendar months, clamping to the end of a shorter
// target month (May 31 minus three months is Feb 28).
func subMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, -n, 0)
	_, last := monthBounds(first)
	day := t.Day()
	if day > last.Day() {
		day = last.Day()
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func displayDate(s string) string {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return s
	}
	return t.Format("Jan 02, 2006")
}
