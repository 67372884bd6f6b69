// Package normalize converts raw result-row fields into canonical typed
// values. Every function here is total: malformed input degrades to an
// explicit invalid variant and never produces an error.
package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultYearPivot disambiguates two-digit years: values >= pivot map to
// 1900+value, values below to 2000+value. The archive spans the
// 1990s-2020s; this is dataset policy, not a universal rule.
const DefaultYearPivot = 50

// Placeholder rendered for absent or unparsable values.
const Placeholder = "—"

const secondsPerMinute = 60

// months maps three-letter month abbreviations to calendar months.
var months = map[string]time.Month{ //nolint:gochecknoglobals // static lookup table
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Date is a calendar date with an explicit validity tag. Records known only
// by year are stored as January 1 of that year and render back as a bare year.
type Date struct {
	Time  time.Time
	Valid bool
}

// NoDate is the invalid-date sentinel.
func NoDate() Date { return Date{} }

// Before reports whether d is strictly earlier than other. Invalid dates
// compare as not-before anything.
func (d Date) Before(other Date) bool {
	if !d.Valid || !other.Valid {
		return false
	}
	return d.Time.Before(other.Time)
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	if !d.Valid || !other.Valid {
		return false
	}
	return d.Time.After(other.Time)
}

// ParseDate parses a date using the default two-digit-year pivot.
func ParseDate(input string) Date {
	return ParseDateWithPivot(input, DefaultYearPivot)
}

// ParseDateWithPivot accepts three format families, tried in order:
// dash-separated D-Mon-YY / D-Mon-YYYY (month matched case-insensitively on
// its first three letters), slash-separated MM/DD/YY / MM/DD/YYYY, and
// finally a small set of generic layouts as a last resort.
func ParseDateWithPivot(input string, pivot int) Date {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return NoDate()
	}

	if strings.Contains(raw, "-") {
		if d, ok := parseDashDate(raw, pivot); ok {
			return d
		}
	}

	if strings.Contains(raw, "/") {
		if d, ok := parseSlashDate(raw, pivot); ok {
			return d
		}
	}

	return parseGenericDate(raw)
}

func parseDashDate(raw string, pivot int) (Date, bool) {
	parts := strings.Split(raw, "-")
	if len(parts) != 3 {
		return NoDate(), false
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return NoDate(), false
	}
	abbr := strings.ToLower(strings.TrimSpace(parts[1]))
	if len(abbr) > 3 {
		abbr = abbr[:3]
	}
	month, ok := months[abbr]
	if !ok {
		return NoDate(), false
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return NoDate(), false
	}
	return Date{Time: time.Date(expandYear(year, pivot), month, day, 0, 0, 0, 0, time.UTC), Valid: true}, true
}

func parseSlashDate(raw string, pivot int) (Date, bool) {
	parts := strings.Split(raw, "/")
	if len(parts) != 3 {
		return NoDate(), false
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return NoDate(), false
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return NoDate(), false
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return NoDate(), false
	}
	return Date{Time: time.Date(expandYear(year, pivot), time.Month(month), day, 0, 0, 0, 0, time.UTC), Valid: true}, true
}

// genericLayouts is the last-resort family for dates that match neither the
// dash nor the slash shape.
var genericLayouts = []string{ //nolint:gochecknoglobals // static lookup table
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	time.RFC3339,
	"2006",
}

func parseGenericDate(raw string) Date {
	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return Date{Time: t.UTC(), Valid: true}
		}
	}
	return NoDate()
}

// expandYear resolves two-digit years against the pivot.
func expandYear(year, pivot int) int {
	if year >= 100 {
		return year
	}
	if year >= pivot {
		return 1900 + year
	}
	return 2000 + year
}

// FormatDate renders a date for display. A date whose month and day equal
// January 1 renders as a bare 4-digit year, modeling year-only precision.
func FormatDate(d Date) string {
	if !d.Valid {
		return Placeholder
	}
	if d.Time.Month() == time.January && d.Time.Day() == 1 {
		return strconv.Itoa(d.Time.Year())
	}
	return d.Time.Format("Jan 2, 2006")
}

// Seconds is a race clock value with an explicit validity tag. Invalid times
// sort after every finite time and are excluded from numeric aggregates.
type Seconds struct {
	Value float64
	Valid bool
}

// NoTime is the unparsable-time sentinel.
func NoTime() Seconds { return Seconds{} }

// Less orders finite times ascending with invalid times last.
func (s Seconds) Less(other Seconds) bool {
	if !s.Valid {
		return false
	}
	if !other.Valid {
		return true
	}
	return s.Value < other.Value
}

// ParseSeconds accepts SS[.t], M:SS[.t] or MM:SS[.t]. Any other shape, or a
// non-numeric component, yields the invalid sentinel.
func ParseSeconds(input string) Seconds {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return NoTime()
	}
	parts := strings.Split(raw, ":")
	switch len(parts) {
	case 1:
		sec, err := strconv.ParseFloat(parts[0], 64)
		if err != nil || math.IsInf(sec, 0) || math.IsNaN(sec) {
			return NoTime()
		}
		return Seconds{Value: sec, Valid: true}
	case 2:
		minutes, err := strconv.ParseFloat(parts[0], 64)
		if err != nil || math.IsInf(minutes, 0) || math.IsNaN(minutes) {
			return NoTime()
		}
		sec, err := strconv.ParseFloat(parts[1], 64)
		if err != nil || math.IsInf(sec, 0) || math.IsNaN(sec) {
			return NoTime()
		}
		return Seconds{Value: minutes*secondsPerMinute + sec, Valid: true}
	default:
		return NoTime()
	}
}

// FormatSeconds renders a clock value: M:SS.s with the seconds component
// zero-padded when the value reaches a minute, SS.s below that.
func FormatSeconds(s Seconds) string {
	if !s.Valid {
		return Placeholder
	}
	return FormatRawSeconds(s.Value)
}

// FormatRawSeconds formats an already-finite seconds value.
func FormatRawSeconds(value float64) string {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return Placeholder
	}
	minutes := int(value / secondsPerMinute)
	rem := value - float64(minutes)*secondsPerMinute
	if minutes > 0 {
		sec := strconv.FormatFloat(rem, 'f', 1, 64)
		if rem < 10 {
			sec = "0" + sec
		}
		return strconv.Itoa(minutes) + ":" + sec
	}
	return strconv.FormatFloat(rem, 'f', 1, 64)
}

// Gender is a normalized gender value, derived and never stored back.
type Gender int

// Gender values.
const (
	GenderUnknown Gender = iota
	GenderMale
	GenderFemale
)

// String implements fmt.Stringer.
func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "unknown"
	}
}

// ParseGender matches m/male and f/female case-insensitively; anything else,
// including the empty string, is unknown.
func ParseGender(input string) Gender {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "m", "male":
		return GenderMale
	case "f", "female":
		return GenderFemale
	default:
		return GenderUnknown
	}
}

// AgeKind tags the variants of an AgePoint.
type AgeKind int

// AgePoint variants.
const (
	AgeNone AgeKind = iota
	AgeExact
	AgeRange
)

// AgePoint is either an exact age, an inclusive age range like "85-89", or
// absent. Rows without a usable age are excluded from age-bucketed views.
type AgePoint struct {
	Kind AgeKind
	// Exact holds the age when Kind is AgeExact.
	Exact float64
	// Min and Max hold the inclusive bounds when Kind is AgeRange.
	Min float64
	Max float64
}

// NoAge is the absent-age sentinel.
func NoAge() AgePoint { return AgePoint{} }

// ParseAge trims the field; a finite number is an exact age; otherwise a
// hyphenated pair of finite numbers is a range; anything else is no age.
func ParseAge(input string) AgePoint {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return NoAge()
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsInf(v, 0) && !math.IsNaN(v) {
		return AgePoint{Kind: AgeExact, Exact: v}
	}
	if strings.Contains(raw, "-") {
		parts := strings.SplitN(raw, "-", 2)
		lo, errLo := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		hi, errHi := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errLo == nil && errHi == nil &&
			!math.IsInf(lo, 0) && !math.IsNaN(lo) && !math.IsInf(hi, 0) && !math.IsNaN(hi) {
			return AgePoint{Kind: AgeRange, Min: lo, Max: hi}
		}
	}
	return NoAge()
}
