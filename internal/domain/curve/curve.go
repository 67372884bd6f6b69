// Package curve computes, per gender, the best time at each discrete age
// across an entire event, with scaled coordinates for chart consumption.
package curve

import (
	"math"
	"sort"

	"github.com/okian/paceline/internal/domain/dedupe"
	"github.com/okian/paceline/internal/domain/model"
	"github.com/okian/paceline/internal/domain/normalize"
)

// Point is one (age, best time) pair with chart-space coordinates and the
// full winning row retained for hover-style detail.
type Point struct {
	Age     float64
	Seconds float64
	// X and Y are linear positions in [0, 1]. X grows with age; Y grows
	// as times improve, so the best time sits at 1.
	X float64
	Y float64
	// Row is the record that set this best time.
	Row model.ResultRecord
}

// Series is one gender's points, ordered by ascending age. A connecting
// line is drawn only with at least two points.
type Series struct {
	Gender  normalize.Gender
	Points  []Point
	HasLine bool
}

// Chart is the full event curve for both genders plus axis metadata.
type Chart struct {
	Event  string
	Male   Series
	Female Series

	MinAge     float64
	MaxAge     float64
	MinSeconds float64
	MaxSeconds float64

	// AgeTicks are min, rounded midpoint and max of the observed ages.
	AgeTicks [3]float64
	// TimeTicks are the min, midpoint and max times rendered as clock text.
	TimeTicks [3]string
}

// Build reduces the event's rows to per-gender best-time-at-age series.
// Only exact single-year ages qualify. The second return is false when no
// row qualifies.
func Build(snap *model.Snapshot, event string, bestOnly bool) (Chart, bool) {
	rows := make([]model.ResultRecord, 0)
	for _, r := range snap.Rows {
		if r.EventName() != event {
			continue
		}
		if r.AgePoint.Kind != normalize.AgeExact {
			continue
		}
		if !r.Seconds.Valid {
			continue
		}
		rows = append(rows, r)
	}
	if bestOnly {
		rows = dedupe.BestPerAthlete(rows)
	}

	best := map[normalize.Gender]map[float64]model.ResultRecord{
		normalize.GenderMale:   make(map[float64]model.ResultRecord),
		normalize.GenderFemale: make(map[float64]model.ResultRecord),
	}
	for _, r := range rows {
		g := r.ParsedGender
		if g != normalize.GenderMale && g != normalize.GenderFemale {
			continue
		}
		age := r.AgePoint.Exact
		// Strict less keeps the earliest-seen row on ties.
		if cur, ok := best[g][age]; !ok || r.Seconds.Value < cur.Seconds.Value {
			best[g][age] = r
		}
	}

	if len(best[normalize.GenderMale]) == 0 && len(best[normalize.GenderFemale]) == 0 {
		return Chart{}, false
	}

	c := Chart{Event: event}
	c.MinAge, c.MaxAge = math.Inf(1), math.Inf(-1)
	c.MinSeconds, c.MaxSeconds = math.Inf(1), math.Inf(-1)
	for _, byAge := range best {
		for age, r := range byAge {
			c.MinAge = math.Min(c.MinAge, age)
			c.MaxAge = math.Max(c.MaxAge, age)
			c.MinSeconds = math.Min(c.MinSeconds, r.Seconds.Value)
			c.MaxSeconds = math.Max(c.MaxSeconds, r.Seconds.Value)
		}
	}

	c.Male = buildSeries(normalize.GenderMale, best[normalize.GenderMale], c)
	c.Female = buildSeries(normalize.GenderFemale, best[normalize.GenderFemale], c)

	c.AgeTicks = [3]float64{c.MinAge, math.Round((c.MinAge + c.MaxAge) / 2), c.MaxAge}
	c.TimeTicks = [3]string{
		normalize.FormatRawSeconds(c.MinSeconds),
		normalize.FormatRawSeconds((c.MinSeconds + c.MaxSeconds) / 2),
		normalize.FormatRawSeconds(c.MaxSeconds),
	}
	return c, true
}

func buildSeries(g normalize.Gender, byAge map[float64]model.ResultRecord, c Chart) Series {
	ages := make([]float64, 0, len(byAge))
	for age := range byAge {
		ages = append(ages, age)
	}
	sort.Float64s(ages)

	points := make([]Point, 0, len(ages))
	for _, age := range ages {
		r := byAge[age]
		points = append(points, Point{
			Age:     age,
			Seconds: r.Seconds.Value,
			X:       scaleX(age, c.MinAge, c.MaxAge),
			Y:       scaleY(r.Seconds.Value, c.MinSeconds, c.MaxSeconds),
			Row:     r,
		})
	}
	return Series{Gender: g, Points: points, HasLine: len(points) >= 2}
}

// scaleX maps age linearly onto [0, 1]; a single distinct age centers.
func scaleX(age, minAge, maxAge float64) float64 {
	if maxAge == minAge {
		return 0.5
	}
	return (age - minAge) / (maxAge - minAge)
}

// scaleY maps time linearly onto [0, 1], inverted so smaller (better) times
// plot toward 1; a single distinct time centers.
func scaleY(sec, minSec, maxSec float64) float64 {
	if maxSec == minSec {
		return 0.5
	}
	return 1 - (sec-minSec)/(maxSec-minSec)
}
