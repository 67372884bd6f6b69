// Package agefix infers missing ages from an athlete's other dated races.
// It backs the one-off batch utility, not the interactive engine.
package agefix

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/okian/paceline/internal/domain/model"
	"github.com/okian/paceline/internal/domain/normalize"
)

// observation is one known (date, exact age) pair for an athlete.
type observation struct {
	date normalize.Date
	age  int
}

// Correction records one inferred age for reporting.
type Correction struct {
	RowIndex int
	Name     string
	Inferred int
	// RefAge and RefDate identify the observation the inference leaned on.
	RefAge   int
	RefDate  normalize.Date
	YearDiff int
}

var numericAge = regexp.MustCompile(`^\d+$`)

// Apply fills non-numeric Age fields in raw rows using the nearest-year
// observation of the same athlete: inferred = known age + year delta. Rows
// are modified in place; the returned corrections describe every fix.
// Rows whose athlete has no dated exact-age observation stay untouched.
func Apply(rows []map[string]string, yearPivot int) []Correction {
	byName := make(map[string][]observation)
	for _, row := range rows {
		name := strings.TrimSpace(row[model.ColName])
		age := strings.TrimSpace(row[model.ColAge])
		if name == "" || !numericAge.MatchString(age) {
			continue
		}
		date := normalize.ParseDateWithPivot(row[model.ColDate], yearPivot)
		if !date.Valid {
			continue
		}
		n, err := strconv.Atoi(age)
		if err != nil {
			continue
		}
		byName[name] = append(byName[name], observation{date: date, age: n})
	}
	for _, obs := range byName {
		sort.SliceStable(obs, func(i, j int) bool {
			return obs[i].date.Before(obs[j].date)
		})
	}

	var fixes []Correction
	for i, row := range rows {
		age := strings.TrimSpace(row[model.ColAge])
		if numericAge.MatchString(age) {
			continue
		}
		name := strings.TrimSpace(row[model.ColName])
		obs := byName[name]
		if len(obs) == 0 {
			continue
		}
		date := normalize.ParseDateWithPivot(row[model.ColDate], yearPivot)
		if !date.Valid {
			continue
		}

		ref := obs[0]
		refDiff := date.Time.Year() - ref.date.Time.Year()
		for _, o := range obs[1:] {
			diff := date.Time.Year() - o.date.Time.Year()
			if abs(diff) < abs(refDiff) {
				ref = o
				refDiff = diff
			}
		}

		inferred := ref.age + refDiff
		row[model.ColAge] = strconv.Itoa(inferred)
		fixes = append(fixes, Correction{
			RowIndex: i,
			Name:     name,
			Inferred: inferred,
			RefAge:   ref.age,
			RefDate:  ref.date,
			YearDiff: refDiff,
		})
	}
	return fixes
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
