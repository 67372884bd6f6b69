// Package stats computes the aggregate summary of a loaded row set.
package stats

import (
	"github.com/okian/paceline/internal/domain/identity"
	"github.com/okian/paceline/internal/domain/model"
	"github.com/okian/paceline/internal/domain/normalize"
)

// Summary is the flat aggregate record for one snapshot.
type Summary struct {
	Total  int
	Male   int
	Female int

	// Meets and Races count distinct identity keys; rows whose keys are
	// undefined contribute to neither.
	Meets int
	Races int

	// Earliest and Latest bound the successfully parsed dates. Both are
	// invalid when no row carries a parsable date.
	Earliest normalize.Date
	Latest   normalize.Date
}

// Compute makes a single linear pass over the rows. Unknown genders count
// toward neither split; unparsable dates contribute to no aggregate.
func Compute(rows []model.ResultRecord) Summary {
	var s Summary
	meets := make(map[string]struct{})
	races := make(map[string]struct{})

	for _, r := range rows {
		s.Total++

		switch r.ParsedGender {
		case normalize.GenderMale:
			s.Male++
		case normalize.GenderFemale:
			s.Female++
		case normalize.GenderUnknown:
		}

		if k, ok := identity.MeetKey(r.ParsedDate, r.MeetName); ok {
			meets[k] = struct{}{}
		}
		if k, ok := identity.RaceKey(r.ParsedDate, r.MeetName, r.Event); ok {
			races[k] = struct{}{}
		}

		if r.ParsedDate.Valid {
			if !s.Earliest.Valid || r.ParsedDate.Before(s.Earliest) {
				s.Earliest = r.ParsedDate
			}
			if !s.Latest.Valid || r.ParsedDate.After(s.Latest) {
				s.Latest = r.ParsedDate
			}
		}
	}

	s.Meets = len(meets)
	s.Races = len(races)
	return s
}
