// Package dedupe reduces a row set to one best result per athlete.
package dedupe

import (
	"github.com/okian/paceline/internal/domain/model"
)

// BestPerAthlete keeps, per lower-cased athlete name, only the row with the
// minimum finite time. Ties keep the first-seen row. Rows without a name or
// a finite time are dropped. Output order is the first-seen order of each
// winning athlete.
func BestPerAthlete(rows []model.ResultRecord) []model.ResultRecord {
	best := make([]model.ResultRecord, 0, len(rows))
	index := make(map[string]int)

	for _, r := range rows {
		key := r.AthleteKey()
		if key == "" || !r.Seconds.Valid {
			continue
		}
		at, seen := index[key]
		if !seen {
			index[key] = len(best)
			best = append(best, r)
			continue
		}
		// Strict less keeps the first-seen row on equal times.
		if r.Seconds.Value < best[at].Seconds.Value {
			best[at] = r
		}
	}

	return best
}
