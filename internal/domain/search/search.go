// Package search finds rows by athlete name across the whole snapshot.
package search

import (
	"sort"
	"strings"

	"github.com/okian/paceline/internal/domain/model"
)

// ByName returns rows whose athlete name contains query, case-insensitively.
// Ordering is chronological descending with a twist: rows with unparsable
// dates are treated as most-recent/unknown and placed ahead of every dated
// row; ties among them keep their original relative order. limit <= 0 means
// unlimited.
func ByName(snap *model.Snapshot, query string, limit int) []model.ResultRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	matches := make([]model.ResultRecord, 0)
	for _, r := range snap.Rows {
		if strings.Contains(strings.ToLower(r.Name), q) {
			matches = append(matches, r)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i].ParsedDate, matches[j].ParsedDate
		switch {
		case !a.Valid && !b.Valid:
			return false
		case !a.Valid:
			return true
		case !b.Valid:
			return false
		default:
			return a.After(b)
		}
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
