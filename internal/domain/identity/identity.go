// Package identity derives deduplication keys for meet and race entities.
// Keys exist only for counting distinct meets/races; athlete identity in
// leaderboards is name-based and lives on the record itself.
package identity

import (
	"fmt"
	"strings"

	"github.com/okian/paceline/internal/domain/normalize"
)

const keySep = "::"

// MeetKey derives the meet deduplication key from a parsed date and the
// free-text meet name. Two rows denote the same meet iff their keys are
// equal. The second return is false when the key is undefined (unparsable
// date or empty name); such rows are excluded from the distinct-meet count.
func MeetKey(date normalize.Date, meetName string) (string, bool) {
	name := strings.TrimSpace(meetName)
	if !date.Valid || name == "" {
		return "", false
	}
	day := fmt.Sprintf("%04d-%02d-%02d", date.Time.Year(), int(date.Time.Month()), date.Time.Day())
	return day + keySep + strings.ToLower(name), true
}

// RaceKey derives the race deduplication key: the meet key extended with the
// lower-cased event. Undefined when the meet key is undefined or the event
// is empty.
func RaceKey(date normalize.Date, meetName, event string) (string, bool) {
	meet, ok := MeetKey(date, meetName)
	if !ok {
		return "", false
	}
	ev := strings.TrimSpace(event)
	if ev == "" {
		return "", false
	}
	return meet + keySep + strings.ToLower(ev), true
}
