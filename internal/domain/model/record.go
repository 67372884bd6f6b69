// Package model contains domain models passed between layers.
package model

import (
	"strings"

	"github.com/okian/paceline/internal/domain/normalize"
)

// Well-known CSV column names. Header order of the source file is preserved
// separately on the Snapshot for tabular display.
const (
	ColName     = "Name"
	ColGender   = "Gender"
	ColAge      = "Age"
	ColTime     = "Time"
	ColDate     = "Date"
	ColMeetName = "Meet name"
	ColEvent    = "Event"
)

// ResultRecord is one row: one athlete in one event at one meet. Raw fields
// stay verbatim for display; the normalized views are derived once when the
// snapshot is built and never mutated afterwards.
type ResultRecord struct {
	Name     string
	Gender   string
	Age      string
	Time     string
	Date     string
	MeetName string
	Event    string

	// Extra holds passthrough columns preserved verbatim.
	Extra map[string]string

	// Normalized views, pure functions of the raw fields above.
	ParsedDate   normalize.Date
	Seconds      normalize.Seconds
	ParsedGender normalize.Gender
	AgePoint     normalize.AgePoint
}

// NewResultRecord builds a record from a raw column mapping, deriving the
// normalized views with the given two-digit-year pivot.
func NewResultRecord(raw map[string]string, yearPivot int) ResultRecord {
	r := ResultRecord{
		Name:     raw[ColName],
		Gender:   raw[ColGender],
		Age:      raw[ColAge],
		Time:     raw[ColTime],
		Date:     raw[ColDate],
		MeetName: raw[ColMeetName],
		Event:    raw[ColEvent],
	}
	for k, v := range raw {
		switch k {
		case ColName, ColGender, ColAge, ColTime, ColDate, ColMeetName, ColEvent:
		default:
			if r.Extra == nil {
				r.Extra = make(map[string]string)
			}
			r.Extra[k] = v
		}
	}
	r.ParsedDate = normalize.ParseDateWithPivot(r.Date, yearPivot)
	r.Seconds = normalize.ParseSeconds(r.Time)
	r.ParsedGender = normalize.ParseGender(r.Gender)
	r.AgePoint = normalize.ParseAge(r.Age)
	return r
}

// Field returns the raw value for a column by header name.
func (r ResultRecord) Field(header string) string {
	switch header {
	case ColName:
		return r.Name
	case ColGender:
		return r.Gender
	case ColAge:
		return r.Age
	case ColTime:
		return r.Time
	case ColDate:
		return r.Date
	case ColMeetName:
		return r.MeetName
	case ColEvent:
		return r.Event
	default:
		return r.Extra[header]
	}
}

// EventName returns the trimmed event name.
func (r ResultRecord) EventName() string {
	return strings.TrimSpace(r.Event)
}

// AthleteKey returns the identity key used for one-per-athlete views.
// Athlete identity is name-based, never meet/race-key-based.
func (r ResultRecord) AthleteKey() string {
	return strings.ToLower(strings.TrimSpace(r.Name))
}
