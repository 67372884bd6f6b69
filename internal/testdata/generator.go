// Package testdata generates synthetic result CSVs for local runs and load
// checks. The output deliberately mixes clean and messy cells so every
// normalization path gets exercised.
package testdata

import (
	"context"
	"crypto/rand"
	"encoding/csv"
	"fmt"
	"io"
	"math/big"

	"github.com/okian/paceline/internal/domain/model"
	"github.com/okian/paceline/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	dateStyleDivisor   = 10
	ageStyleDivisor    = 20
	timeStyleDivisor   = 25
)

// Constants for generated value ranges.
const (
	minAge       = 18
	ageRange     = 75
	minSeconds   = 24.0
	secondsRange = 160.0
	minYear      = 1998
	yearRange    = 26
)

// Date rendering cases.
const (
	caseDashDate    = 0 // 15-Mar-20
	caseSlashDate   = 1 // 03/15/2020
	caseISODate     = 2 // 2020-03-15
	caseLongDate    = 3 // March 15, 2020
	caseJunkDate    = 8 // unparsable
	caseMissingDate = 9
)

var firstNames = []string{
	"Alice", "Bob", "Cara", "Dan", "Elena", "Frank", "Grace", "Hugo",
	"Iris", "Jon", "Kira", "Leo", "Mona", "Nate", "Odessa", "Pete",
	"Quinn", "Rosa", "Sam", "Tess",
}

var lastNames = []string{
	"Avery", "Brook", "Chen", "Diaz", "Eng", "Fox", "Gray", "Hale",
	"Ito", "Jones", "Khan", "Lund", "Mori", "Nash", "Ola", "Park",
	"Reyes", "Sato", "Tran", "Webb",
}

var meets = []string{
	"Spring Open", "Fall Classic", "Winter Invitational", "Summer Sprint",
	"Harbor Masters", "Valley Championships",
}

// Config controls the size and shape of the generated dataset.
type Config struct {
	// NumRows is the number of result rows to generate.
	NumRows int
	// Events to distribute rows across.
	Events []string
}

// DefaultEvents cover a typical short-course program.
var DefaultEvents = []string{"50 Free", "100 Free", "100 Back", "200 IM"}

// randomInt returns a random int in [0, n) using crypto/rand.
func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// randomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func randomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// Headers returns the column order of generated files.
func Headers() []string {
	return []string{
		model.ColName, model.ColGender, model.ColAge, model.ColTime,
		model.ColDate, model.ColMeetName, model.ColEvent,
	}
}

// Generate produces NumRows synthetic result rows in Headers order.
func Generate(ctx context.Context, cfg Config) [][]string {
	events := cfg.Events
	if len(events) == 0 {
		events = DefaultEvents
	}
	logger.Get().Info(ctx, "generating result rows",
		logger.Int("numRows", cfg.NumRows),
		logger.Int("events", len(events)),
	)

	rows := make([][]string, 0, cfg.NumRows)
	for i := 0; i < cfg.NumRows; i++ {
		rows = append(rows, generateRow(events))
	}
	return rows
}

func generateRow(events []string) []string {
	name := firstNames[randomInt(len(firstNames))] + " " + lastNames[randomInt(len(lastNames))]
	gender := "F"
	if randomInt(2) == 0 {
		gender = "M"
	}
	age := randomInt(ageRange) + minAge

	return []string{
		name,
		gender,
		renderAge(age),
		renderTime(minSeconds + randomFloat()*secondsRange),
		renderDate(),
		meets[randomInt(len(meets))],
		events[randomInt(len(events))],
	}
}

// renderAge keeps most ages exact but mixes in band strings and blanks.
func renderAge(age int) string {
	switch randomInt(ageStyleDivisor) {
	case 0:
		lo := (age / 5) * 5
		return fmt.Sprintf("%d-%d", lo, lo+4)
	case 1:
		return ""
	default:
		return fmt.Sprintf("%d", age)
	}
}

// renderTime emits clock text for longer swims and bare seconds otherwise,
// with the odd disqualification.
func renderTime(sec float64) string {
	if randomInt(timeStyleDivisor) == 0 {
		return "DQ"
	}
	if sec >= 60 {
		m := int(sec) / 60
		rem := sec - float64(m*60)
		if rem < 10 {
			return fmt.Sprintf("%d:0%.1f", m, rem)
		}
		return fmt.Sprintf("%d:%.1f", m, rem)
	}
	return fmt.Sprintf("%.1f", sec)
}

func renderDate() string {
	year := minYear + randomInt(yearRange)
	month := 1 + randomInt(12)
	day := 1 + randomInt(28)
	months := []string{
		"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	}

	switch randomInt(dateStyleDivisor) {
	case caseDashDate:
		return fmt.Sprintf("%d-%s-%02d", day, months[month-1], year%100)
	case caseSlashDate:
		return fmt.Sprintf("%02d/%02d/%d", month, day, year)
	case caseLongDate:
		return fmt.Sprintf("%s %d, %d", months[month-1], day, year)
	case caseJunkDate:
		return "sometime last season"
	case caseMissingDate:
		return ""
	default:
		return fmt.Sprintf("%d-%02d-%02d", year, month, day)
	}
}

// WriteCSV writes headers plus rows to w.
func WriteCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}
