package stats_test

import (
	"testing"

	"github.com/okian/paceline/internal/domain/model"
	"github.com/okian/paceline/internal/domain/normalize"
	"github.com/okian/paceline/internal/domain/stats"
	. "github.com/smartystreets/goconvey/convey"
)

func record(name, gender, date, meet, event string) model.ResultRecord {
	return model.NewResultRecord(map[string]string{
		model.ColName:     name,
		model.ColGender:   gender,
		model.ColDate:     date,
		model.ColMeetName: meet,
		model.ColEvent:    event,
	}, normalize.DefaultYearPivot)
}

func TestCompute(t *testing.T) {
	Convey("Given a mixed row set", t, func() {
		rows := []model.ResultRecord{
			record("Alice", "F", "1-Jan-2020", "Spring Open", "100m"),
			record("Bob", "M", "1-Jan-2020", "Spring Open", "200m"),
			record("Cara", "F", "1-Jan-2020", "SPRING OPEN", "100m"),
			record("Dan", "x", "15-Mar-95", "Fall Classic", "100m"),
			record("Eve", "F", "garbage", "Lost Meet", "100m"),
		}

		Convey("When computing the summary", func() {
			s := stats.Compute(rows)

			Convey("Then totals and gender splits are counted", func() {
				So(s.Total, ShouldEqual, 5)
				So(s.Male, ShouldEqual, 1)
				So(s.Female, ShouldEqual, 3)
			})

			Convey("And distinct meets fold case and share dates", func() {
				// Spring Open (twice, case-folded) + Fall Classic; the
				// unparsable-date row defines no meet key.
				So(s.Meets, ShouldEqual, 2)
			})

			Convey("And races are distinct per meet+event", func() {
				// spring open 100m, spring open 200m, fall classic 100m.
				So(s.Races, ShouldEqual, 3)
			})

			Convey("And the date range ignores unparsable dates", func() {
				So(s.Earliest.Valid, ShouldBeTrue)
				So(s.Earliest.Time.Year(), ShouldEqual, 1995)
				So(s.Latest.Time.Year(), ShouldEqual, 2020)
			})
		})

		Convey("When the row set is empty", func() {
			s := stats.Compute(nil)

			Convey("Then everything is zero and the range is invalid", func() {
				So(s.Total, ShouldEqual, 0)
				So(s.Earliest.Valid, ShouldBeFalse)
				So(s.Latest.Valid, ShouldBeFalse)
			})
		})
	})
}
