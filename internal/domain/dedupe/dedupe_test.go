package dedupe_test

import (
	"testing"

	"github.com/okian/paceline/internal/domain/dedupe"
	"github.com/okian/paceline/internal/domain/model"
	"github.com/okian/paceline/internal/domain/normalize"
	. "github.com/smartystreets/goconvey/convey"
)

func result(name, clock string) model.ResultRecord {
	return model.NewResultRecord(map[string]string{
		model.ColName: name,
		model.ColTime: clock,
	}, normalize.DefaultYearPivot)
}

func TestBestPerAthlete(t *testing.T) {
	Convey("Given rows with repeated athletes", t, func() {
		rows := []model.ResultRecord{
			result("Alice", "13.5"),
			result("Bob", "12.1"),
			result("alice ", "13.1"),
			result("ALICE", "14.0"),
		}

		Convey("When reducing to one best per athlete", func() {
			best := dedupe.BestPerAthlete(rows)

			Convey("Then name identity folds case and whitespace", func() {
				So(len(best), ShouldEqual, 2)
			})

			Convey("And each athlete carries their smallest time", func() {
				So(best[0].AthleteKey(), ShouldEqual, "alice")
				So(best[0].Seconds.Value, ShouldAlmostEqual, 13.1, 0.0001)
				So(best[1].AthleteKey(), ShouldEqual, "bob")
			})
		})

		Convey("When two rows tie on time", func() {
			tied := []model.ResultRecord{
				result("Cara", "11.9"),
				result("cara", "11.9"),
			}
			best := dedupe.BestPerAthlete(tied)

			Convey("Then the first-seen row wins", func() {
				So(len(best), ShouldEqual, 1)
				So(best[0].Name, ShouldEqual, "Cara")
			})
		})

		Convey("When rows lack a name or a finite time", func() {
			bad := []model.ResultRecord{
				result("", "10.0"),
				result("Dan", "DNF"),
				result("Dan", ""),
			}
			best := dedupe.BestPerAthlete(bad)

			Convey("Then they are dropped", func() {
				So(best, ShouldBeEmpty)
			})
		})
	})
}
