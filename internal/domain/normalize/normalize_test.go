package normalize_test

import (
	"testing"
	"time"

	"github.com/okian/paceline/internal/domain/normalize"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseDate(t *testing.T) {
	Convey("Given the flexible date parser", t, func() {
		Convey("When parsing dash dates with two-digit years", func() {
			d := normalize.ParseDate("15-Mar-95")

			Convey("Then years at or above the pivot map to the 1900s", func() {
				So(d.Valid, ShouldBeTrue)
				So(d.Time.Year(), ShouldEqual, 1995)
				So(d.Time.Month(), ShouldEqual, time.March)
				So(d.Time.Day(), ShouldEqual, 15)
			})
		})

		Convey("When parsing dash dates below the pivot", func() {
			d := normalize.ParseDate("15-Mar-05")

			Convey("Then they map to the 2000s", func() {
				So(d.Valid, ShouldBeTrue)
				So(d.Time.Year(), ShouldEqual, 2005)
			})
		})

		Convey("When the month abbreviation is longer than three letters", func() {
			d := normalize.ParseDate("1-March-2020")

			Convey("Then the first three letters decide the month", func() {
				So(d.Valid, ShouldBeTrue)
				So(d.Time.Month(), ShouldEqual, time.March)
				So(d.Time.Year(), ShouldEqual, 2020)
			})
		})

		Convey("When parsing slash dates", func() {
			d := normalize.ParseDate("03/15/1995")

			Convey("Then month/day/year order applies", func() {
				So(d.Valid, ShouldBeTrue)
				So(d.Time.Year(), ShouldEqual, 1995)
				So(d.Time.Month(), ShouldEqual, time.March)
				So(d.Time.Day(), ShouldEqual, 15)
			})
		})

		Convey("When parsing a two-digit slash year", func() {
			d := normalize.ParseDate("03/15/95")

			So(d.Valid, ShouldBeTrue)
			So(d.Time.Year(), ShouldEqual, 1995)
		})

		Convey("When parsing an ISO date", func() {
			d := normalize.ParseDate("2020-03-15")

			Convey("Then the generic fallback handles it", func() {
				So(d.Valid, ShouldBeTrue)
				So(d.Time.Year(), ShouldEqual, 2020)
				So(d.Time.Month(), ShouldEqual, time.March)
			})
		})

		Convey("When parsing garbage", func() {
			d := normalize.ParseDate("not a date")

			Convey("Then the no-date sentinel comes back", func() {
				So(d.Valid, ShouldBeFalse)
			})
		})

		Convey("When parsing an unknown month abbreviation", func() {
			d := normalize.ParseDate("15-Foo-95")

			So(d.Valid, ShouldBeFalse)
		})

		Convey("When parsing the empty string", func() {
			So(normalize.ParseDate("").Valid, ShouldBeFalse)
		})

		Convey("When a custom pivot applies", func() {
			d := normalize.ParseDateWithPivot("15-Mar-30", 20)

			Convey("Then the pivot decides the century", func() {
				So(d.Valid, ShouldBeTrue)
				So(d.Time.Year(), ShouldEqual, 1930)
			})
		})
	})
}

func TestFormatDate(t *testing.T) {
	Convey("Given the date formatter", t, func() {
		Convey("A January 1 date renders as a bare year", func() {
			d := normalize.Date{Time: time.Date(1998, time.January, 1, 0, 0, 0, 0, time.UTC), Valid: true}
			So(normalize.FormatDate(d), ShouldEqual, "1998")
		})

		Convey("Any other date renders as a medium date", func() {
			d := normalize.Date{Time: time.Date(2020, time.March, 5, 0, 0, 0, 0, time.UTC), Valid: true}
			So(normalize.FormatDate(d), ShouldEqual, "Mar 5, 2020")
		})

		Convey("An invalid date renders as the placeholder", func() {
			So(normalize.FormatDate(normalize.NoDate()), ShouldEqual, "—")
		})
	})
}

func TestParseSeconds(t *testing.T) {
	Convey("Given the clock-time parser", t, func() {
		Convey("Minute:second values expand to seconds", func() {
			s := normalize.ParseSeconds("4:39.4")
			So(s.Valid, ShouldBeTrue)
			So(s.Value, ShouldAlmostEqual, 279.4, 0.0001)
		})

		Convey("Bare seconds parse directly", func() {
			s := normalize.ParseSeconds("17.2")
			So(s.Valid, ShouldBeTrue)
			So(s.Value, ShouldAlmostEqual, 17.2, 0.0001)
		})

		Convey("Empty input is the not-finite sentinel", func() {
			So(normalize.ParseSeconds("").Valid, ShouldBeFalse)
		})

		Convey("Two colons are rejected", func() {
			So(normalize.ParseSeconds("1:02:03").Valid, ShouldBeFalse)
		})

		Convey("Non-numeric components are rejected", func() {
			So(normalize.ParseSeconds("x:30").Valid, ShouldBeFalse)
			So(normalize.ParseSeconds("DNF").Valid, ShouldBeFalse)
		})

		Convey("Invalid times sort after finite times", func() {
			So(normalize.NoTime().Less(normalize.ParseSeconds("10")), ShouldBeFalse)
			So(normalize.ParseSeconds("10").Less(normalize.NoTime()), ShouldBeTrue)
		})
	})
}

func TestFormatSeconds(t *testing.T) {
	Convey("Given the clock-time formatter", t, func() {
		Convey("Values over a minute round-trip with padded seconds", func() {
			So(normalize.FormatSeconds(normalize.ParseSeconds("4:39.4")), ShouldEqual, "4:39.4")
			So(normalize.FormatRawSeconds(65.3), ShouldEqual, "1:05.3")
		})

		Convey("Values under a minute have no minute part", func() {
			So(normalize.FormatSeconds(normalize.ParseSeconds("17.2")), ShouldEqual, "17.2")
		})

		Convey("The sentinel renders as the placeholder", func() {
			So(normalize.FormatSeconds(normalize.NoTime()), ShouldEqual, "—")
		})
	})
}

func TestParseGender(t *testing.T) {
	Convey("Given the gender normalizer", t, func() {
		Convey("m and male map to male, case-insensitively", func() {
			So(normalize.ParseGender("m"), ShouldEqual, normalize.GenderMale)
			So(normalize.ParseGender("Male"), ShouldEqual, normalize.GenderMale)
			So(normalize.ParseGender(" M "), ShouldEqual, normalize.GenderMale)
		})

		Convey("f and female map to female", func() {
			So(normalize.ParseGender("F"), ShouldEqual, normalize.GenderFemale)
			So(normalize.ParseGender("female"), ShouldEqual, normalize.GenderFemale)
		})

		Convey("Anything else is unknown", func() {
			So(normalize.ParseGender(""), ShouldEqual, normalize.GenderUnknown)
			So(normalize.ParseGender("nonbinary"), ShouldEqual, normalize.GenderUnknown)
		})

		Convey("String renders the canonical names", func() {
			So(normalize.GenderMale.String(), ShouldEqual, "male")
			So(normalize.GenderFemale.String(), ShouldEqual, "female")
			So(normalize.GenderUnknown.String(), ShouldEqual, "unknown")
		})
	})
}

func TestParseAge(t *testing.T) {
	Convey("Given the age parser", t, func() {
		Convey("A whole number is an exact age", func() {
			a := normalize.ParseAge(" 47 ")
			So(a.Kind, ShouldEqual, normalize.AgeExact)
			So(a.Exact, ShouldEqual, 47)
		})

		Convey("A hyphenated pair is an inclusive range", func() {
			a := normalize.ParseAge("85-89")
			So(a.Kind, ShouldEqual, normalize.AgeRange)
			So(a.Min, ShouldEqual, 85)
			So(a.Max, ShouldEqual, 89)
		})

		Convey("Garbage and empty input carry no age", func() {
			So(normalize.ParseAge("").Kind, ShouldEqual, normalize.AgeNone)
			So(normalize.ParseAge("n/a").Kind, ShouldEqual, normalize.AgeNone)
			So(normalize.ParseAge("85-x").Kind, ShouldEqual, normalize.AgeNone)
		})
	})
}
