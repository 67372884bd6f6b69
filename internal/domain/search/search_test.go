package search_test

import (
	"testing"

	"github.com/okian/paceline/internal/domain/model"
	"github.com/okian/paceline/internal/domain/search"
	. "github.com/smartystreets/goconvey/convey"
)

var headers = []string{model.ColName, model.ColDate}

func TestByName(t *testing.T) {
	Convey("Given a snapshot with mixed dates", t, func() {
		snap := model.NewSnapshot(headers, []map[string]string{
			{model.ColName: "Smith Alpha", model.ColDate: "1-Jan-2019"},
			{model.ColName: "Smith Beta", model.ColDate: "unknown"},
			{model.ColName: "Smith Gamma", model.ColDate: "1-Jan-2021"},
			{model.ColName: "Jones Delta", model.ColDate: "1-Jan-2022"},
			{model.ColName: "Smith Epsilon", model.ColDate: ""},
		})

		Convey("When searching case-insensitively by substring", func() {
			got := search.ByName(snap, "smith", 0)

			Convey("Then only matching names come back", func() {
				So(len(got), ShouldEqual, 4)
			})

			Convey("And unparsable dates sort ahead of all dated rows, in original order", func() {
				So(got[0].Name, ShouldEqual, "Smith Beta")
				So(got[1].Name, ShouldEqual, "Smith Epsilon")
			})

			Convey("And dated rows are strictly descending by date", func() {
				So(got[2].Name, ShouldEqual, "Smith Gamma")
				So(got[3].Name, ShouldEqual, "Smith Alpha")
			})
		})

		Convey("When the query is empty", func() {
			So(search.ByName(snap, "   ", 0), ShouldBeNil)
		})

		Convey("When a limit applies", func() {
			got := search.ByName(snap, "smith", 2)
			So(len(got), ShouldEqual, 2)
		})

		Convey("When nothing matches", func() {
			So(search.ByName(snap, "zebra", 0), ShouldBeEmpty)
		})
	})
}
