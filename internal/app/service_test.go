package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/paceline/internal/adapters/repository"
	service "github.com/okian/paceline/internal/app"
	"github.com/okian/paceline/internal/domain/leaderboard"
	"github.com/okian/paceline/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

const sampleCSV = `Name,Gender,Age,Time,Date,Meet name,Event
Alice,F,32,1:02.5,15-Mar-20,Spring Open,50 Free
Alice,F,32,1:01.0,16-Mar-20,Spring Open,50 Free
Bob,M,31,59.8,15-Mar-20,Spring Open,50 Free
Cara,F,47,1:10.2,10/04/2021,Fall Classic,100 Free
Dan,M,30-34,58.0,15-Mar-20,Spring Open,50 Free
Eve,F,,1:20.0,???,Mystery Meet,50 Free
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func startService(t *testing.T, opts ...service.Option) *service.Service {
	t.Helper()
	svc := service.New(opts...)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := svc.Start(ctx); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(svc.Stop)
	return svc
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithTopPerGroup(5),
			service.WithMaxSearchLimit(100),
			service.WithBinBounds(4, 12),
			service.WithYearPivot(60),
		)

		Convey("Then it should be created successfully", func() {
			So(svc, ShouldNotBeNil)
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a service pointed at a valid CSV", t, func() {
		svc := startService(t, service.WithDataPath(writeSample(t)))

		Convey("Then the snapshot should be loaded", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldBeTrue)
			So(stats["rows"], ShouldEqual, 6)
			So(stats["events"], ShouldEqual, 2)
		})
	})

	Convey("Given a service pointed at a missing file", t, func() {
		svc := service.New(service.WithDataPath(filepath.Join(t.TempDir(), "absent.csv")))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		Convey("When starting the service", func() {
			err := svc.Start(ctx)
			defer svc.Stop()

			Convey("Then it should start anyway and serve empty", func() {
				So(err, ShouldBeNil)

				_, _, qerr := svc.Summary(ctx)
				So(qerr, ShouldEqual, repository.ErrNoSnapshot)
			})
		})
	})
}

func TestService_Queries(t *testing.T) {
	Convey("Given a started service with sample data", t, func() {
		svc := startService(t, service.WithDataPath(writeSample(t)))
		ctx := context.Background()

		Convey("When computing the summary", func() {
			sum, snap, err := svc.Summary(ctx)

			Convey("Then it should count rows, genders, meets and races", func() {
				So(err, ShouldBeNil)
				So(snap, ShouldNotBeNil)
				So(sum.Total, ShouldEqual, 6)
				So(sum.Male, ShouldEqual, 2)
				So(sum.Female, ShouldEqual, 4)
				So(sum.Meets, ShouldEqual, 3)
			})
		})

		Convey("When listing events", func() {
			events, err := svc.Events(ctx)

			Convey("Then the distinct sorted names come back", func() {
				So(err, ShouldBeNil)
				So(events, ShouldResemble, []string{"100 Free", "50 Free"})
			})
		})

		Convey("When querying the leaderboard", func() {
			groups, err := svc.Leaderboard(ctx, leaderboard.Query{
				Event:    "50 Free",
				BestOnly: true,
			})

			Convey("Then every age band is present", func() {
				So(err, ShouldBeNil)
				So(len(groups), ShouldEqual, 13)
			})

			Convey("And the 30-34 band dedupes Alice to her best swim", func() {
				band := groups[0]
				So(band.Group.Label, ShouldEqual, "30-34")
				So(len(band.Entries), ShouldEqual, 3)
				So(band.Entries[0].Name, ShouldEqual, "Dan")
				So(band.Entries[1].Name, ShouldEqual, "Bob")
				So(band.Entries[2].Name, ShouldEqual, "Alice")
				So(band.Entries[2].Time, ShouldEqual, "1:01.0")
			})
		})

		Convey("When building the curve", func() {
			chart, ok, err := svc.Curve(ctx, "50 Free", true)

			Convey("Then exact-age rows form the chart", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(chart.Event, ShouldEqual, "50 Free")
				// Dan (age range) and Eve (no age) drop out.
				So(len(chart.Male.Points), ShouldEqual, 1)
				So(len(chart.Female.Points), ShouldEqual, 1)
			})
		})

		Convey("When ranking a custom age window", func() {
			ranked, hist, ok, err := svc.Distribution(ctx, leaderboard.RangeQuery{
				Event:    "50 Free",
				MinAge:   30,
				MaxAge:   34,
				BestOnly: true,
			})

			Convey("Then only exact ages in the window rank", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(len(ranked), ShouldEqual, 2)
				So(ranked[0].Rank, ShouldEqual, 1)
				So(ranked[0].Ordinal, ShouldEqual, "1st")
				So(ranked[0].Row.Name, ShouldEqual, "Bob")
				So(hist.Bins, ShouldNotBeEmpty)
			})
		})

		Convey("When searching by name", func() {
			rows, headers, err := svc.Search(ctx, "ali")

			Convey("Then matching rows and headers come back", func() {
				So(err, ShouldBeNil)
				So(len(rows), ShouldEqual, 2)
				So(rows[0].Name, ShouldEqual, "Alice")
				So(headers[0], ShouldEqual, "Name")
			})
		})
	})
}

func TestService_Reload(t *testing.T) {
	Convey("Given a started service", t, func() {
		path := writeSample(t)
		svc := startService(t, service.WithDataPath(path))
		ctx := context.Background()

		Convey("When the file changes and the service reloads", func() {
			extra := sampleCSV + "Fay,F,55,2:01.0,01-Jan-21,Winter Meet,50 Free\n"
			So(os.WriteFile(path, []byte(extra), 0o600), ShouldBeNil)

			snap, err := svc.Reload(ctx)

			Convey("Then the new snapshot becomes active", func() {
				So(err, ShouldBeNil)
				So(len(snap.Rows), ShouldEqual, 7)

				sum, _, serr := svc.Summary(ctx)
				So(serr, ShouldBeNil)
				So(sum.Total, ShouldEqual, 7)
			})
		})

		Convey("When a reload fails", func() {
			So(os.Remove(path), ShouldBeNil)
			_, err := svc.Reload(ctx)

			Convey("Then the previous snapshot stays active", func() {
				So(err, ShouldNotBeNil)

				sum, _, serr := svc.Summary(ctx)
				So(serr, ShouldBeNil)
				So(sum.Total, ShouldEqual, 6)
			})
		})
	})
}
