package config

import (
	"context"
	"errors"
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given the environment", t, func() {
		// Clean slate for the env keys we touch.
		for _, k := range []string{"PACELINE_CONFIG", "PACELINE_ADDR", "PACELINE_TOP_PER_GROUP", "PACELINE_DATA_PATH"} {
			So(os.Unsetenv(k), ShouldBeNil)
		}

		Convey("When loading without any overrides", func() {
			cfg, err := Load(context.Background())

			Convey("Then defaults should apply", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9080")
				So(cfg.YearPivot, ShouldEqual, 50)
			})
		})

		Convey("When env overrides are set", func() {
			So(os.Setenv("PACELINE_ADDR", ":7070"), ShouldBeNil)
			So(os.Setenv("PACELINE_TOP_PER_GROUP", "5"), ShouldBeNil)
			defer func() {
				_ = os.Unsetenv("PACELINE_ADDR")
				_ = os.Unsetenv("PACELINE_TOP_PER_GROUP")
			}()

			cfg, err := Load(context.Background())

			Convey("Then they should take precedence over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.TopPerGroup, ShouldEqual, 5)
			})
		})

		Convey("When a YAML config file is supplied", func() {
			f, err := os.CreateTemp(t.TempDir(), "paceline-*.yaml")
			So(err, ShouldBeNil)
			_, err = f.WriteString("addr: \":6060\"\ndata_path: \"archive.csv\"\n")
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)
			So(os.Setenv("PACELINE_CONFIG", f.Name()), ShouldBeNil)
			defer func() { _ = os.Unsetenv("PACELINE_CONFIG") }()

			cfg, err := Load(context.Background())

			Convey("Then file values should override defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":6060")
				So(cfg.DataPath, ShouldEqual, "archive.csv")
			})
		})

		Convey("When validation fails", func() {
			So(os.Setenv("PACELINE_YEAR_PIVOT", "120"), ShouldBeNil)
			defer func() { _ = os.Unsetenv("PACELINE_YEAR_PIVOT") }()

			_, err := Load(context.Background())

			Convey("Then Load should return an invalid-config error", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})
}
