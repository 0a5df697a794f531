package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/lobby/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have the demo defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8501")
			convey.So(cfg.CatalogURL, convey.ShouldEqual, config.DefaultCatalogURL)
			convey.So(cfg.IconDir, convey.ShouldEqual, "img/Champion Icons")
			convey.So(cfg.Seed, convey.ShouldEqual, uint64(1))
			convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "lobby")
			convey.So(cfg.MetricsDeployment, convey.ShouldBeEmpty)
			convey.So(cfg.MetricsRefresh(), convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.CatalogTimeout(), convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.SessionTTL(), convey.ShouldEqual, time.Hour)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with invalid fields", t, func() {
		cases := []struct {
			name   string
			mutate func(*config.Config)
		}{
			{"empty addr", func(c *config.Config) { c.Addr = " " }},
			{"empty url", func(c *config.Config) { c.CatalogURL = "" }},
			{"zero timeout", func(c *config.Config) { c.CatalogTimeoutMS = 0 }},
			{"blank metrics namespace", func(c *config.Config) { c.MetricsNamespace = " " }},
			{"zero metrics refresh", func(c *config.Config) { c.MetricsRefreshSeconds = 0 }},
			{"zero capacity", func(c *config.Config) { c.SessionCapacity = 0 }},
			{"negative ttl", func(c *config.Config) { c.SessionTTLMinutes = -1 }},
		}
		for _, tc := range cases {
			convey.Convey("When validating with "+tc.name, func() {
				cfg := config.New()
				tc.mutate(cfg)
				err := cfg.Validate()

				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})
}
