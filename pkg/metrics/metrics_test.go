package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then collectors are registered there", func() {
				So(manager, ShouldNotBeNil)
				manager.catalogSize.Set(3)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When creating with lobby options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("arena"),
				WithDeployment("eu"),
				WithRefreshInterval(5*time.Second),
				WithPrometheusRegistry(registry),
			)

			Convey("Then names carry the namespace and series the deployment label", func() {
				manager.sessionsCreated.Inc()
				n, err := testutil.GatherAndCount(registry, "arena_sessions_created_total")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)

				expected := `
# HELP arena_sessions_created_total Total number of lobby sessions created
# TYPE arena_sessions_created_total counter
arena_sessions_created_total{deployment="eu"} 1
`
				So(testutil.GatherAndCompare(registry, strings.NewReader(expected), "arena_sessions_created_total"), ShouldBeNil)
				So(manager.refreshInterval, ShouldEqual, 5*time.Second)
			})
		})

		Convey("When non-positive or empty values are given", func() {
			manager := NewManager(
				WithNamespace(""),
				WithRefreshInterval(0),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults stay", func() {
				So(manager.namespace, ShouldEqual, DefaultNamespace)
				So(manager.refreshInterval, ShouldEqual, defaultRefreshInterval)
			})
		})
	})
}

func TestInit(t *testing.T) {
	Convey("Given the package-level manager", t, func() {
		prevManager, prevRegistry := globalManager, customRegistry
		defer func() { globalManager, customRegistry = prevManager, prevRegistry }()

		Convey("When initialized from configuration", func() {
			So(Init("lobby_eu", "canary", 3*time.Second), ShouldBeNil)

			Convey("Then package functions record on the new registry", func() {
				So(GetRegistry(), ShouldNotPointTo, prevRegistry)
				So(RefreshInterval(), ShouldEqual, 3*time.Second)
				RecordSessionCreated()
				n, err := testutil.GatherAndCount(GetRegistry(), "lobby_eu_sessions_created_total")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
			})
		})

		Convey("When the namespace is not a metric name", func() {
			err := Init("lobby-eu", "", 0)

			Convey("Then nothing is replaced", func() {
				So(errors.Is(err, ErrInvalidNamespace), ShouldBeTrue)
				So(globalManager, ShouldPointTo, prevManager)
				So(GetRegistry(), ShouldPointTo, prevRegistry)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording catalog loads", func() {
			before := testutil.ToFloat64(globalManager.catalogLoads.WithLabelValues("failure"))
			RecordCatalogLoad(false, 12)
			RecordCatalogLoad(true, 8)
			UpdateCatalogSize(161)

			Convey("Then the outcome counters move", func() {
				So(testutil.ToFloat64(globalManager.catalogLoads.WithLabelValues("failure")), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.catalogSize), ShouldEqual, 161)
			})
		})

		Convey("When recording roster activity", func() {
			So(func() {
				RecordSessionCreated()
				UpdateActiveSessions(4)
				RecordSelection("blue")
				RecordSelection("red")
				RecordDuplicateSelection()
				RecordPrediction("BLUE")
				RecordIconFallback()
			}, ShouldNotPanic)
			So(testutil.ToFloat64(globalManager.sessionsActive), ShouldEqual, 4)
		})

		Convey("When recording HTTP and system metrics", func() {
			So(func() {
				RecordHTTPRequest("/", "GET", "200")
				RecordHTTPRequestDuration("/", "GET", "200", 3.0)
				RecordErrorByEndpoint("/select", "POST", "client_error")
				UpdateSystemMemoryUsage(1024 * 1024)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.4)
			}, ShouldNotPanic)
		})

		Convey("Then the registry exposes the lobby namespace", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			found := false
			for _, f := range families {
				if strings.HasPrefix(f.GetName(), "lobby_") {
					found = true
				}
			}
			So(found, ShouldBeTrue)
		})
	})
}
