package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "utilapi")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(manager.namespace, ShouldEqual, "test_namespace")
				So(manager.subsystem, ShouldEqual, "test_subsystem")
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
			})

			Convey("And empty values should not override defaults", func() {
				m := NewManager(WithNamespace(""), WithHistogramBuckets(nil), WithPrometheusRegistry(prometheus.NewRegistry()))
				So(m.namespace, ShouldEqual, "utilapi")
				So(len(m.histogramBuckets), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When registering twice on the same registry", func() {
			registry := prometheus.NewRegistry()
			_ = NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should panic on duplicate collectors", func() {
				So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on an isolated registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		Convey("When recording HTTP requests", func() {
			m.RecordHTTPRequest("/echo", "POST", "200", 1.5)
			m.RecordHTTPRequest("/echo", "POST", "200", 2.5)

			Convey("Then the counter should reflect them", func() {
				So(testutil.ToFloat64(m.httpRequests.WithLabelValues("/echo", "POST", "200")), ShouldEqual, 2)
			})
		})

		Convey("When tracking in-flight requests", func() {
			m.IncInFlight()
			m.IncInFlight()
			m.DecInFlight()

			Convey("Then the gauge should hold the difference", func() {
				So(testutil.ToFloat64(m.httpRequestsInFlight), ShouldEqual, 1)
			})
		})

		Convey("When recording errors", func() {
			m.RecordError("/weather", "GET", "client_error", "medium")

			Convey("Then both error counters should move", func() {
				So(testutil.ToFloat64(m.errorRateByEndpoint.WithLabelValues("/weather", "GET", "client_error")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.errorRateByType.WithLabelValues("client_error", "medium")), ShouldEqual, 1)
			})
		})

		Convey("When recording upstream calls", func() {
			m.RecordUpstream("openweathermap", "ok", 120)
			m.RecordUpstream("openweathermap", "error", 10000)

			Convey("Then outcomes should be counted separately", func() {
				So(testutil.ToFloat64(m.upstreamRequests.WithLabelValues("openweathermap", "ok")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.upstreamRequests.WithLabelValues("openweathermap", "error")), ShouldEqual, 1)
			})
		})

		Convey("When updating system gauges", func() {
			m.UpdateSystem(1024, 7, 0)

			Convey("Then the gauges should be set", func() {
				So(testutil.ToFloat64(m.systemMemoryUsage), ShouldEqual, 1024)
				So(testutil.ToFloat64(m.systemGoroutineCount), ShouldEqual, 7)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then package helpers should not panic", func() {
			So(func() {
				RecordHTTPRequest("/health", "GET", "200", 0.2)
				IncInFlight()
				DecInFlight()
				RecordError("/transform", "POST", "client_error", "medium")
				RecordUpstream("openweathermap", "ok", 5)
				UpdateSystem(2048, 3, 0.4)
			}, ShouldNotPanic)
		})

		Convey("Then the registry should expose gathered families", func() {
			RecordHTTPRequest("/health", "GET", "200", 0.2)
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}
