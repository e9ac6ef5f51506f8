package main

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/prom2json"

	"github.com/Control-D-Inc/hostnamer"
)

const metricsLabelKind = "kind"

// statsVersion represent hostnamer version.
var statsVersion = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "hostnamer_build_info",
	Help: "Version of hostnamer process.",
}, []string{"goversion", "version"})

// statsTimeStart represents start time of the compose server.
var statsTimeStart = prometheus.NewGauge(prometheus.GaugeOpts{
	Name: "hostnamer_time_seconds",
	Help: "Start time of the hostnamer process since unix epoch in seconds.",
})

// statsValidationsCount counts validation passes, labeled by validity.
var statsValidationsCount = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "hostnamer_validations_count",
	Help: "Total number of composed hostnames.",
}, []string{"valid"})

// statsFindingsCount counts validation findings by kind.
var statsFindingsCount = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "hostnamer_findings_count",
	Help: "Total number of validation findings.",
}, []string{metricsLabelKind})

// newMetricsRegistry returns a registry with runtime and hostnamer stats.
func newMetricsRegistry(version string) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	// Go runtime stats.
	reg.MustRegister(collectors.NewBuildInfoCollector())
	reg.MustRegister(collectors.NewGoCollector())
	// hostnamer stats.
	reg.MustRegister(statsVersion)
	statsVersion.WithLabelValues(runtime.Version(), version).Inc()
	reg.MustRegister(statsTimeStart)
	statsTimeStart.Set(float64(time.Now().Unix()))
	reg.MustRegister(statsValidationsCount)
	reg.MustRegister(statsFindingsCount)
	return reg
}

// observeResult records the outcome of a validation pass.
func observeResult(r hostnamer.Result) {
	if r.Valid() {
		statsValidationsCount.WithLabelValues("true").Inc()
		return
	}
	statsValidationsCount.WithLabelValues("false").Inc()
	for _, f := range r.Findings {
		statsFindingsCount.WithLabelValues(f.Kind.String()).Inc()
	}
}

// registerMetricsHandler adds the metrics handlers to mux.
func registerMetricsHandler(mux *http.ServeMux, reg *prometheus.Registry) {
	mux.Handle("/metrics", promhttp.HandlerFor(
		reg,
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
			Timeout:           10 * time.Second,
		},
	))
	mux.Handle("/metrics/json", jsonResponse(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g := prometheus.ToTransactionalGatherer(reg)
		mfs, done, err := g.Gather()
		defer done()
		if err != nil {
			msg := "could not gather metrics"
			mainLog.Warn().Err(err).Msg(msg)
			http.Error(w, msg, http.StatusInternalServerError)
			return
		}
		result := make([]*prom2json.Family, 0, len(mfs))
		for _, mf := range mfs {
			result = append(result, prom2json.NewFamily(mf))
		}
		if err := json.NewEncoder(w).Encode(result); err != nil {
			msg := "could not marshal metrics result"
			mainLog.Warn().Err(err).Msg(msg)
			http.Error(w, msg, http.StatusInternalServerError)
			return
		}
	})))
}

func jsonResponse(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeJson)
		next.ServeHTTP(w, r)
	})
}
