package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the planner
	Registry = prometheus.NewRegistry()

	// OptimizerCandidates counts candidate routes evaluated by the local search
	OptimizerCandidates = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "planner_optimizer_candidates_total", Help: "Candidate routes evaluated by the optimizer."},
	)
	// OptimizerImprovements counts candidates adopted as the new best route
	OptimizerImprovements = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "planner_optimizer_improvements_total", Help: "Candidates that strictly improved the best score."},
	)
	// OptimizerRejected counts structurally invalid candidates
	OptimizerRejected = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "planner_optimizer_rejected_total", Help: "Candidates that failed validation."},
	)

	// RouteScore records the score of the route at each stage (initial, final)
	RouteScore = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "planner_route_score", Help: "Route score by stage."},
		[]string{"stage"},
	)
	// RouteDistance records the total path length at each stage
	RouteDistance = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "planner_route_distance", Help: "Route path length by stage."},
		[]string{"stage"},
	)

	// PhaseDuration records planning phase durations in seconds
	PhaseDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "planner_phase_duration_seconds", Help: "Planning phase duration in seconds.", Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2, 5}},
		[]string{"phase"},
	)
)

// RegisterDefault registers the planner collectors on Registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(OptimizerCandidates)
		Registry.MustRegister(OptimizerImprovements)
		Registry.MustRegister(OptimizerRejected)
		Registry.MustRegister(RouteScore)
		Registry.MustRegister(RouteDistance)
		Registry.MustRegister(PhaseDuration)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once

// WriteTextfile dumps the registry in the Prometheus text format, for
// pickup by a node-exporter textfile collector after the run exits.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("write metrics textfile %q: %w", path, err)
	}
	return nil
}
