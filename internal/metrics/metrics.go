// Package metrics exposes optional Prometheus instrumentation for the
// search driver. It is wired through the same search.Trace interface the
// driver already calls for logging, so the engine itself never imports
// Prometheus: when no --metrics-addr flag is given, cmd/tetrify simply
// never constructs a Trace from this package, and no collector of this
// package is registered or served.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taylor-giles/Tetrify/internal/board"
	"github.com/taylor-giles/Tetrify/internal/search"
)

// Trace implements search.Trace by incrementing Prometheus counters/gauges
// as the driver explores the search tree.
type Trace struct {
	nodesVisited      prometheus.Counter
	placementsScored  prometheus.Counter
	solutionsStreamed prometheus.Counter
	currentDepth      prometheus.Gauge
}

// NewTrace registers this run's metrics against reg and returns a Trace
// ready to hand to search.Config.Trace. Each call registers fresh
// collectors under fixed metric names, so a second NewTrace against the
// same registry panics on the duplicate registration; each Trace needs a
// registry of its own, such as one from prometheus.NewRegistry().
func NewTrace(reg prometheus.Registerer) *Trace {
	factory := promauto.With(reg)
	return &Trace{
		nodesVisited: factory.NewCounter(prometheus.CounterOpts{
			Name: "tetrify_search_nodes_visited_total",
			Help: "Number of search tree nodes entered by the placement search driver.",
		}),
		placementsScored: factory.NewCounter(prometheus.CounterOpts{
			Name: "tetrify_search_placements_scored_total",
			Help: "Number of candidate placements attempted by the placement search driver.",
		}),
		solutionsStreamed: factory.NewCounter(prometheus.CounterOpts{
			Name: "tetrify_search_solutions_streamed_total",
			Help: "Number of complete solutions found and streamed to the caller.",
		}),
		currentDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tetrify_search_current_depth",
			Help: "Recursion depth of the most recently entered search node.",
		}),
	}
}

func (t *Trace) NodeEntered(depth int, b *board.Board) {
	t.nodesVisited.Inc()
	t.currentDepth.Set(float64(depth))
}

func (t *Trace) PlacementConsidered(depth int, p search.Placement) {
	t.placementsScored.Inc()
}

func (t *Trace) SolutionFound(steps []search.Step) {
	t.solutionsStreamed.Inc()
}

// Serve runs an HTTP server on addr exposing the registry's collectors at
// /metrics. It blocks until the server stops and returns the error that
// stopped it; cmd/tetrify calls it from its own goroutine, and only when
// --metrics-addr is set, keeping metrics fully opt-in.
func Serve(addr string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return http.ListenAndServe(addr, mux)
}
