// Command tetrify reads one placement-search request from stdin and
// streams the solutions it finds back to stdout, one <EOF>-terminated
// JSON frame at a time.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/taylor-giles/Tetrify/internal/board"
	"github.com/taylor-giles/Tetrify/internal/feature"
	"github.com/taylor-giles/Tetrify/internal/logging"
	"github.com/taylor-giles/Tetrify/internal/metrics"
	"github.com/taylor-giles/Tetrify/internal/proto"
	"github.com/taylor-giles/Tetrify/internal/search"
)

var (
	seed         int64
	maxSolutions int
	maxDepth     int
	metricsAddr  string
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tetrify",
		Short: "Reconstruct a target image from tetromino placements",
		Long: "tetrify reads a single JSON request from stdin describing a target\n" +
			"image and tolerance budget, searches for a placement sequence that\n" +
			"reproduces it, and streams reified solutions back on stdout.",
		RunE: run,
	}
	flags := cmd.Flags()
	flags.Int64Var(&seed, "seed", 1, "PRNG seed for piece ordering and tie-breaking")
	flags.IntVar(&maxSolutions, "max-solutions", 1, "stop after streaming this many solutions (0 = unbounded)")
	flags.IntVar(&maxDepth, "max-depth", 0, "maximum pieces to place before giving up (0 = unbounded)")
	flags.StringVar(&metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090)")
	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatalf("tetrify: %v", err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	out := proto.NewFrameWriter(os.Stdout)
	logger := logging.New(out).With().Str("request_id", uuid.NewString()).Logger()
	// An illegal board mutation inside the search panics; report it as a
	// log line and exit non-zero rather than dying with a bare stack trace.
	defer func() {
		if r := recover(); r != nil {
			logger.Log().Str("panic", fmt.Sprint(r)).Msg("internal invariant violation")
			os.Exit(1)
		}
	}()

	req, err := proto.DecodeRequest(os.Stdin)
	if err != nil {
		logger.Log().Err(err).Msg("malformed request")
		return err
	}

	b := board.FromTarget(req.Grid)
	enumerator := search.Enumerator{
		Features: feature.DefaultFeatureSet(req.ReduceIs),
		Tolerances: search.Tolerances{
			FalsePositives: req.FalsePositives,
			FalseNegatives: req.FalseNegatives,
		},
		EnforceGravity: req.EnforceGravity,
	}

	rngSeed := seed
	if req.Seed != nil {
		rngSeed = *req.Seed
	}

	trace := buildTrace(logger)
	cfg := search.Config{
		Enumerator:   enumerator,
		MaxDepth:     maxDepth,
		MaxSolutions: maxSolutions,
		Rand:         rand.New(rand.NewSource(rngSeed)),
		Trace:        trace,
		OnSuccess: func(steps []search.Step) bool {
			frames := search.Reify(b, steps)
			response := proto.Response{
				Frames:  make([][][]int, len(frames)),
				Actions: make([]string, len(frames)),
			}
			for i, f := range frames {
				response.Frames[i] = f.Cells
				response.Actions[i] = f.Action.String()
			}
			if err := out.WriteResponse(response); err != nil {
				logger.Log().Err(err).Msg("failed to write response frame")
			}
			// Always ask for more; Config.MaxSolutions already bounds how
			// many the driver will actually collect before stopping.
			return true
		},
	}

	result := search.NewDriver(cfg).Run(context.Background(), b)
	logger.Log().Str("result", result.String()).Msg("search finished")
	return nil
}

// buildTrace fans NodeEntered/PlacementConsidered/SolutionFound out to a
// logging trace built on logger, and additionally to a metrics trace when
// --metrics-addr requests it. With no flag, only the logging trace runs
// and Prometheus is never touched.
func buildTrace(logger zerolog.Logger) search.Trace {
	logTrace := &logging.Trace{Logger: logger}
	if metricsAddr == "" {
		return logTrace
	}

	reg := prometheus.NewRegistry()
	metricsTrace := metrics.NewTrace(reg)
	go func() {
		if err := metrics.Serve(metricsAddr, reg); err != nil {
			fmt.Fprintf(os.Stderr, "tetrify: metrics listener failed: %v\n", err)
		}
	}()
	return search.MultiTrace{logTrace, metricsTrace}
}
