package logging

import (
	"github.com/rs/zerolog"

	"github.com/taylor-giles/Tetrify/internal/board"
	"github.com/taylor-giles/Tetrify/internal/search"
)

// Trace implements search.Trace by writing one log line per solution
// found, and (optionally, since it is cheap to skip) every Nth node
// entered. Placement-level events are never logged; they fire far too
// often to be useful outside of deep debugging, so PlacementConsidered is
// a no-op here.
type Trace struct {
	Logger zerolog.Logger
	// NodeLogInterval, if greater than zero, logs one line every that many
	// NodeEntered calls. Zero disables node-level logging entirely.
	NodeLogInterval int

	nodes int
}

func (t *Trace) NodeEntered(depth int, b *board.Board) {
	if t.NodeLogInterval <= 0 {
		return
	}
	t.nodes++
	if t.nodes%t.NodeLogInterval != 0 {
		return
	}
	t.Logger.Log().Int("depth", depth).Int("nodes_visited", t.nodes).
		Int("false_negatives", b.FalseNegativeCount()).
		Int("false_positives", b.FalsePositiveCount()).
		Msg("search node visited")
}

func (t *Trace) PlacementConsidered(depth int, p search.Placement) {}

func (t *Trace) SolutionFound(steps []search.Step) {
	t.Logger.Log().Int("pieces_placed", len(steps)).Msg("solution found")
}
