package search

import (
	"context"
	"math/rand"
	"sort"

	"github.com/taylor-giles/Tetrify/internal/board"
	"github.com/taylor-giles/Tetrify/internal/tetromino"
)

// Result is the trichotomy a search node resolves to: whether the branch
// below it is done (successfully or not) or still open.
type Result int

// Possible node outcomes.
const (
	NotDone Result = iota
	Success
	Failure
)

func (r Result) String() string {
	switch r {
	case NotDone:
		return "NotDone"
	case Success:
		return "Success"
	case Failure:
		return "Failure"
	}
	return "Unknown"
}

// Step is one committed placement in a solution sequence.
type Step struct {
	Piece  tetromino.Piece
	Shape  tetromino.Shape
	Anchor board.Point
}

// Trace receives notifications as the driver explores the search tree. All
// methods are optional hooks; a nil Trace is never invoked (see Config.Trace
// and the notify helper), so implementations needing only one or two events
// can leave the rest as no-ops.
type Trace interface {
	// NodeEntered is called once per recursive call, before any placement
	// for that node is considered.
	NodeEntered(depth int, b *board.Board)
	// PlacementConsidered is called for every candidate placement
	// attempted at a node, whether or not the recursive call beneath it
	// eventually succeeds.
	PlacementConsidered(depth int, p Placement)
	// SolutionFound is called with a complete solution sequence whenever
	// the driver reaches a board whose false negatives are within
	// Tolerances.FalseNegatives, once per
	// distinct solution (including ones found mid-stream when MaxSolutions
	// allows continuing past the first).
	SolutionFound(steps []Step)
}

// Config parameterizes one search run.
type Config struct {
	Enumerator   Enumerator
	MaxDepth     int
	MaxSolutions int
	Rand         *rand.Rand
	Trace        Trace
	// OnSuccess is called with each complete solution as it is found. If it
	// returns false, the driver stops searching and returns immediately
	// (anytime streaming): the caller has seen enough solutions. If it
	// returns true, the driver treats the node as a Failure and backtracks
	// to look for further solutions, up to MaxSolutions.
	OnSuccess func(steps []Step) (keepGoing bool)
}

// Driver runs the depth-first, score-guided, backtracking placement search
// over a board, choosing piece orders at random and placements in
// score-descending order (ties broken randomly) at each node.
type Driver struct {
	cfg       Config
	found     int
	lastSteps []Step
}

// NewDriver constructs a Driver for one search run.
func NewDriver(cfg Config) *Driver {
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(1))
	}
	return &Driver{cfg: cfg}
}

// Run searches from b, reporting back the outcome of the top-level call.
// ctx cancellation is checked at every node entry; a cancelled context
// causes Run to return Failure without exploring further, the cooperative
// equivalent of the legacy source's "close the stream".
func (d *Driver) Run(ctx context.Context, b *board.Board) Result {
	return d.search(ctx, b, nil, 0)
}

func (d *Driver) notifyNode(depth int, b *board.Board) {
	if d.cfg.Trace != nil {
		d.cfg.Trace.NodeEntered(depth, b)
	}
}

func (d *Driver) notifyPlacement(depth int, p Placement) {
	if d.cfg.Trace != nil {
		d.cfg.Trace.PlacementConsidered(depth, p)
	}
}

func (d *Driver) notifySolution(steps []Step) {
	if d.cfg.Trace != nil {
		d.cfg.Trace.SolutionFound(steps)
	}
}

// search is the recursive backtracking core. steps accumulates the
// placements committed by the caller chain; b is owned by this call (the
// caller already cloned it, per the clone-per-recursion ownership model).
//
// Node entry follows §4.E step 1 in order: a cancelled context and a
// DidFail board both terminate the branch as Failure before anything else
// is considered; only then is the board checked for being within the false
// negative tolerance, which is this search's success condition.
func (d *Driver) search(ctx context.Context, b *board.Board, steps []Step, depth int) Result {
	if err := ctx.Err(); err != nil {
		return Failure
	}
	d.notifyNode(depth, b)

	tol := d.cfg.Enumerator.Tolerances
	if DidFail(b, tol) {
		return Failure
	}

	if b.FalseNegativeCount() <= tol.FalseNegatives {
		solved := append([]Step(nil), steps...)
		d.found++
		d.notifySolution(solved)
		keepGoing := false
		if d.cfg.OnSuccess != nil {
			keepGoing = d.cfg.OnSuccess(solved)
		}
		d.lastSteps = solved
		if !keepGoing || (d.cfg.MaxSolutions > 0 && d.found >= d.cfg.MaxSolutions) {
			return Success
		}
		return Failure
	}
	if d.cfg.MaxDepth > 0 && depth >= d.cfg.MaxDepth {
		return Failure
	}

	// Gather the union of every piece's placements before sorting, so the
	// best-first exploration order is greedy across pieces, not just
	// within whichever piece happens to be first in this node's random
	// order (spec.md §4.E steps b-c; tetris_agent.py:143-169).
	var placements []Placement
	for _, piece := range tetromino.ShuffledPieces(d.cfg.Rand) {
		placements = append(placements, d.cfg.Enumerator.Placements(b, piece)...)
	}
	if len(placements) == 0 {
		return Failure
	}
	sortPlacementsDescending(placements, d.cfg.Rand)

	for _, p := range placements {
		d.notifyPlacement(depth, p)

		next := b.Clone()
		if err := next.Apply(p.Shape, p.Anchor, true); err != nil {
			panic(err)
		}

		step := Step{Piece: p.Piece, Shape: p.Shape, Anchor: p.Anchor}
		result := d.search(ctx, next, append(steps, step), depth+1)
		if result == Success {
			return Success
		}
	}
	return Failure
}

// sortPlacementsDescending orders placements from best (highest) score to
// worst, shuffling each group of tied scores independently so that ties are
// broken at random rather than by enumeration order.
func sortPlacementsDescending(placements []Placement, rng *rand.Rand) {
	rng.Shuffle(len(placements), func(i, j int) {
		placements[i], placements[j] = placements[j], placements[i]
	})
	// A stable sort over the now-shuffled slice preserves the random
	// relative order within each tied-score group.
	sort.SliceStable(placements, func(i, j int) bool {
		return placements[i].Score > placements[j].Score
	})
}
