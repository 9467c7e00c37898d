package search

import "github.com/taylor-giles/Tetrify/internal/board"

// NoopTrace implements Trace with no-op methods. It is useful as an
// embedded default for partial Trace implementations that only care about
// one or two events.
type NoopTrace struct{}

func (NoopTrace) NodeEntered(depth int, b *board.Board)      {}
func (NoopTrace) PlacementConsidered(depth int, p Placement) {}
func (NoopTrace) SolutionFound(steps []Step)                 {}

// MultiTrace fans every event out to each of its members in order, letting
// e.g. a logging Trace and a metrics Trace both observe the same search run
// without the driver knowing about either concern directly.
type MultiTrace []Trace

func (m MultiTrace) NodeEntered(depth int, b *board.Board) {
	for _, t := range m {
		t.NodeEntered(depth, b)
	}
}

func (m MultiTrace) PlacementConsidered(depth int, p Placement) {
	for _, t := range m {
		t.PlacementConsidered(depth, p)
	}
}

func (m MultiTrace) SolutionFound(steps []Step) {
	for _, t := range m {
		t.SolutionFound(steps)
	}
}
