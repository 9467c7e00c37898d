package search

import (
	"github.com/taylor-giles/Tetrify/internal/board"
	"github.com/taylor-giles/Tetrify/internal/feature"
	"github.com/taylor-giles/Tetrify/internal/tetromino"
)

// Tolerances bounds how many false positives/negatives a solution may end
// with. They are invariant across one search.
type Tolerances struct {
	FalsePositives int
	FalseNegatives int
}

// DidFail reports whether b is a dead branch: either it already has too
// many false positives, or the lower-bound number of future false
// positives required to cover every straggler would exceed the false
// positive budget while too many false negatives remain to absorb
// instead.
func DidFail(b *board.Board, tol Tolerances) bool {
	stragglers, islands := feature.Stragglers(b)
	fp := feature.FalsePositives(b)
	return fp > tol.FalsePositives ||
		(fp+islands > tol.FalsePositives && stragglers > tol.FalseNegatives)
}

// Placement is a candidate final resting position for a piece, together
// with the state-value score the board would have after committing it.
// Piece is carried alongside Shape (which already identifies its
// originating piece through rotation) so that callers unioning placements
// across pieces, such as the search driver, don't need a side table to
// recover which piece produced a given candidate.
type Placement struct {
	Score  float64
	Piece  tetromino.Piece
	Shape  tetromino.Shape
	Anchor board.Point
}

// Enumerator produces admissible final placements for a piece on a board.
type Enumerator struct {
	Features       feature.WeightedFeatureSet
	Tolerances     Tolerances
	EnforceGravity bool
}

// Placements returns every admissible final resting placement for piece on
// b, each scored by Features. A placement is admissible iff committing it
// would not make the board DidFail.
//
// When EnforceGravity is set, each column/orientation pair contributes at
// most one placement (the hard-dropped position). Otherwise every row the
// piece could rest at before landing is a separate candidate, allowing the
// animated piece to "float" mid-air — this only affects which positions
// the search considers, not how §4.F's reifier moves a piece once chosen.
func (e Enumerator) Placements(b *board.Board, piece tetromino.Piece) []Placement {
	var placements []Placement

	for _, shape := range tetromino.Catalog[piece].Orientations() {
		startY := shape.SpawnHeight()
		for x := 0; x < b.Width; x++ {
			start := board.Point{X: x, Y: startY}
			if b.IsBlocked(shape, start) {
				continue
			}

			if e.EnforceGravity {
				anchor := hardDrop(b, shape, start)
				if p, ok := e.score(b, piece, shape, anchor); ok {
					placements = append(placements, p)
				}
				continue
			}

			for anchor := start; ; anchor.Y++ {
				if p, ok := e.score(b, piece, shape, anchor); ok {
					placements = append(placements, p)
				}
				if b.HasLanded(shape, anchor) {
					break
				}
			}
		}
	}
	return placements
}

// score clones b, provisionally applies shape at anchor, and returns the
// resulting Placement iff that would not make the board DidFail.
func (e Enumerator) score(b *board.Board, piece tetromino.Piece, shape tetromino.Shape, anchor board.Point) (Placement, bool) {
	clone := b.Clone()
	if err := clone.Apply(shape, anchor, !e.EnforceGravity); err != nil {
		panic(err)
	}
	if DidFail(clone, e.Tolerances) {
		return Placement{}, false
	}
	return Placement{Score: e.Features.Value(clone), Piece: piece, Shape: shape, Anchor: anchor}, true
}

// hardDrop returns the anchor shape would come to rest at if dropped
// straight down from start.
func hardDrop(b *board.Board, shape tetromino.Shape, start board.Point) board.Point {
	anchor := start
	for !b.HasLanded(shape, anchor) {
		anchor.Y++
	}
	return anchor
}
