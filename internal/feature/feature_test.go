package feature

import (
	"testing"

	"github.com/taylor-giles/Tetrify/internal/board"
	"github.com/taylor-giles/Tetrify/internal/tetromino"
)

// degenerateShapeAt returns a tetromino.Shape that touches exactly one
// on-board cell, using far out-of-bounds offsets for the remaining three
// cells so board.Apply silently skips them. This lets tests flip a single
// cell's state without needing a board large enough to host a real piece.
func degenerateShapeAt() tetromino.Shape {
	return tetromino.Shape{
		Piece:   tetromino.O,
		Offsets: [4]tetromino.Offset{{0, 0}, {1000, 1000}, {1000, 1000}, {1000, 1000}},
	}
}

func TestFalsePositivesAndNegatives(t *testing.T) {
	b := board.FromTarget([][]bool{
		{true, true, false},
		{false, false, false},
	})
	// Manually fill one unselected cell to create a false positive.
	if err := b.Apply(degenerateShapeAt(), board.Point{X: 2, Y: 1}, true); err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}

	if got := FalsePositives(b); got != 1 {
		t.Errorf("FalsePositives() = %d, want 1", got)
	}
	if got := FalseNegatives(b); got != 2 {
		t.Errorf("FalseNegatives() = %d, want 2", got)
	}
}

func TestBuriedFalseNegatives(t *testing.T) {
	// Column 0: two selected cells, then a filled cell above both.
	b := board.FromTarget([][]bool{
		{false},
		{true},
		{true},
	})
	if err := b.Apply(degenerateShapeAt(), board.Point{X: 0, Y: 0}, true); err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if got := BuriedFalseNegatives(b); got != 2 {
		t.Errorf("BuriedFalseNegatives() = %d, want 2", got)
	}
}

func TestStragglers(t *testing.T) {
	tests := []struct {
		desc        string
		grid        [][]bool
		wantCount   int
		wantIslands int
	}{
		{
			desc:        "one island of 4 is not a straggler",
			grid:        [][]bool{{true, true, true, true}},
			wantCount:   0,
			wantIslands: 1,
		},
		{
			desc:        "one isolated cell is a straggler",
			grid:        [][]bool{{true}},
			wantCount:   1,
			wantIslands: 1,
		},
		{
			desc: "two separate islands",
			grid: [][]bool{
				{true, false, true},
			},
			wantCount:   2,
			wantIslands: 2,
		},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			b := board.FromTarget(test.grid)
			count, islands := Stragglers(b)
			if count != test.wantCount {
				t.Errorf("stragglers = %d, want %d", count, test.wantCount)
			}
			if islands != test.wantIslands {
				t.Errorf("islands = %d, want %d", islands, test.wantIslands)
			}
		})
	}
}

func TestDefaultFeatureSetWeightsAreNegativeOne(t *testing.T) {
	for _, reduceIs := range []bool{false, true} {
		fs := DefaultFeatureSet(reduceIs)
		for _, w := range fs.Weights {
			if w != -1 {
				t.Errorf("weight = %v, want -1", w)
			}
		}
	}
}

func TestDefaultFeatureSetReduceIsAddsWellsAndTowers(t *testing.T) {
	without := DefaultFeatureSet(false)
	with := DefaultFeatureSet(true)
	if len(with.Features) != len(without.Features)+2 {
		t.Errorf("len(with.Features) = %d, want %d", len(with.Features), len(without.Features)+2)
	}
}
