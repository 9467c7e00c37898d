package search

import (
	"testing"

	"github.com/taylor-giles/Tetrify/internal/board"
	"github.com/taylor-giles/Tetrify/internal/feature"
	"github.com/taylor-giles/Tetrify/internal/tetromino"
)

func lenientEnumerator(enforceGravity bool) Enumerator {
	return Enumerator{
		Features:       feature.DefaultFeatureSet(false),
		Tolerances:     Tolerances{FalsePositives: 100, FalseNegatives: 100},
		EnforceGravity: enforceGravity,
	}
}

func TestPlacementsWithGravityOneAnchorPerColumnOrientation(t *testing.T) {
	b := board.FromTarget([][]bool{
		{false, false, false, false},
		{false, false, false, false},
		{false, false, false, false},
		{false, false, false, false},
	})
	e := lenientEnumerator(true)
	placements := e.Placements(b, tetromino.O)

	anchors := map[board.Point]bool{}
	for _, p := range placements {
		key := board.Point{X: p.Anchor.X, Y: p.Anchor.Y}
		if anchors[key] {
			t.Errorf("duplicate (orientation dedup aside) anchor %v produced twice for O with gravity", key)
		}
		anchors[key] = true
		if !b.HasLanded(p.Shape, p.Anchor) {
			t.Errorf("gravity placement at %v has not landed", p.Anchor)
		}
	}
	if len(placements) == 0 {
		t.Fatal("expected at least one placement")
	}
}

func TestPlacementsWithoutGravityFloatsEveryRow(t *testing.T) {
	b := board.FromTarget([][]bool{
		{false, false},
		{false, false},
		{false, false},
		{false, false},
	})
	e := lenientEnumerator(false)
	placements := e.Placements(b, tetromino.O)

	// O has one orientation and, on a 2-wide board, exactly one column its
	// footprint fits in (anchored at x=1, covering columns 0 and 1). Every
	// row from spawn to the floor should be a distinct candidate.
	startY := tetromino.Catalog[tetromino.O].SpawnHeight()
	want := b.Height - startY
	if len(placements) != want {
		t.Errorf("len(placements) = %d, want %d", len(placements), want)
	}
	for _, p := range placements {
		if p.Anchor.X != 1 {
			t.Errorf("placement anchored at column %d, want 1 (O needs columns 0 and 1)", p.Anchor.X)
		}
	}
}

func TestPlacementsSkipsBlockedColumns(t *testing.T) {
	b := board.FromTarget([][]bool{
		{false, false, false},
		{false, false, false},
		{false, false, false},
	})
	// Fill every cell in column 0, so an O piece (2 columns wide) can only
	// be anchored covering columns {1, 2}, never {0, 1}.
	degenerate := tetromino.Shape{
		Piece:   tetromino.O,
		Offsets: [4]tetromino.Offset{{0, 0}, {1000, 1000}, {1000, 1000}, {1000, 1000}},
	}
	for y := 0; y < b.Height; y++ {
		if err := b.Apply(degenerate, board.Point{X: 0, Y: y}, true); err != nil {
			t.Fatalf("setup Apply() failed: %v", err)
		}
	}

	e := lenientEnumerator(true)
	placements := e.Placements(b, tetromino.O)
	if len(placements) == 0 {
		t.Fatal("expected at least one placement anchored at column 2")
	}
	for _, p := range placements {
		if p.Anchor.X != 2 {
			t.Errorf("placement anchored at column %d, want 2 (columns {0,1} are blocked by column 0)", p.Anchor.X)
		}
	}
}

func TestPlacementsExcludesDidFailCandidates(t *testing.T) {
	b := board.FromTarget([][]bool{
		{false, false, false, false},
		{false, false, false, false},
		{false, false, false, false},
	})
	e := Enumerator{
		Features:       feature.DefaultFeatureSet(false),
		Tolerances:     Tolerances{FalsePositives: 0, FalseNegatives: 0},
		EnforceGravity: true,
	}
	placements := e.Placements(b, tetromino.O)
	if len(placements) != 0 {
		t.Errorf("len(placements) = %d, want 0 (any placement on an all-unselected board creates a false positive)", len(placements))
	}
}

func TestDidFail(t *testing.T) {
	tol := Tolerances{FalsePositives: 0, FalseNegatives: 0}
	empty := board.FromTarget([][]bool{{false}})
	if DidFail(empty, tol) {
		t.Error("DidFail() on an empty board with zero tolerance = true, want false")
	}

	selected := board.FromTarget([][]bool{{true}})
	if !DidFail(selected, tol) {
		t.Error("DidFail() with one straggler and zero false-negative tolerance = false, want true")
	}
}
