package search

import (
	"context"
	"math/rand"
	"testing"

	"github.com/taylor-giles/Tetrify/internal/board"
	"github.com/taylor-giles/Tetrify/internal/feature"
	"github.com/taylor-giles/Tetrify/internal/tetromino"
)

func strictConfig(maxSolutions int, onSuccess func([]Step) bool) Config {
	return Config{
		Enumerator: Enumerator{
			Features:       feature.DefaultFeatureSet(false),
			Tolerances:     Tolerances{},
			EnforceGravity: true,
		},
		MaxDepth:     4,
		MaxSolutions: maxSolutions,
		Rand:         rand.New(rand.NewSource(7)),
		OnSuccess:    onSuccess,
	}
}

func TestRunFindsExactSolution(t *testing.T) {
	b := board.FromTarget([][]bool{
		{true, true},
		{true, true},
	})
	var got []Step
	cfg := strictConfig(1, func(steps []Step) bool {
		got = steps
		return false
	})
	d := NewDriver(cfg)
	if result := d.Run(context.Background(), b); result != Success {
		t.Fatalf("Run() = %v, want Success", result)
	}
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1", len(got))
	}
	if got[0].Piece != tetromino.O {
		t.Errorf("solution piece = %v, want O", got[0].Piece)
	}

	replay := b.Clone()
	if err := replay.Apply(got[0].Shape, got[0].Anchor, true); err != nil {
		t.Fatalf("replaying solution failed: %v", err)
	}
	if n := replay.FalseNegativeCount(); n != 0 {
		t.Errorf("replayed board has %d false negatives, want 0", n)
	}
}

func TestRunFailsWhenUnsolvable(t *testing.T) {
	// A single selected cell can never be exactly covered: every tetromino
	// touches 4 cells, so the result always has either false positives or,
	// at zero tolerance, is pruned outright.
	b := board.FromTarget([][]bool{{true}})
	d := NewDriver(strictConfig(1, nil))
	if result := d.Run(context.Background(), b); result != Failure {
		t.Errorf("Run() = %v, want Failure", result)
	}
}

func TestRunHonorsCancelledContext(t *testing.T) {
	b := board.FromTarget([][]bool{
		{true, true},
		{true, true},
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	cfg := strictConfig(1, func(steps []Step) bool {
		called = true
		return false
	})
	d := NewDriver(cfg)
	if result := d.Run(ctx, b); result != Failure {
		t.Errorf("Run() = %v, want Failure", result)
	}
	if called {
		t.Error("OnSuccess was called despite a cancelled context")
	}
}

func TestRunKeepGoingExhaustsSearchAfterUniqueSolution(t *testing.T) {
	b := board.FromTarget([][]bool{
		{true, true},
		{true, true},
	})
	count := 0
	cfg := strictConfig(0, func(steps []Step) bool {
		count++
		return true // keep searching for more solutions than exist
	})
	d := NewDriver(cfg)
	result := d.Run(context.Background(), b)
	if result != Failure {
		t.Errorf("Run() = %v, want Failure (search space exhausted)", result)
	}
	if count != 1 {
		t.Errorf("OnSuccess called %d times, want 1 (only one exact covering exists)", count)
	}
}

func TestRunSucceedsWithinFalseNegativeTolerance(t *testing.T) {
	// A single selected cell can never be exactly covered by a tetromino, so
	// false negatives can never reach exactly 0 here (see
	// TestRunFailsWhenUnsolvable). With a false-negative tolerance of 1,
	// though, the root board is already within tolerance and the driver
	// must report Success without placing anything.
	b := board.FromTarget([][]bool{{true}})
	cfg := Config{
		Enumerator: Enumerator{
			Features:       feature.DefaultFeatureSet(false),
			Tolerances:     Tolerances{FalsePositives: 0, FalseNegatives: 1},
			EnforceGravity: true,
		},
		MaxDepth:     4,
		MaxSolutions: 1,
		Rand:         rand.New(rand.NewSource(7)),
	}
	d := NewDriver(cfg)
	if result := d.Run(context.Background(), b); result != Success {
		t.Errorf("Run() = %v, want Success (1 false negative is within tolerance)", result)
	}
}

func TestResultString(t *testing.T) {
	tests := map[Result]string{NotDone: "NotDone", Success: "Success", Failure: "Failure"}
	for r, want := range tests {
		if got := r.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", r, got, want)
		}
	}
}
