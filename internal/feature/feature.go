// Package feature implements the scoring features the search driver and
// placement enumerator evaluate a board against, along with the fixed
// (all -1) weight vector used to turn those features into a single score.
package feature

import "github.com/taylor-giles/Tetrify/internal/board"

// Feature maps a board to a non-negative "badness" measurement.
type Feature func(*board.Board) int

// FalsePositives counts cells that are filled but not selected.
func FalsePositives(b *board.Board) int {
	return b.FalsePositiveCount()
}

// FalseNegatives counts cells that are selected but not filled.
func FalseNegatives(b *board.Board) int {
	return b.FalseNegativeCount()
}

// BuriedFalseNegatives counts, per column, the false negatives that sit
// beneath a filled cell and are therefore unreachable without first
// clearing what covers them. Scanning each column from the bottom row up, a
// running count of false negatives is added to the total every time a
// filled cell is reached, then reset; false negatives above a column's
// highest filled cell are still open and are not counted.
func BuriedFalseNegatives(b *board.Board) int {
	total := 0
	for x := 0; x < b.Width; x++ {
		running := 0
		for y := b.Height - 1; y >= 0; y-- {
			cell := b.At(x, y)
			if cell.State == board.FalseNegative {
				running++
			}
			if cell.State.IsFilled() {
				total += running
				running = 0
			}
		}
	}
	return total
}

// Stragglers connected-component scans the board's false-negative cells
// (4-neighborhood). Each component of size k contributes k mod 4 to the
// returned straggler count — the minimum number of cells that will have to
// be covered by a false positive to finish filling that component — and
// contributes 1 to the returned island count, a lower bound on how many
// separate false positives satisfying those stragglers will require.
func Stragglers(b *board.Board) (stragglers, islands int) {
	visited := make([]bool, b.Width*b.Height)
	idx := func(x, y int) int { return y*b.Width + x }

	var componentSize func(x, y int) int
	componentSize = func(x, y int) int {
		if !b.InBounds(x, y) || visited[idx(x, y)] {
			return 0
		}
		visited[idx(x, y)] = true
		if b.At(x, y).State != board.FalseNegative {
			return 0
		}
		size := 1
		size += componentSize(x-1, y)
		size += componentSize(x+1, y)
		size += componentSize(x, y-1)
		size += componentSize(x, y+1)
		return size
	}

	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if visited[idx(x, y)] || b.At(x, y).State != board.FalseNegative {
				continue
			}
			size := componentSize(x, y)
			stragglers += size % 4
			islands++
		}
	}
	return stragglers, islands
}

// Wells counts 1-wide columns of empty cells flanked on both sides by
// filled cells. Such a well can only be filled cleanly by an I piece
// dropped vertically, so it penalizes boards that will force reliance on
// I pieces. This resolves the reduce_Is open question left undefined by
// the retained legacy source: a well is any empty cell whose immediate
// left and right neighbors (or the board edge standing in for an implicit
// wall) are both filled.
func Wells(b *board.Board) int {
	count := 0
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.At(x, y).State.IsFilled() {
				continue
			}
			leftBlocked := x == 0 || b.At(x-1, y).State.IsFilled()
			rightBlocked := x == b.Width-1 || b.At(x+1, y).State.IsFilled()
			if leftBlocked && rightBlocked {
				count++
			}
		}
	}
	return count
}

// Towers counts, per column, how much that column's filled height exceeds
// the average filled height of its immediate neighbors. This is the
// complement of Wells: an isolated tall column of filled cells is exactly
// the shape that invites well-digging (and therefore I-piece reliance) in
// the columns beside it, so it is penalized directly instead.
func Towers(b *board.Board) int {
	heights := make([]int, b.Width)
	for x := 0; x < b.Width; x++ {
		for y := 0; y < b.Height; y++ {
			if b.At(x, y).State.IsFilled() {
				heights[x] = b.Height - y
				break
			}
		}
	}

	total := 0
	for x, h := range heights {
		neighbors, sum := 0, 0
		if x > 0 {
			sum += heights[x-1]
			neighbors++
		}
		if x < b.Width-1 {
			sum += heights[x+1]
			neighbors++
		}
		if neighbors == 0 {
			continue
		}
		avg := sum / neighbors
		if h > avg {
			total += h - avg
		}
	}
	return total
}

// WeightedFeatureSet evaluates a board's state value as the weighted sum
// of a list of features. This is the reserved data path for configurable
// feature weights ("the ML hook") noted by the legacy source: nothing in
// this engine currently optimizes the weights, but the type accepts
// arbitrary ones.
type WeightedFeatureSet struct {
	Features []Feature
	Weights  []float64
}

// DefaultFeatureSet returns the standard feature set with every weight
// fixed at -1, matching the legacy agent's parameters. When reduceIs is
// true, Wells and Towers are added so boards relying on I pieces to clean
// up afterward score worse.
func DefaultFeatureSet(reduceIs bool) WeightedFeatureSet {
	features := []Feature{FalsePositives, FalseNegatives, BuriedFalseNegatives}
	if reduceIs {
		features = append(features, Wells, Towers)
	}
	weights := make([]float64, len(features))
	for i := range weights {
		weights[i] = -1
	}
	return WeightedFeatureSet{Features: features, Weights: weights}
}

// Value returns the board's state value: the weighted sum of every
// feature's output. Smaller-magnitude (less negative) values are better.
func (w WeightedFeatureSet) Value(b *board.Board) float64 {
	var total float64
	for i, f := range w.Features {
		total += float64(f(b)) * w.Weights[i]
	}
	return total
}
