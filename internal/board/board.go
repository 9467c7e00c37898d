// Package board implements the dual-state cell grid the placement search
// operates over: each cell tracks whether it is selected (part of the
// target image) and whether it is occupied (covered by a committed or
// ghost-previewed tetromino).
package board

import (
	"fmt"
	"strings"

	"github.com/taylor-giles/Tetrify/internal/tetromino"
)

// CellState is the dual-state code of a single cell. The code equals
// selectedBit*3 + occupiedBit*1, so applying/clearing a piece is always a
// +1/-1 on the stored code. Code 2 is reserved and never legally occupied.
type CellState uint8

// Possible cell states.
const (
	Empty         CellState = 0
	FalsePositive CellState = 1
	// value 2 is intentionally unused
	FalseNegative CellState = 3
	Filled        CellState = 4
)

// IsFilled reports whether a cell of this state is currently occupied,
// regardless of whether that occupation was wanted.
func (c CellState) IsFilled() bool {
	return c == FalsePositive || c == Filled
}

// IsSelected reports whether a cell of this state belongs to the target
// image.
func (c CellState) IsSelected() bool {
	return c == FalseNegative || c == Filled
}

// Point is an integer board coordinate. X is the column, Y is the row;
// increasing Y moves toward the bottom of the board, i.e. the direction
// gravity pulls a falling piece.
type Point struct {
	X, Y int
}

// Cell is a single grid square.
type Cell struct {
	State CellState
	// Ghost is true when the cell currently shows an uncommitted piece
	// preview.
	Ghost bool
	// Piece records which tetromino shape last touched the cell. It is
	// used only for rendering/debugging and has no effect on search.
	Piece tetromino.Piece
}

// Board is a W x H grid of Cells, stored row-major.
type Board struct {
	Width, Height int
	cells         []Cell
}

// FromTarget builds a new Board from a target grid of selected/unselected
// cells. grid is row-major: grid[y][x] is true iff that cell is selected.
// The grid must be rectangular; FromTarget panics otherwise, since
// rectangularity is validated once at the request boundary (see
// internal/proto), not on every board construction.
func FromTarget(grid [][]bool) *Board {
	height := len(grid)
	width := 0
	if height > 0 {
		width = len(grid[0])
	}
	b := &Board{Width: width, Height: height, cells: make([]Cell, width*height)}
	for y, row := range grid {
		if len(row) != width {
			panic("board: target grid is not rectangular")
		}
		for x, selected := range row {
			if selected {
				b.cells[b.index(x, y)].State = FalseNegative
			}
		}
	}
	return b
}

func (b *Board) index(x, y int) int {
	return y*b.Width + x
}

// InBounds reports whether (x, y) lies on the board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// At returns the cell at (x, y). At panics if the point is out of bounds.
func (b *Board) At(x, y int) Cell {
	return b.cells[b.index(x, y)]
}

// Clone returns a deep copy of the board, owned independently of the
// receiver. Each recursion level of the search driver clones the board it
// was handed rather than mutating a shared instance.
func (b *Board) Clone() *Board {
	clone := &Board{Width: b.Width, Height: b.Height, cells: make([]Cell, len(b.cells))}
	copy(clone.cells, b.cells)
	return clone
}

// IsBlocked reports whether placing shape at anchor is illegal: any cell it
// would occupy is off the board, or already holds a non-ghost filled cell.
func (b *Board) IsBlocked(shape tetromino.Shape, anchor Point) bool {
	for _, o := range shape.Offsets {
		x, y := anchor.X+o.DX, anchor.Y+o.DY
		if !b.InBounds(x, y) {
			return true
		}
		cell := b.At(x, y)
		if cell.State.IsFilled() && !cell.Ghost {
			return true
		}
	}
	return false
}

// HasLanded reports whether shape cannot fall any further from anchor.
func (b *Board) HasLanded(shape tetromino.Shape, anchor Point) bool {
	return b.IsBlocked(shape, Point{X: anchor.X, Y: anchor.Y + 1})
}

// Apply commits shape at anchor onto the board, incrementing the code of
// every on-board cell it covers by one. forceSolid suppresses the ghost
// preview even if the piece has not landed (used when committing a chosen
// placement for real, as opposed to previewing one).
//
// Cells the shape would cover that are off the board are silently skipped,
// matching the legacy engine's behavior during in-flight animation frames
// where a spawning piece may briefly extend above row 0.
//
// Apply returns an error if committing the piece would produce the
// reserved code 2 (or anything above Filled) on any cell — that indicates
// a caller applied a placement IsBlocked would have rejected, which is an
// internal invariant violation rather than a normal search outcome.
func (b *Board) Apply(shape tetromino.Shape, anchor Point, forceSolid bool) error {
	ghost := !b.HasLanded(shape, anchor) && !forceSolid
	for _, o := range shape.Offsets {
		x, y := anchor.X+o.DX, anchor.Y+o.DY
		if !b.InBounds(x, y) {
			continue
		}
		idx := b.index(x, y)
		newCode := CellState(int(b.cells[idx].State) + 1)
		if newCode != FalsePositive && newCode != FalseNegative && newCode != Filled {
			return fmt.Errorf("board: applying %v at %v would set illegal cell code %d at (%d,%d)", shape.Piece, anchor, newCode, x, y)
		}
		b.cells[idx] = Cell{State: newCode, Ghost: ghost, Piece: shape.Piece}
	}
	return nil
}

// ClearGhosts reverts every ghost cell back to its pre-preview state.
func (b *Board) ClearGhosts() {
	for idx, c := range b.cells {
		if !c.Ghost {
			continue
		}
		b.cells[idx] = Cell{State: c.State - 1}
	}
}

// FalsePositiveCount returns the number of cells filled but not selected.
func (b *Board) FalsePositiveCount() int {
	n := 0
	for _, c := range b.cells {
		if c.State == FalsePositive {
			n++
		}
	}
	return n
}

// FalseNegativeCount returns the number of cells selected but not filled.
func (b *Board) FalseNegativeCount() int {
	n := 0
	for _, c := range b.cells {
		if c.State == FalseNegative {
			n++
		}
	}
	return n
}

// Frame returns a H x W matrix of the raw state codes, suitable for
// emitting as one animation frame.
func (b *Board) Frame() [][]int {
	frame := make([][]int, b.Height)
	for y := 0; y < b.Height; y++ {
		row := make([]int, b.Width)
		for x := 0; x < b.Width; x++ {
			row[x] = int(b.At(x, y).State)
		}
		frame[y] = row
	}
	return frame
}

// String returns an ASCII depiction of the board, for debugging and test
// failure output. Ghost cells render as 'G'.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("+" + strings.Repeat("-", b.Width) + "+\n")
	for y := 0; y < b.Height; y++ {
		sb.WriteByte('|')
		for x := 0; x < b.Width; x++ {
			c := b.At(x, y)
			switch {
			case c.Ghost:
				sb.WriteByte('G')
			default:
				sb.WriteString(fmt.Sprintf("%d", c.State))
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("+" + strings.Repeat("-", b.Width) + "+")
	return sb.String()
}
