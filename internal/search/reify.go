package search

import (
	"github.com/taylor-giles/Tetrify/internal/board"
	"github.com/taylor-giles/Tetrify/internal/tetromino"
)

// Frame is one rendered animation step: the action that produced it,
// together with the full board state codes (including the moving piece as
// a ghost preview, unless Action is HardDrop, at which point it is
// committed solid).
type Frame struct {
	Action Action
	Cells  [][]int
}

// Reify expands a solved placement sequence into the frame-by-frame
// animation a client renders: for each Step, a piece spawns centered at the
// top of the board in its base orientation, rotates into the committed
// orientation, translates to the committed column, descends to the
// committed row, and is finally committed solid. This is a direct
// structural port of the legacy engine's per-placement replay loop, broken
// out into Action.Apply calls so every sub-move reuses the same collision
// semantics the interactive player would use.
func Reify(b *board.Board, steps []Step) []Frame {
	working := b.Clone()
	var frames []Frame
	for _, step := range steps {
		frames = append(frames, reifyStep(working, step)...)
	}
	return frames
}

// reifyStep mutates working by committing step onto it, and returns the
// frames recorded along the way.
func reifyStep(working *board.Board, step Step) []Frame {
	shape := tetromino.Catalog[step.Piece]
	anchor := board.Point{X: working.Width / 2, Y: shape.SpawnHeight()}

	var frames []Frame
	record := func(a Action) {
		frames = append(frames, renderFrame(working, shape, anchor, a))
	}

	target := step.Shape.CanonicalGrid()
	for i := 0; i < 4 && shape.CanonicalGrid() != target; i++ {
		shape, anchor = RotateRight.Apply(working, shape, anchor)
		record(RotateRight)
	}
	for anchor.X < step.Anchor.X {
		shape, anchor = Right.Apply(working, shape, anchor)
		record(Right)
	}
	for anchor.X > step.Anchor.X {
		shape, anchor = Left.Apply(working, shape, anchor)
		record(Left)
	}
	for anchor.Y < step.Anchor.Y {
		shape, anchor = SoftDrop.Apply(working, shape, anchor)
		record(SoftDrop)
	}

	if err := working.Apply(shape, anchor, true); err != nil {
		panic(err)
	}
	frames = append(frames, Frame{Action: HardDrop, Cells: working.Frame()})
	return frames
}

// renderFrame previews shape at anchor on a disposable clone of b, so the
// in-flight piece shows as a ghost without disturbing b itself.
func renderFrame(b *board.Board, shape tetromino.Shape, anchor board.Point, action Action) Frame {
	preview := b.Clone()
	if err := preview.Apply(shape, anchor, false); err != nil {
		panic(err)
	}
	return Frame{Action: action, Cells: preview.Frame()}
}
