package search

import (
	"github.com/taylor-giles/Tetrify/internal/board"
	"github.com/taylor-giles/Tetrify/internal/tetromino"
)

// Action is one elementary thing the reifier's simulated player can do to
// a falling piece. Every action is handled by a single central dispatch
// (Apply) rather than by an enum-of-callables, since Go has no direct
// equivalent of the legacy source's function-valued enum members.
type Action uint8

// All possible actions.
const (
	Idle Action = iota
	Left
	Right
	RotateLeft
	RotateRight
	SoftDrop
	HardDrop
)

func (a Action) String() string {
	switch a {
	case Idle:
		return "Idle"
	case Left:
		return "Left"
	case Right:
		return "Right"
	case RotateLeft:
		return "Rotate_Left"
	case RotateRight:
		return "Rotate_Right"
	case SoftDrop:
		return "Soft_Drop"
	case HardDrop:
		return "Hard_Drop"
	}
	return "Unknown"
}

// Apply returns the shape and anchor that result from taking this action
// against b. An action that would move the piece out of bounds or into an
// occupied cell leaves the shape and anchor unchanged, mirroring the
// legacy engine's left/right/soft_drop/rotate_left/rotate_right.
func (a Action) Apply(b *board.Board, shape tetromino.Shape, anchor board.Point) (tetromino.Shape, board.Point) {
	switch a {
	case Left:
		next := board.Point{X: anchor.X - 1, Y: anchor.Y}
		if b.IsBlocked(shape, next) {
			return shape, anchor
		}
		return shape, next
	case Right:
		next := board.Point{X: anchor.X + 1, Y: anchor.Y}
		if b.IsBlocked(shape, next) {
			return shape, anchor
		}
		return shape, next
	case SoftDrop:
		next := board.Point{X: anchor.X, Y: anchor.Y + 1}
		if b.IsBlocked(shape, next) {
			return shape, anchor
		}
		return shape, next
	case HardDrop:
		cur := anchor
		for {
			next := board.Point{X: cur.X, Y: cur.Y + 1}
			if b.IsBlocked(shape, next) {
				return shape, cur
			}
			cur = next
		}
	case RotateLeft:
		next := shape.Rotated(false)
		if b.IsBlocked(next, anchor) {
			return shape, anchor
		}
		return next, anchor
	case RotateRight:
		next := shape.Rotated(true)
		if b.IsBlocked(next, anchor) {
			return shape, anchor
		}
		return next, anchor
	default:
		return shape, anchor
	}
}
