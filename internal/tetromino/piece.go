// Package tetromino defines the seven canonical tetromino shapes, their
// rotations, and the canonicalization used to tell orientations apart.
package tetromino

import "fmt"

// Piece identifies a tetromino shape, independent of orientation.
type Piece uint8

// Possible pieces.
const (
	EmptyPiece Piece = iota
	T
	J
	L
	Z
	S
	I
	O
)

// NonemptyPieces is an ordered array of every non-empty piece.
var NonemptyPieces = [7]Piece{T, J, L, Z, S, I, O}

func (p Piece) String() string {
	switch p {
	case EmptyPiece:
		return "Ɛ"
	case T:
		return "T"
	case J:
		return "J"
	case L:
		return "L"
	case Z:
		return "Z"
	case S:
		return "S"
	case I:
		return "I"
	case O:
		return "O"
	}
	panic(fmt.Sprintf("unknown piece %d", uint8(p)))
}
