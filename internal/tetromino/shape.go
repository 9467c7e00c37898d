package tetromino

// Offset is a cell position relative to a shape's anchor.
type Offset struct {
	DX, DY int
}

// Shape is a tetromino fixed at a particular orientation: a named Piece
// together with the four cell offsets that make it up.
type Shape struct {
	Piece   Piece
	Offsets [4]Offset
}

// Catalog holds the seven canonical tetromino shapes at their base
// orientation. Offsets follow a row-major (x right, y down) convention so
// that increasing y moves a cell toward the bottom of the board, matching
// board.Board's layout.
var Catalog = map[Piece]Shape{
	T: {Piece: T, Offsets: [4]Offset{{0, 0}, {-1, 0}, {1, 0}, {0, -1}}},
	J: {Piece: J, Offsets: [4]Offset{{0, 0}, {-1, 0}, {0, -1}, {0, -2}}},
	L: {Piece: L, Offsets: [4]Offset{{0, 0}, {1, 0}, {0, -1}, {0, -2}}},
	Z: {Piece: Z, Offsets: [4]Offset{{0, 0}, {-1, 0}, {0, -1}, {1, -1}}},
	S: {Piece: S, Offsets: [4]Offset{{0, 0}, {-1, -1}, {0, -1}, {1, 0}}},
	I: {Piece: I, Offsets: [4]Offset{{0, 0}, {0, -1}, {0, -2}, {0, -3}}},
	O: {Piece: O, Offsets: [4]Offset{{0, 0}, {0, -1}, {-1, 0}, {-1, -1}}},
}

// SpawnHeight returns the anchor row offset (always non-positive, so it is
// given back as a non-negative "how far above row 0" distance) needed to
// keep every cell of the shape on the board when it is anchored at row 0.
func (s Shape) SpawnHeight() int {
	minDY := 0
	for _, o := range s.Offsets {
		if o.DY < minDY {
			minDY = o.DY
		}
	}
	return -minDY
}

// Rotated returns the shape rotated 90 degrees. Clockwise rotation maps
// (dx, dy) -> (-dy, dx); counter-clockwise is its exact inverse,
// (dx, dy) -> (dy, -dx). Applying Rotated(true) four times, or Rotated(true)
// followed by Rotated(false), returns the original offsets.
func (s Shape) Rotated(clockwise bool) Shape {
	out := Shape{Piece: s.Piece}
	for i, o := range s.Offsets {
		if clockwise {
			out.Offsets[i] = Offset{DX: -o.DY, DY: o.DX}
		} else {
			out.Offsets[i] = Offset{DX: o.DY, DY: -o.DX}
		}
	}
	return out
}

// CanonicalGrid returns a 4x4 bitmap identifying this shape's orientation.
// Two shapes of the same piece represent the same orientation iff their
// canonical grids are equal.
func (s Shape) CanonicalGrid() [4][4]bool {
	minX, maxX := s.Offsets[0].DX, s.Offsets[0].DX
	minY, maxY := s.Offsets[0].DY, s.Offsets[0].DY
	for _, o := range s.Offsets[1:] {
		if o.DX < minX {
			minX = o.DX
		}
		if o.DX > maxX {
			maxX = o.DX
		}
		if o.DY < minY {
			minY = o.DY
		}
		if o.DY > maxY {
			maxY = o.DY
		}
	}
	sumX, sumY := minX+maxX, minY+maxY
	anchorX, anchorY := 1, 1
	if sumX < 0 {
		anchorX = 2
	}
	if sumY < 0 {
		anchorY = 2
	}

	var grid [4][4]bool
	for _, o := range s.Offsets {
		row := mod4(anchorY + o.DY)
		col := mod4(anchorX + o.DX)
		grid[row][col] = true
	}
	return grid
}

func mod4(v int) int {
	v %= 4
	if v < 0 {
		v += 4
	}
	return v
}

// Orientations returns every unique orientation of this shape, each
// obtained by repeated clockwise rotation. Pieces with symmetry (O has 1
// unique orientation, I/S/Z have 2, T/J/L have 4) yield fewer than four
// results: rotation stops as soon as a canonical grid repeats.
func (s Shape) Orientations() []Shape {
	orientations := make([]Shape, 0, 4)
	seen := make(map[[4][4]bool]bool, 4)

	cur := s
	for i := 0; i < 4; i++ {
		grid := cur.CanonicalGrid()
		if seen[grid] {
			break
		}
		seen[grid] = true
		orientations = append(orientations, cur)
		cur = cur.Rotated(true)
	}
	return orientations
}

// IdentifyPiece returns the Piece whose catalog entry has an orientation
// matching the given shape's canonical grid, and whether a match was found.
func IdentifyPiece(s Shape) (Piece, bool) {
	grid := s.CanonicalGrid()
	for _, p := range NonemptyPieces {
		for _, o := range Catalog[p].Orientations() {
			if o.CanonicalGrid() == grid {
				return p, true
			}
		}
	}
	return EmptyPiece, false
}
