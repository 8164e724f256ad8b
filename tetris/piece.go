package tetris

import "math/rand/v2"

// Offset is a cell position relative to a piece origin, or an absolute
// board position once resolved by Cells.
type Offset struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Piece is the falling shape. Shape slices are treated as immutable and may
// be shared between piece values.
type Piece struct {
	Shape    []Offset `json:"blocks"`
	Color    Color    `json:"color"`
	X        int      `json:"x"`
	Y        int      `json:"y"`
	Rotation int      `json:"rotation"`
}

// Cells returns the absolute board positions covered by the piece.
func (p Piece) Cells() []Offset {
	cells := make([]Offset, len(p.Shape))
	for i, o := range p.Shape {
		cells[i] = Offset{X: p.X + o.X, Y: p.Y + o.Y}
	}
	return cells
}

// Shifted moves the origin by (dx, dy).
func (p Piece) Shifted(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// IsValidMove reports whether every cell of p shifted by (dx, dy) lies on
// the board and on an empty cell. The board must not contain p itself.
func IsValidMove(p Piece, b Board, dx, dy int) bool {
	for _, o := range p.Shape {
		x := p.X + o.X + dx
		y := p.Y + o.Y + dy
		if !b.InBounds(x, y) || b.Occupied(x, y) {
			return false
		}
	}
	return true
}

// Rotate turns the shape a quarter turn, (x, y) -> (-y, x), around the
// origin. No wall kicks are attempted; callers validate the result.
func Rotate(p Piece) Piece {
	shape := make([]Offset, len(p.Shape))
	for i, o := range p.Shape {
		shape[i] = Offset{X: -o.Y, Y: o.X}
	}
	p.Shape = shape
	p.Rotation = (p.Rotation + 90) % 360
	return p
}

// Drop returns p moved down as far as it legally goes.
func Drop(p Piece, b Board) Piece {
	for IsValidMove(p, b, 0, 1) {
		p.Y++
	}
	return p
}

// Shape is a catalogue entry.
type Shape struct {
	Name    string
	Offsets []Offset
	Color   Color
}

// Catalogue is the fixed set of spawnable shapes. Five four-cell shapes
// sharing three colors.
var Catalogue = []Shape{
	{
		Name:    "I",
		Offsets: []Offset{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
		Color:   ColorPrimary,
	},
	{
		Name:    "L",
		Offsets: []Offset{{0, 1}, {0, 0}, {1, 0}, {2, 0}},
		Color:   ColorAccent,
	},
	{
		Name:    "J",
		Offsets: []Offset{{2, 1}, {0, 0}, {1, 0}, {2, 0}},
		Color:   ColorError,
	},
	{
		Name:    "O",
		Offsets: []Offset{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		Color:   ColorPrimary,
	},
	{
		Name:    "T",
		Offsets: []Offset{{1, 1}, {0, 0}, {1, 0}, {2, 0}},
		Color:   ColorAccent,
	},
}

// ShapeByName looks up a catalogue entry.
func ShapeByName(name string) (Shape, bool) {
	for _, s := range Catalogue {
		if s.Name == name {
			return s, true
		}
	}
	return Shape{}, false
}

// SpawnPiece places a shape at the spawn point of a board of the given
// width: horizontally centred, top row, rotation 0.
func SpawnPiece(s Shape, boardWidth int) Piece {
	return Piece{
		Shape: s.Offsets,
		Color: s.Color,
		X:     boardWidth/2 - 1,
		Y:     0,
	}
}

// Spawner picks catalogue shapes uniformly at random.
type Spawner struct {
	rng   *rand.Rand
	width int
}

// NewSpawner creates a spawner for boards of the given width. The same seed
// yields the same piece sequence.
func NewSpawner(width int, seed uint64) *Spawner {
	return &Spawner{
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		width: width,
	}
}

// Next returns a freshly placed random piece.
func (s *Spawner) Next() Piece {
	return SpawnPiece(Catalogue[s.rng.IntN(len(Catalogue))], s.width)
}
