package tetris

import "strings"

// Block is an occupied board cell.
type Block struct {
	X        int   `json:"x"`
	Y        int   `json:"y"`
	Color    Color `json:"color"`
	Clearing bool  `json:"isClearing,omitempty"`
}

// Board is a fixed-size grid of optional blocks, row 0 at the top.
// Boards are values: every operation returns a fresh board and blocks
// are never modified once placed.
type Board struct {
	width  int
	height int
	rows   [][]*Block
}

// NewBoard creates an empty width x height board.
func NewBoard(width, height int) Board {
	rows := make([][]*Block, height)
	for y := range rows {
		rows[y] = make([]*Block, width)
	}
	return Board{width: width, height: height, rows: rows}
}

func (b Board) Width() int  { return b.width }
func (b Board) Height() int { return b.height }

// InBounds reports whether (x, y) addresses a cell of the board.
func (b Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// At returns the block at (x, y), if any.
func (b Board) At(x, y int) (Block, bool) {
	if !b.InBounds(x, y) || b.rows[y][x] == nil {
		return Block{}, false
	}
	return *b.rows[y][x], true
}

// Occupied reports whether (x, y) holds a block. Out of range cells are not occupied.
func (b Board) Occupied(x, y int) bool {
	return b.InBounds(x, y) && b.rows[y][x] != nil
}

// WithBlock returns a copy of the board with a block of the given color at (x, y).
func (b Board) WithBlock(x, y int, color Color) Board {
	out := b.clone()
	if b.InBounds(x, y) {
		out.rows[y][x] = &Block{X: x, Y: y, Color: color}
	}
	return out
}

// Blocks lists every occupied cell in row-major order.
func (b Board) Blocks() []Block {
	var blocks []Block
	for _, row := range b.rows {
		for _, blk := range row {
			if blk != nil {
				blocks = append(blocks, *blk)
			}
		}
	}
	return blocks
}

// RowFull reports whether every cell of row y is occupied.
func (b Board) RowFull(y int) bool {
	if y < 0 || y >= b.height || b.width == 0 {
		return false
	}
	for _, blk := range b.rows[y] {
		if blk == nil {
			return false
		}
	}
	return true
}

// CompletedRows returns the indices of all full rows, top to bottom.
func (b Board) CompletedRows() []int {
	var rows []int
	for y := range b.rows {
		if b.RowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// OccupiedAbove reports whether any block sits in a row with index below line.
func (b Board) OccupiedAbove(line int) bool {
	for y := 0; y < line && y < b.height; y++ {
		for _, blk := range b.rows[y] {
			if blk != nil {
				return true
			}
		}
	}
	return false
}

// Equal compares dimensions and cell contents.
func (b Board) Equal(other Board) bool {
	if b.width != other.width || b.height != other.height {
		return false
	}
	for y := range b.rows {
		for x := range b.rows[y] {
			l, r := b.rows[y][x], other.rows[y][x]
			if (l == nil) != (r == nil) {
				return false
			}
			if l != nil && *l != *r {
				return false
			}
		}
	}
	return true
}

// String draws the board one row per line: '.' empty, 'P'/'A'/'E' by color,
// lower case while clearing.
func (b Board) String() string {
	var sb strings.Builder
	for y, row := range b.rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, blk := range row {
			sb.WriteByte(blockGlyph(blk))
		}
	}
	return sb.String()
}

func blockGlyph(blk *Block) byte {
	if blk == nil {
		return '.'
	}
	glyph := byte('?')
	switch blk.Color {
	case ColorPrimary:
		glyph = 'P'
	case ColorAccent:
		glyph = 'A'
	case ColorError:
		glyph = 'E'
	}
	if blk.Clearing {
		glyph += 'a' - 'A'
	}
	return glyph
}

// clone copies the row slices. Blocks are shared since they are immutable.
func (b Board) clone() Board {
	rows := make([][]*Block, len(b.rows))
	for y, row := range b.rows {
		rows[y] = make([]*Block, len(row))
		copy(rows[y], row)
	}
	return Board{width: b.width, height: b.height, rows: rows}
}

// Merge stamps the piece into a copy of the board. Cells outside the grid
// are dropped.
func Merge(p Piece, b Board) Board {
	out := b.clone()
	for _, c := range p.Cells() {
		if !b.InBounds(c.X, c.Y) {
			continue
		}
		out.rows[c.Y][c.X] = &Block{X: c.X, Y: c.Y, Color: p.Color}
	}
	return out
}

// MarkClearing flags every block of the given rows as clearing without
// removing anything.
func MarkClearing(b Board, rows []int) Board {
	out := b.clone()
	for _, y := range rows {
		if y < 0 || y >= b.height {
			continue
		}
		for x, blk := range out.rows[y] {
			if blk == nil {
				continue
			}
			flagged := *blk
			flagged.Clearing = true
			out.rows[y][x] = &flagged
		}
	}
	return out
}

// ClearRows removes the given rows, compacts the remaining rows downward and
// prepends empty rows so the height is unchanged. Retained blocks get their
// new row index and lose the clearing flag.
func ClearRows(b Board, rows []int) Board {
	if len(rows) == 0 {
		return b.clone()
	}

	removed := make([]bool, b.height)
	for _, y := range rows {
		if y >= 0 && y < b.height {
			removed[y] = true
		}
	}

	out := NewBoard(b.width, b.height)
	dst := b.height - 1
	for y := b.height - 1; y >= 0; y-- {
		if removed[y] {
			continue
		}
		for x, blk := range b.rows[y] {
			if blk == nil {
				continue
			}
			out.rows[dst][x] = &Block{X: x, Y: dst, Color: blk.Color}
		}
		dst--
	}
	return out
}

// ClearCompletedRows removes every full row at once.
func ClearCompletedRows(b Board) Board {
	return ClearRows(b, b.CompletedRows())
}
