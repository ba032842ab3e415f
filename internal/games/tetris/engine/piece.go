// Package engine implements the falling-block game state: the playfield,
// piece catalog and bag sequencer, the rotation/validity transforms,
// placement and scoring, and the end-position search used by the autoplayer.
// It has no terminal or UI dependencies.
package engine

import "github.com/vovakirdan/tui-tetris/internal/core"

// Kind identifies a piece type. The zero value marks an empty cell.
type Kind uint8

const (
	Empty Kind = iota
	I
	J
	L
	O
	S
	T
	Z
)

// Kinds lists every piece type in catalog order.
var Kinds = [...]Kind{I, J, L, O, S, T, Z}

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	switch k {
	case I:
		return "I"
	case J:
		return "J"
	case L:
		return "L"
	case O:
		return "O"
	case S:
		return "S"
	case T:
		return "T"
	case Z:
		return "Z"
	default:
		return "."
	}
}

// Color returns the display colour of the kind.
func (k Kind) Color() core.Color {
	switch k {
	case I:
		return core.ColorCyan
	case O:
		return core.ColorYellow
	case T:
		return core.ColorMagenta
	case S:
		return core.ColorGreen
	case Z:
		return core.ColorRed
	case J:
		return core.ColorBlue
	case L:
		return core.ColorOrange
	default:
		return core.ColorDefault
	}
}

// catalog holds the shape templates, '#' marks an occupied cell.
var catalog = map[Kind][]string{
	I: {
		"....",
		"####",
		"....",
		"....",
	},
	J: {
		"#..",
		"###",
		"...",
	},
	L: {
		"..#",
		"###",
		"...",
	},
	O: {
		"##",
		"##",
	},
	S: {
		".##",
		"##.",
		"...",
	},
	Z: {
		"##.",
		".##",
		"...",
	},
	T: {
		".#.",
		"###",
		"...",
	},
}

// Shape returns a fresh copy of the template matrix for the kind.
// Returns nil for Empty or unknown kinds.
func Shape(k Kind) Matrix {
	rows, ok := catalog[k]
	if !ok {
		return nil
	}
	m := NewMatrix(len(rows))
	for r, row := range rows {
		for c, ch := range row {
			m[r][c] = ch == '#'
		}
	}
	return m
}

// Piece is the active, falling piece.
type Piece struct {
	Kind   Kind
	Matrix Matrix
	Row    int // may be negative while above the visible field
	Col    int
}

// Spawn creates a piece of the given kind at its starting position for a
// field of the given width. The I piece starts one row lower because its
// 4x4 box already carries an empty top row.
func Spawn(k Kind, width int) Piece {
	m := Shape(k)
	tw := len(m)
	col := floorDiv(width-2*((tw+1)/2), 2)

	row := -2
	if k == I {
		row = -1
	}

	return Piece{
		Kind:   k,
		Matrix: m,
		Row:    row,
		Col:    col,
	}
}

// Clone returns a copy of the piece with its own matrix.
func (p Piece) Clone() Piece {
	p.Matrix = p.Matrix.Clone()
	return p
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
