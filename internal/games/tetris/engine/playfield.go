package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrOffscreenLock is returned when a piece would lock above the
	// hidden rows of the playfield.
	ErrOffscreenLock = errors.New("engine: piece locked above the playfield")

	// ErrOutOfBounds is returned when a piece would lock outside the columns
	// or below the floor.
	ErrOutOfBounds = errors.New("engine: piece locked out of bounds")
)

// FieldConfig describes the playfield geometry.
type FieldConfig struct {
	Width      int // columns
	Height     int // visible rows
	HiddenRows int // rows above the visible area, addressed with negative indices

	// DuplicateTopRow keeps the top row unchanged after a collapse, so it
	// ends up duplicated into the row below. When false the top row is
	// emptied instead.
	DuplicateTopRow bool
}

// Playfield is the grid of locked cells. Row indices run from -HiddenRows
// to Height-1; row 0 is the first visible row.
type Playfield struct {
	width  int
	height int
	hidden int
	dupTop bool
	rows   [][]Kind
}

// NewPlayfield creates an empty playfield.
func NewPlayfield(cfg FieldConfig) *Playfield {
	f := &Playfield{
		width:  cfg.Width,
		height: cfg.Height,
		hidden: max(cfg.HiddenRows, 0),
		dupTop: cfg.DuplicateTopRow,
	}
	f.rows = make([][]Kind, f.hidden+f.height)
	for i := range f.rows {
		f.rows[i] = make([]Kind, f.width)
	}
	return f
}

// Width returns the number of columns.
func (f *Playfield) Width() int { return f.width }

// Height returns the number of visible rows.
func (f *Playfield) Height() int { return f.height }

// HiddenRows returns the number of rows above the visible area.
func (f *Playfield) HiddenRows() int { return f.hidden }

// Top returns the index of the topmost stored row.
func (f *Playfield) Top() int { return -f.hidden }

// Reset empties every cell.
func (f *Playfield) Reset() {
	for _, row := range f.rows {
		clear(row)
	}
}

// inStorage reports whether (row, col) maps to a stored cell.
func (f *Playfield) inStorage(row, col int) bool {
	return row >= -f.hidden && row < f.height && col >= 0 && col < f.width
}

// At returns the kind locked at (row, col). Cells outside storage read as Empty.
func (f *Playfield) At(row, col int) Kind {
	if !f.inStorage(row, col) {
		return Empty
	}
	return f.rows[row+f.hidden][col]
}

// IsOccupied reports whether (row, col) holds a locked cell.
func (f *Playfield) IsOccupied(row, col int) bool {
	return f.At(row, col) != Empty
}

// Set writes a kind at (row, col). Out-of-storage writes are ignored.
func (f *Playfield) Set(row, col int, k Kind) {
	if !f.inStorage(row, col) {
		return
	}
	f.rows[row+f.hidden][col] = k
}

// Row returns a copy of a stored row, or nil if row is outside storage.
func (f *Playfield) Row(row int) []Kind {
	if row < -f.hidden || row >= f.height {
		return nil
	}
	return append([]Kind(nil), f.rows[row+f.hidden]...)
}

// Lock writes k into every cell covered by m at (row, col).
// Nothing is written when an error is returned.
func (f *Playfield) Lock(m Matrix, row, col int, k Kind) error {
	var lockErr error
	m.Each(func(r, c int) {
		if lockErr != nil {
			return
		}
		fr, fc := row+r, col+c
		switch {
		case fr < -f.hidden:
			lockErr = fmt.Errorf("%w: cell (%d,%d)", ErrOffscreenLock, fr, fc)
		case fr >= f.height || fc < 0 || fc >= f.width:
			lockErr = fmt.Errorf("%w: cell (%d,%d)", ErrOutOfBounds, fr, fc)
		}
	})
	if lockErr != nil {
		return lockErr
	}

	m.Each(func(r, c int) {
		f.rows[row+r+f.hidden][col+c] = k
	})
	return nil
}

// IsFull reports whether every cell of the row is occupied.
func (f *Playfield) IsFull(row int) bool {
	if row < -f.hidden || row >= f.height {
		return false
	}
	for _, k := range f.rows[row+f.hidden] {
		if k == Empty {
			return false
		}
	}
	return true
}

// ClearAndCollapse removes full rows from the bottom up, shifting everything
// above each one down by a row. The same index is scanned again after a
// collapse since a new row has moved into it. Returns the number of rows
// cleared.
func (f *Playfield) ClearAndCollapse() int {
	cleared := 0
	total := len(f.rows)

	for row := f.height - 1; row >= -f.hidden; {
		// A full top row in duplicate mode would be copied down forever.
		if cleared >= total {
			break
		}
		if !f.IsFull(row) {
			row--
			continue
		}

		idx := row + f.hidden
		for r := idx; r > 0; r-- {
			copy(f.rows[r], f.rows[r-1])
		}
		if !f.dupTop || idx == 0 {
			clear(f.rows[0])
		}
		cleared++
	}

	return cleared
}

// StackHeight returns the number of rows from the floor up to the highest
// occupied cell, counting hidden rows. An empty field has height 0.
func (f *Playfield) StackHeight() int {
	for i, row := range f.rows {
		for _, k := range row {
			if k != Empty {
				return len(f.rows) - i
			}
		}
	}
	return 0
}

// String renders the visible rows, one line each.
func (f *Playfield) String() string {
	buf := make([]byte, 0, f.height*(f.width+1))
	for row := 0; row < f.height; row++ {
		if row > 0 {
			buf = append(buf, '\n')
		}
		for _, k := range f.rows[row+f.hidden] {
			buf = append(buf, k.String()...)
		}
	}
	return string(buf)
}
