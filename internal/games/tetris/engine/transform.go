package engine

import "strings"

// Matrix is a square occupancy grid for a piece.
type Matrix [][]bool

// NewMatrix allocates an empty n x n matrix.
func NewMatrix(n int) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]bool, n)
	}
	return m
}

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	if m == nil {
		return nil
	}
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = append([]bool(nil), row...)
	}
	return out
}

// Equal reports whether both matrices have the same size and occupancy.
func (m Matrix) Equal(o Matrix) bool {
	if len(m) != len(o) {
		return false
	}
	for r := range m {
		if len(m[r]) != len(o[r]) {
			return false
		}
		for c := range m[r] {
			if m[r][c] != o[r][c] {
				return false
			}
		}
	}
	return true
}

// Count returns the number of occupied cells.
func (m Matrix) Count() int {
	n := 0
	for _, row := range m {
		for _, v := range row {
			if v {
				n++
			}
		}
	}
	return n
}

// Each calls fn for every occupied cell.
func (m Matrix) Each(fn func(r, c int)) {
	for r, row := range m {
		for c, v := range row {
			if v {
				fn(r, c)
			}
		}
	}
}

// String renders the matrix with '#' and '.', one row per line.
func (m Matrix) String() string {
	var sb strings.Builder
	for r, row := range m {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for _, v := range row {
			if v {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// Rotate returns a new matrix rotated 90 degrees clockwise.
// The input is never modified.
func Rotate(m Matrix) Matrix {
	n := len(m)
	out := NewMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out[i][j] = m[n-1-j][i]
		}
	}
	return out
}

// IsValidMove reports whether the matrix fits at (row, col): every occupied
// cell must be inside the columns, above the floor and on an empty cell.
// Cells above the field are always allowed.
func (f *Playfield) IsValidMove(m Matrix, row, col int) bool {
	for r := range m {
		for c, v := range m[r] {
			if !v {
				continue
			}
			fr, fc := row+r, col+c
			if fc < 0 || fc >= f.width || fr >= f.height {
				return false
			}
			if f.IsOccupied(fr, fc) {
				return false
			}
		}
	}
	return true
}
