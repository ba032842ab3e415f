package engine

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestField() *Playfield {
	return NewPlayfield(DefaultRules().Field)
}

// fillRow occupies every column of row except those listed in gaps.
func fillRow(f *Playfield, row int, k Kind, gaps ...int) {
	skip := make(map[int]bool, len(gaps))
	for _, g := range gaps {
		skip[g] = true
	}
	for c := 0; c < f.Width(); c++ {
		if !skip[c] {
			f.Set(row, c, k)
		}
	}
}

func TestNewPlayfieldIsEmpty(t *testing.T) {
	f := newTestField()

	assert.Equal(t, 10, f.Width())
	assert.Equal(t, 20, f.Height())
	assert.Equal(t, 2, f.HiddenRows())
	assert.Equal(t, -2, f.Top())

	for row := f.Top(); row < f.Height(); row++ {
		r := f.Row(row)
		require.Len(t, r, f.Width(), "row %d width", row)
		for c, k := range r {
			assert.Equal(t, Empty, k, "cell (%d,%d)", row, c)
		}
	}
	assert.Equal(t, 0, f.StackHeight())
}

func TestPlayfieldOutOfStorageReadsEmpty(t *testing.T) {
	f := newTestField()

	assert.False(t, f.IsOccupied(-10, 0))
	assert.False(t, f.IsOccupied(0, -1))
	assert.False(t, f.IsOccupied(0, 10))
	assert.Nil(t, f.Row(-3))
	assert.Nil(t, f.Row(20))

	// Writes outside storage are ignored rather than panicking.
	f.Set(-5, 0, T)
	f.Set(25, 0, T)
	assert.Equal(t, 0, f.StackHeight())
}

func TestIsValidMove(t *testing.T) {
	f := newTestField()
	f.Set(19, 5, Z)
	o := Shape(O)

	tests := []struct {
		name     string
		row, col int
		expected bool
	}{
		{"empty interior", 5, 3, true},
		{"touching floor", 18, 0, true},
		{"below floor", 19, 0, false},
		{"left of field", 5, -1, false},
		{"right of field", 5, 9, false},
		{"right edge", 5, 8, true},
		{"overlapping locked cell", 18, 4, false},
		{"next to locked cell", 18, 6, true},
		{"above field", -5, 4, true},
		{"straddling the top", -1, 4, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := f.IsValidMove(o, tc.row, tc.col)
			if got != tc.expected {
				t.Errorf("IsValidMove(O, %d, %d) = %v, expected %v", tc.row, tc.col, got, tc.expected)
			}
		})
	}
}

func TestIsValidMoveIgnoresEmptyMatrixCells(t *testing.T) {
	f := newTestField()
	// The I template's bottom two rows are empty, so the box may hang below the floor.
	assert.True(t, f.IsValidMove(Shape(I), 18, 0))
	assert.False(t, f.IsValidMove(Shape(I), 19, 0))
	// Its empty columns may also hang outside once rotated.
	assert.True(t, f.IsValidMove(Rotate(Shape(I)), 0, -2))
	assert.False(t, f.IsValidMove(Rotate(Shape(I)), 0, -3))
}

func TestLockWritesKind(t *testing.T) {
	f := newTestField()

	require.NoError(t, f.Lock(Shape(T), 18, 0, T))

	want := []Kind{Empty, T, Empty, Empty, Empty, Empty, Empty, Empty, Empty, Empty}
	if diff := cmp.Diff(want, f.Row(18)); diff != "" {
		t.Errorf("row 18 (-want +got):\n%s", diff)
	}
	want = []Kind{T, T, T, Empty, Empty, Empty, Empty, Empty, Empty, Empty}
	if diff := cmp.Diff(want, f.Row(19)); diff != "" {
		t.Errorf("row 19 (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, f.StackHeight())
}

func TestLockIntoHiddenRows(t *testing.T) {
	f := newTestField()

	require.NoError(t, f.Lock(Shape(O), -2, 0, O))
	assert.True(t, f.IsOccupied(-2, 0))
	assert.True(t, f.IsOccupied(-1, 1))
	assert.Equal(t, 22, f.StackHeight())
}

func TestLockOffscreen(t *testing.T) {
	f := newTestField()

	err := f.Lock(Shape(O), -3, 4, O)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOffscreenLock), "got %v", err)

	// All-or-nothing: the in-storage half must not have been written.
	assert.False(t, f.IsOccupied(-2, 4))
	assert.False(t, f.IsOccupied(-2, 5))
}

func TestLockOutOfBounds(t *testing.T) {
	f := newTestField()

	err := f.Lock(Shape(O), 19, 0, O)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	err = f.Lock(Shape(O), 0, 9, O)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	assert.Equal(t, 0, f.StackHeight())
}

func TestClearSingleRow(t *testing.T) {
	f := newTestField()
	fillRow(f, 19, L)
	f.Set(18, 0, T)
	f.Set(17, 3, S)
	f.Set(0, 9, Z)

	above := make(map[int][]Kind)
	for row := f.Top(); row < 19; row++ {
		above[row] = f.Row(row)
	}

	cleared := f.ClearAndCollapse()
	require.Equal(t, 1, cleared)

	for row := f.Top() + 1; row <= 19; row++ {
		if diff := cmp.Diff(above[row-1], f.Row(row)); diff != "" {
			t.Errorf("row %d should hold old row %d (-want +got):\n%s", row, row-1, diff)
		}
	}
	for row := f.Top(); row < f.Height(); row++ {
		assert.Len(t, f.Row(row), f.Width(), "row %d width changed", row)
	}
	assert.Equal(t, make([]Kind, 10), f.Row(f.Top()), "top row should be emptied")
}

func TestClearMultipleRows(t *testing.T) {
	f := newTestField()
	fillRow(f, 19, I)
	fillRow(f, 18, J, 4)
	fillRow(f, 17, O)
	fillRow(f, 16, S)
	f.Set(15, 2, T)

	cleared := f.ClearAndCollapse()
	assert.Equal(t, 3, cleared)

	// Row 18 (with its gap) ends at the bottom, the T lands right above it.
	want := []Kind{J, J, J, J, Empty, J, J, J, J, J}
	assert.Equal(t, want, f.Row(19))
	assert.Equal(t, T, f.At(18, 2))
	assert.Equal(t, 2, f.StackHeight())
}

func TestClearNoFullRows(t *testing.T) {
	f := newTestField()
	fillRow(f, 19, Z, 0)
	before := f.String()

	assert.Equal(t, 0, f.ClearAndCollapse())
	assert.Equal(t, before, f.String())
}

func TestClearDuplicateTopRowQuirk(t *testing.T) {
	cfg := DefaultRules().Field
	cfg.DuplicateTopRow = true
	f := NewPlayfield(cfg)

	f.Set(-2, 3, I)
	fillRow(f, 19, L)

	require.Equal(t, 1, f.ClearAndCollapse())
	assert.Equal(t, I, f.At(-1, 3), "old top row shifts down")
	assert.Equal(t, I, f.At(-2, 3), "top row is left in place and duplicated")

	// The default behaviour empties the top row instead.
	g := newTestField()
	g.Set(-2, 3, I)
	fillRow(g, 19, L)

	require.Equal(t, 1, g.ClearAndCollapse())
	assert.Equal(t, I, g.At(-1, 3))
	assert.Equal(t, Empty, g.At(-2, 3))
}

func TestClearDuplicateTopRowTerminates(t *testing.T) {
	cfg := DefaultRules().Field
	cfg.DuplicateTopRow = true
	f := NewPlayfield(cfg)
	for row := f.Top(); row < f.Height(); row++ {
		fillRow(f, row, O)
	}

	cleared := f.ClearAndCollapse()
	assert.Equal(t, 22, cleared)
}

func TestPlayfieldReset(t *testing.T) {
	f := newTestField()
	fillRow(f, 10, T)
	f.Reset()
	assert.Equal(t, 0, f.StackHeight())
}
