package engine

import "math/rand"

// DefaultMinLandingRow is the height filter used by the autoplayer: only
// landing rows at or below it are considered.
const DefaultMinLandingRow = 18

// Candidate is one legal resting position for a piece.
type Candidate struct {
	Row    int
	Col    int
	Matrix Matrix
}

// EndPositions enumerates landing spots for p on f. For each of four
// cumulative rotations of a working copy (a rotation is only kept when it
// fits at the piece's current position) and for every column, the piece is
// dropped from row -1 until it stops. Spots landing on row 1 or lower down
// are recorded.
func EndPositions(f *Playfield, p Piece) []Candidate {
	if p.Matrix.Count() == 0 {
		return nil
	}

	working := p.Matrix.Clone()
	out := make([]Candidate, 0, 4*f.Width())

	for turn := 0; turn < 4; turn++ {
		if turn > 0 {
			if m := Rotate(working); f.IsValidMove(m, p.Row, p.Col) {
				working = m
			}
		}

		for col := 0; col < f.Width(); col++ {
			row := -1
			for f.IsValidMove(working, row+1, col) {
				row++
			}
			if row > 0 {
				out = append(out, Candidate{
					Row:    row,
					Col:    col,
					Matrix: working.Clone(),
				})
			}
		}
	}

	return out
}

// FilterByHeight keeps candidates whose landing row is at least minRow.
func FilterByHeight(cands []Candidate, minRow int) []Candidate {
	out := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if c.Row >= minRow {
			out = append(out, c)
		}
	}
	return out
}

// Choose filters by height and picks one remaining candidate uniformly at
// random. ok is false when nothing survives the filter.
func Choose(cands []Candidate, minRow int, rng *rand.Rand) (c Candidate, ok bool) {
	kept := FilterByHeight(cands, minRow)
	if len(kept) == 0 {
		return Candidate{}, false
	}
	return kept[rng.Intn(len(kept))], true
}

// Autoplayer drives a session with the end-position search.
type Autoplayer struct {
	rng      *rand.Rand
	minRow   int
	hardDrop bool
}

// NewAutoplayer creates an autoplayer. When hardDrop is set the piece is
// locked straight after being moved; otherwise gravity finishes the drop.
func NewAutoplayer(rng *rand.Rand, minRow int, hardDrop bool) *Autoplayer {
	return &Autoplayer{
		rng:      rng,
		minRow:   minRow,
		hardDrop: hardDrop,
	}
}

// Play runs one decision cycle for the session's active piece.
// Returns false when no candidate was applied.
func (a *Autoplayer) Play(s *Session) bool {
	c, ok := Choose(s.EndPositions(), a.minRow, a.rng)
	if !ok {
		return false
	}
	if !s.Apply(c) {
		return false
	}
	if a.hardDrop {
		s.HardDrop()
	}
	return true
}
