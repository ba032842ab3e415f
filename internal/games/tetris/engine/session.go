package engine

import "math/rand"

// Status is the lifecycle state of a session.
type Status int

const (
	StatusRunning Status = iota
	StatusGameOver
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Rules bundles everything needed to start a session.
type Rules struct {
	Field   FieldConfig
	Scoring ScoringRules
}

// DefaultRules returns the canonical 10x20 field with two hidden rows.
func DefaultRules() Rules {
	return Rules{
		Field: FieldConfig{
			Width:      10,
			Height:     20,
			HiddenRows: 2,
		},
		Scoring: DefaultScoringRules(),
	}
}

// Session owns all mutable game state: playfield, active piece, bag and
// scoring. It is not safe for concurrent use; callers drive it from a
// single goroutine.
type Session struct {
	rules   Rules
	field   *Playfield
	bag     *Bag
	scoring *Scoring
	active  Piece

	status  Status
	paused  bool
	counter int // frames since the last gravity step
	ticks   uint64
	pieces  int // pieces locked so far
}

// NewSession creates a running session with the first piece spawned.
func NewSession(rules Rules, rng *rand.Rand) *Session {
	s := &Session{
		rules:   rules,
		field:   NewPlayfield(rules.Field),
		bag:     NewBag(rng),
		scoring: NewScoring(rules.Scoring),
	}
	s.spawn()
	return s
}

// Reset clears the field and score and spawns a new piece.
// The bag keeps its random source.
func (s *Session) Reset() {
	s.field.Reset()
	s.bag.Reset()
	s.scoring.Reset()
	s.status = StatusRunning
	s.paused = false
	s.counter = 0
	s.ticks = 0
	s.pieces = 0
	s.spawn()
}

// spawn installs the next piece from the bag. A piece that does not fit
// where it appears ends the session.
func (s *Session) spawn() {
	s.active = Spawn(s.bag.Next(), s.field.Width())
	s.counter = 0
	if !s.field.IsValidMove(s.active.Matrix, s.active.Row, s.active.Col) {
		s.status = StatusGameOver
	}
}

// Rules returns the rules the session was created with.
func (s *Session) Rules() Rules { return s.rules }

// Field returns the playfield. Callers must treat it as read-only.
func (s *Session) Field() *Playfield { return s.field }

// Active returns a copy of the active piece.
func (s *Session) Active() Piece { return s.active.Clone() }

// Next returns the kind that will spawn after the active piece locks.
func (s *Session) Next() Kind { return s.bag.Peek() }

// Status returns the lifecycle state.
func (s *Session) Status() Status { return s.status }

// GameOver reports whether the session has ended.
func (s *Session) GameOver() bool { return s.status == StatusGameOver }

// Paused reports whether gravity and moves are suspended.
func (s *Session) Paused() bool { return s.paused }

// Score returns the current score.
func (s *Session) Score() int { return s.scoring.Score() }

// Lines returns the number of cleared lines.
func (s *Session) Lines() int { return s.scoring.Lines() }

// Speed returns the frames between gravity steps.
func (s *Session) Speed() int { return s.scoring.Speed() }

// SetSpeed changes the frames between gravity steps. Ignored once the game
// is over.
func (s *Session) SetSpeed(frames int) {
	if s.status == StatusGameOver {
		return
	}
	s.scoring.SetSpeed(frames)
}

// Pieces returns the number of pieces locked so far.
func (s *Session) Pieces() int { return s.pieces }

// Ticks returns the number of unpaused frames processed.
func (s *Session) Ticks() uint64 { return s.ticks }

// accepting reports whether moves may currently change the state.
func (s *Session) accepting() bool {
	return s.status == StatusRunning && !s.paused
}

// TogglePause switches the pause overlay. Has no effect after game over.
// Resuming restarts the gravity counter.
func (s *Session) TogglePause() bool {
	if s.status == StatusGameOver {
		return false
	}
	s.paused = !s.paused
	if !s.paused {
		s.counter = 0
	}
	return true
}

// shift moves the active piece by (dr, dc) if the result is valid.
func (s *Session) shift(dr, dc int) bool {
	if !s.accepting() {
		return false
	}
	row, col := s.active.Row+dr, s.active.Col+dc
	if !s.field.IsValidMove(s.active.Matrix, row, col) {
		return false
	}
	s.active.Row, s.active.Col = row, col
	return true
}

// MoveLeft shifts the active piece one column left.
func (s *Session) MoveLeft() bool { return s.shift(0, -1) }

// MoveRight shifts the active piece one column right.
func (s *Session) MoveRight() bool { return s.shift(0, 1) }

// Rotate turns the active piece clockwise if the rotated shape fits in place.
func (s *Session) Rotate() bool {
	if !s.accepting() {
		return false
	}
	m := Rotate(s.active.Matrix)
	if !s.field.IsValidMove(m, s.active.Row, s.active.Col) {
		return false
	}
	s.active.Matrix = m
	return true
}

// SoftDrop moves the active piece down one row. A blocked piece stays where
// it is; locking is left to Tick and HardDrop.
func (s *Session) SoftDrop() bool { return s.shift(1, 0) }

// HardDrop moves the active piece to its lowest valid row and locks it.
func (s *Session) HardDrop() bool {
	if !s.accepting() {
		return false
	}
	s.active.Row = s.GhostRow()
	s.place()
	return true
}

// GhostRow returns the row the active piece would land on if hard dropped.
func (s *Session) GhostRow() int {
	row := s.active.Row
	for s.field.IsValidMove(s.active.Matrix, row+1, s.active.Col) {
		row++
	}
	return row
}

// Tick advances one frame. Every Speed()+1 frames the active piece falls a
// row, locking when it cannot.
func (s *Session) Tick() {
	if !s.accepting() {
		return
	}
	s.ticks++
	s.counter++
	if s.counter <= s.scoring.Speed() {
		return
	}
	s.counter = 0
	if !s.shift(1, 0) {
		s.place()
	}
}

// Apply moves the active piece straight to a candidate end position if the
// candidate is valid there.
func (s *Session) Apply(c Candidate) bool {
	if !s.accepting() || c.Matrix == nil {
		return false
	}
	if !s.field.IsValidMove(c.Matrix, c.Row, c.Col) {
		return false
	}
	s.active.Row = c.Row
	s.active.Col = c.Col
	s.active.Matrix = c.Matrix.Clone()
	return true
}

// EndPositions lists the landing spots reachable from the active piece.
func (s *Session) EndPositions() []Candidate {
	return EndPositions(s.field, s.active)
}

// place locks the active piece, clears lines, updates scoring and spawns
// the next piece. A piece with any cell above the visible field ends the
// session instead.
func (s *Session) place() {
	p := s.active
	lockedOut := false
	p.Matrix.Each(func(r, _ int) {
		if p.Row+r < 0 {
			lockedOut = true
		}
	})
	if lockedOut {
		s.status = StatusGameOver
		return
	}

	if err := s.field.Lock(p.Matrix, p.Row, p.Col, p.Kind); err != nil {
		s.status = StatusGameOver
		return
	}
	s.pieces++

	for range s.field.ClearAndCollapse() {
		s.scoring.LineCleared()
	}

	s.spawn()
}
