package tetris

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying  GameStateType = "playing"
	StatePaused   GameStateType = "paused"
	StateGameOver GameStateType = "game_over"
)

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick        uint64
	Seed        int64
	Mode        string // "manual" or "auto"
	Autoplay    bool
	Score       int
	Lines       int
	Speed       int
	Pieces      int
	Active      string // kind letter of the falling piece
	ActiveRow   int
	ActiveCol   int
	Next        string
	StackHeight int
	MaxHeight   int // highest stack reached this game
	Field       string
	State       GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := g.session

	state := StatePlaying
	switch {
	case s.GameOver():
		state = StateGameOver
	case s.Paused():
		state = StatePaused
	}

	p := s.Active()
	return Snapshot{
		Tick:        g.tick,
		Seed:        g.seed,
		Mode:        string(g.mode),
		Autoplay:    g.autoplay,
		Score:       s.Score(),
		Lines:       s.Lines(),
		Speed:       s.Speed(),
		Pieces:      s.Pieces(),
		Active:      p.Kind.String(),
		ActiveRow:   p.Row,
		ActiveCol:   p.Col,
		Next:        s.Next().String(),
		StackHeight: s.Field().StackHeight(),
		MaxHeight:   g.maxHigh,
		Field:       s.Field().String(),
		State:       state,
	}
}
