package engine

// ScoringRules controls the score award and the gravity speed-up per
// cleared line. Speed is measured in frames between gravity steps, so a
// smaller value is faster.
type ScoringRules struct {
	PointsPerLine int
	InitialSpeed  int
	SpeedStep     int // subtracted while speed is above FineThreshold
	FineThreshold int
	FineStep      int // subtracted once speed has reached FineThreshold
	MinSpeed      int
	SpeedUp       bool // false keeps the speed fixed
}

// DefaultScoringRules returns the canonical rules: 40 points per line,
// starting at 120 frames and speeding up 30 at a time down to 30, then 15.
func DefaultScoringRules() ScoringRules {
	return ScoringRules{
		PointsPerLine: 40,
		InitialSpeed:  120,
		SpeedStep:     30,
		FineThreshold: 30,
		FineStep:      15,
		MinSpeed:      15,
		SpeedUp:       true,
	}
}

// Scoring tracks score, cleared lines and current speed.
type Scoring struct {
	rules ScoringRules
	score int
	lines int
	speed int
}

// NewScoring creates a scoring tracker at its starting values.
func NewScoring(rules ScoringRules) *Scoring {
	s := &Scoring{rules: rules}
	s.Reset()
	return s
}

// Reset restores the starting score and speed.
func (s *Scoring) Reset() {
	s.score = 0
	s.lines = 0
	s.speed = max(s.rules.InitialSpeed, s.floor())
}

// LineCleared applies the award and speed-up for one cleared line.
func (s *Scoring) LineCleared() {
	s.score += s.rules.PointsPerLine
	s.lines++

	if !s.rules.SpeedUp {
		return
	}

	switch {
	case s.speed > s.rules.FineThreshold:
		s.speed -= s.rules.SpeedStep
	case s.speed == s.rules.FineThreshold:
		s.speed -= s.rules.FineStep
	}
	s.speed = max(s.speed, s.floor())
}

// floor returns the fastest allowed speed, never below one frame.
func (s *Scoring) floor() int {
	return max(s.rules.MinSpeed, 1)
}

// SetSpeed replaces the current speed, clamped to the floor. Later lines
// keep speeding up from the new value.
func (s *Scoring) SetSpeed(frames int) {
	s.speed = max(frames, s.floor())
}

// Score returns the current score.
func (s *Scoring) Score() int { return s.score }

// Lines returns the number of cleared lines.
func (s *Scoring) Lines() int { return s.lines }

// Speed returns the number of frames between gravity steps.
func (s *Scoring) Speed() int { return s.speed }
