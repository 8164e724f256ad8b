// Package tetris is the deterministic game engine: board and piece model,
// move validation, rotation, merge, line clear and the state reducer.
package tetris

// Reduce applies one action and returns the next state. Every transition is
// total: actions that do not apply to the current phase, or moves the
// validator rejects, return the state unchanged.
func Reduce(cfg Config, s State, a Action) State {
	if s.GameOver {
		if a.Kind == ActionReset {
			return NewState(cfg)
		}
		return s
	}

	switch a.Kind {
	case ActionMoveLeft:
		return shift(cfg, s, -1, a.Intensity)
	case ActionMoveRight:
		return shift(cfg, s, 1, a.Intensity)

	case ActionRotate:
		if s.Piece == nil {
			return s
		}
		rotated := Rotate(*s.Piece)
		if !IsValidMove(rotated, s.Board, 0, 0) {
			return s
		}
		s.Piece = &rotated
		return s

	case ActionTick:
		if s.Piece == nil {
			return s
		}
		if IsValidMove(*s.Piece, s.Board, 0, 1) {
			next := s.Piece.Shifted(0, 1)
			s.Piece = &next
			return s
		}
		return lock(s, *s.Piece)

	case ActionHardDrop:
		if s.Piece == nil {
			return s
		}
		return lock(s, Drop(*s.Piece, s.Board))

	case ActionCommitClear:
		if s.Pending == nil {
			return s
		}
		cleared := len(s.Pending.Rows)
		s.Board = ClearRows(s.Pending.Board, s.Pending.Rows)
		s.Score += cleared * cfg.PointsPerRow
		s.Lines += cleared
		s.Pending = nil
		return s

	case ActionSpawn:
		if a.Piece == nil || s.Piece != nil || s.Pending != nil {
			return s
		}
		if s.Board.OccupiedAbove(cfg.GameOverLine) || !IsValidMove(*a.Piece, s.Board, 0, 0) {
			s.GameOver = true
			s.SoftDrop = false
			return s
		}
		piece := *a.Piece
		s.Piece = &piece
		return s

	case ActionSoftDropStart:
		s.SoftDrop = true
		return s
	case ActionSoftDropEnd:
		s.SoftDrop = false
		return s

	case ActionMarkGameOver:
		s.GameOver = true
		s.SoftDrop = false
		return s

	case ActionReset:
		return NewState(cfg)
	}

	return s
}

// shift attempts up to intensity single-column steps and keeps whatever
// distance succeeded before the first obstruction.
func shift(cfg Config, s State, dir, intensity int) State {
	if s.Piece == nil {
		return s
	}

	steps := cfg.clampIntensity(intensity)
	piece := *s.Piece
	moved := 0
	for moved < steps && IsValidMove(piece, s.Board, dir, 0) {
		piece = piece.Shifted(dir, 0)
		moved++
	}

	if moved == 0 {
		return s
	}
	s.Piece = &piece
	return s
}

// lock merges p into the board. Full rows are staged as a pending clear and
// shown flagged until CommitClear arrives.
func lock(s State, p Piece) State {
	merged := Merge(p, s.Board)
	s.Piece = nil

	rows := merged.CompletedRows()
	if len(rows) == 0 {
		s.Board = merged
		return s
	}

	s.Pending = &PendingClear{Board: merged, Rows: rows}
	s.Board = MarkClearing(merged, rows)
	return s
}
