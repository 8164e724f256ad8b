package tetris

//go:generate go tool stringer -type=ActionKind,Phase -linecomment

// ActionKind names a reducer transition.
type ActionKind int

const (
	ActionMoveLeft      ActionKind = iota // moveLeft
	ActionMoveRight                       // moveRight
	ActionRotate                          // rotate
	ActionSoftDropStart                   // softDropStart
	ActionSoftDropEnd                     // softDropEnd
	ActionHardDrop                        // hardDrop
	ActionTick                            // tick
	ActionSpawn                           // spawn
	ActionMarkGameOver                    // gameOver
	ActionCommitClear                     // commitClear
	ActionReset                           // reset
)

// actionAliases maps the control names used by touch and gesture sources
// onto action kinds.
var actionAliases = map[string]ActionKind{
	"rotateRight": ActionRotate,
	"softDrop":    ActionSoftDropStart,
	"endSoftDrop": ActionSoftDropEnd,
	"moveDown":    ActionTick,
}

// ParseActionKind resolves an action name or one of its aliases.
func ParseActionKind(name string) (ActionKind, error) {
	for kind := ActionMoveLeft; kind <= ActionReset; kind++ {
		if kind.String() == name {
			return kind, nil
		}
	}
	if kind, ok := actionAliases[name]; ok {
		return kind, nil
	}
	return 0, &UnknownNameError{Kind: "action", Name: name}
}

// MarshalText encodes the kind by name.
func (k ActionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText accepts names and aliases understood by ParseActionKind.
func (k *ActionKind) UnmarshalText(text []byte) error {
	kind, err := ParseActionKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// Action is a request to the reducer. Intensity only applies to horizontal
// moves; Piece only to spawns.
type Action struct {
	Kind      ActionKind `json:"action"`
	Intensity int        `json:"intensity,omitempty"`
	Piece     *Piece     `json:"piece,omitempty"`
}

func MoveLeft(intensity int) Action {
	return Action{Kind: ActionMoveLeft, Intensity: intensity}
}

func MoveRight(intensity int) Action {
	return Action{Kind: ActionMoveRight, Intensity: intensity}
}

func Spawn(p Piece) Action {
	return Action{Kind: ActionSpawn, Piece: &p}
}

// Do builds an action that carries no payload.
func Do(kind ActionKind) Action {
	return Action{Kind: kind}
}

// Controllable reports whether external sources may send this kind. Spawns,
// ticks, clear commits and game-over marks are issued by the host only.
func (k ActionKind) Controllable() bool {
	switch k {
	case ActionMoveLeft, ActionMoveRight, ActionRotate,
		ActionSoftDropStart, ActionSoftDropEnd, ActionHardDrop:
		return true
	}
	return false
}
