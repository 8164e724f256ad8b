package tetris

//go:generate go tool stringer -type=Color -linecomment

// Color tags an occupied cell. The catalogue only uses these three.
type Color int

const (
	ColorPrimary Color = iota // primary
	ColorAccent               // accent
	ColorError                // error
)

// MarshalText encodes the color by name so snapshots read well on the wire.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (c *Color) UnmarshalText(text []byte) error {
	for candidate := ColorPrimary; candidate <= ColorError; candidate++ {
		if candidate.String() == string(text) {
			*c = candidate
			return nil
		}
	}
	return &UnknownNameError{Kind: "color", Name: string(text)}
}

// UnknownNameError reports a name that does not belong to an enumeration.
type UnknownNameError struct {
	Kind string
	Name string
}

func (e *UnknownNameError) Error() string {
	return "tetris: unknown " + e.Kind + " " + `"` + e.Name + `"`
}
