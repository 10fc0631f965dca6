package mandel

import (
	"fmt"
	"strings"
)

// Op is a navigation request produced by an input source.
type Op int

const (
	MoveUp Op = iota
	MoveDown
	MoveLeft
	MoveRight
	ZoomIn
	ZoomOut
	// Snapshot and Quit are handled by the front end, Apply ignores them.
	Snapshot
	Quit
)

var opNames = [...]string{
	MoveUp:    "moveUp",
	MoveDown:  "moveDown",
	MoveLeft:  "moveLeft",
	MoveRight: "moveRight",
	ZoomIn:    "zoomIn",
	ZoomOut:   "zoomOut",
	Snapshot:  "snapshot",
	Quit:      "quit",
}

func (o Op) String() string {
	if o >= 0 && int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// ParseOp parses an op name as printed by Op.String, ignoring case.
func ParseOp(name string) (Op, error) {
	for o, n := range opNames {
		if strings.EqualFold(n, name) {
			return Op(o), nil
		}
	}
	return 0, fmt.Errorf("unknown op %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (o Op) MarshalText() ([]byte, error) {
	if o < 0 || int(o) >= len(opNames) {
		return nil, fmt.Errorf("unknown op %d", int(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Op) UnmarshalText(b []byte) error {
	op, err := ParseOp(string(b))
	if err != nil {
		return err
	}
	*o = op
	return nil
}

// Navigates reports whether o changes the viewport.
func (o Op) Navigates() bool {
	return o >= MoveUp && o <= ZoomOut
}

// Apply moves r according to o. Ops that do not navigate leave r unchanged.
func (r *Region) Apply(o Op, moveRate, zoomRate float64) {
	switch o {
	case MoveUp:
		r.MoveUp(moveRate)
	case MoveDown:
		r.MoveDown(moveRate)
	case MoveLeft:
		r.MoveLeft(moveRate)
	case MoveRight:
		r.MoveRight(moveRate)
	case ZoomIn:
		r.ZoomIn(zoomRate)
	case ZoomOut:
		r.ZoomOut(zoomRate)
	}
}
