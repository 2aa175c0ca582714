package widget

import (
	"strings"

	"github.com/arthur-debert/barkeep/pkg/errors"
)

// Button is a mouse button bound to a callback.
type Button int

const (
	Left Button = iota
	Middle
	Right
)

func (b Button) String() string {
	switch b {
	case Left:
		return "left"
	case Middle:
		return "middle"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ParseButton parses "left", "middle" or "right".
func ParseButton(s string) (Button, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "on_left":
		return Left, nil
	case "middle", "on_middle":
		return Middle, nil
	case "right", "on_right":
		return Right, nil
	}
	return Left, errors.Newf(errors.ErrInvalidInput, "unknown mouse button %q", s).
		WithDetail("button", s)
}
