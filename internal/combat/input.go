package combat

import (
	"math"
	"strings"
)

// Side names a player.
type Side int

const (
	SideNone Side = iota
	Player1
	Player2
)

func (s Side) String() string {
	switch s {
	case Player1:
		return "p1"
	case Player2:
		return "p2"
	}
	return "none"
}

func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s Side) Other() Side {
	switch s {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return SideNone
}

type Direction int

const (
	DirNone Direction = iota
	DirForward
	DirBack
	DirUp
	DirDown
)

func (d Direction) Symbol() string {
	switch d {
	case DirForward:
		return "→"
	case DirBack:
		return "←"
	case DirUp:
		return "↑"
	case DirDown:
		return "↓"
	}
	return ""
}

func (d Direction) MarshalText() ([]byte, error) { return []byte(d.Symbol()), nil }

// ParseDirection accepts an arrow or a word (forward/back/up/down).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "→", "forward", "right":
		return DirForward, nil
	case "←", "back", "left":
		return DirBack, nil
	case "↑", "up":
		return DirUp, nil
	case "↓", "down":
		return DirDown, nil
	case "", "none":
		return DirNone, nil
	}
	return DirNone, newError(CodeValidation, "unknown direction %q", s)
}

type Button string

const (
	ButtonA Button = "A"
	ButtonB Button = "B"
	ButtonX Button = "X"
	ButtonY Button = "Y"
)

func (b Button) valid() bool {
	switch b {
	case ButtonA, ButtonB, ButtonX, ButtonY:
		return true
	}
	return false
}

// Command is a committed direction+button with the frame it was entered on.
type Command struct {
	Direction Direction `json:"direction"`
	Button    Button    `json:"button"`
	Timestamp int       `json:"timestamp"`
}

// String is the catalog key, e.g. "→A".
func (c Command) String() string {
	return c.Direction.Symbol() + string(c.Button)
}

// ParseCommand splits a catalog command string into direction and button.
func ParseCommand(s string) (Command, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Command{}, newError(CodeValidation, "empty command")
	}
	b := Button(s[len(s)-1:])
	if !b.valid() {
		return Command{}, newError(CodeValidation, "command %q has no button", s)
	}
	d, err := ParseDirection(s[:len(s)-1])
	if err != nil {
		return Command{}, wrapError(CodeValidation, err, "command %q", s)
	}
	if d == DirNone {
		return Command{}, newError(CodeValidation, "command %q has no direction", s)
	}
	return Command{Direction: d, Button: b}, nil
}

// ChargeInput describes spirit charging during the input window.
type ChargeInput struct {
	Charging   bool      `json:"charging"`
	Direction  Direction `json:"direction"`
	FramesHeld int       `json:"frames_held"`
}

// TurnInput is one player's derived input for a turn.
type TurnInput struct {
	Charge  ChargeInput `json:"charge"`
	Command *Command    `json:"command,omitempty"`
	UseItem bool        `json:"use_item"`
	// RecoveryPresses are the frames of recovery inputs while knocked down.
	RecoveryPresses []int `json:"recovery_presses,omitempty"`
}

func (in TurnInput) validate() error {
	if in.Charge.FramesHeld < 0 {
		return newError(CodeValidation, "negative charge frames %d", in.Charge.FramesHeld)
	}
	if in.Command != nil {
		if in.Command.Direction == DirNone || !in.Command.Button.valid() {
			return newError(CodeValidation, "malformed command %q", in.Command.String())
		}
		if in.Command.Timestamp < 0 {
			return newError(CodeValidation, "negative command timestamp %d", in.Command.Timestamp)
		}
	}
	return nil
}

// DetermineInitiative returns the side that acts first. A missing command
// never goes first unless both are missing; equal timestamps favour
// player 1.
func DetermineInitiative(p1, p2 *Command) Side {
	t1, t2 := math.MaxInt, math.MaxInt
	if p1 != nil {
		t1 = p1.Timestamp
	}
	if p2 != nil {
		t2 = p2.Timestamp
	}
	if t2 < t1 {
		return Player2
	}
	return Player1
}
