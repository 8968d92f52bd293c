// Package flow defines the closed set of intensity levels recorded in the log.
package flow

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Flow is an intensity level. Its underlying value is the storage code.
type Flow uint8

const (
	None Flow = iota
	Spotting
	Light
	Medium
	Heavy
	Apocalyptic
)

// ErrUnsupportedCode is returned when decoding a code outside the closed set.
var ErrUnsupportedCode = errors.New("flow: unsupported flow code")

// Level describes how a Flow is presented.
type Level struct {
	Flow    Flow
	Name    string
	Symbol  string
	Meaning string
}

func (l Level) String() string {
	return l.Symbol
}

// DefaultLevels returns the level table indexed by code.
func DefaultLevels() []Level {
	l := make([]Level, 0, 6)

	l = append(l, Level{
		Flow:    None,
		Name:    "None",
		Symbol:  "·",
		Meaning: "nothing to note",
	}, Level{
		Flow:    Spotting,
		Name:    "Spotting",
		Symbol:  "◌",
		Meaning: "spotting",
	}, Level{
		Flow:    Light,
		Name:    "Light",
		Symbol:  "○",
		Meaning: "light flow",
	}, Level{
		Flow:    Medium,
		Name:    "Medium",
		Symbol:  "◐",
		Meaning: "medium flow",
	}, Level{
		Flow:    Heavy,
		Name:    "Heavy",
		Symbol:  "●",
		Meaning: "heavy flow",
	}, Level{
		Flow:    Apocalyptic,
		Name:    "Apocalyptic",
		Symbol:  "✷",
		Meaning: "everything, everywhere",
	})

	return l
}

// Options returns every Flow in picker order, None first.
func Options() []Flow {
	return []Flow{None, Spotting, Light, Medium, Heavy, Apocalyptic}
}

// FromCode decodes a stored code.
func FromCode(code uint8) (Flow, error) {
	switch Flow(code) {
	case None, Spotting, Light, Medium, Heavy, Apocalyptic:
		return Flow(code), nil
	default:
		return None, fmt.Errorf("%w: %d", ErrUnsupportedCode, code)
	}
}

// FromInt decodes a code read as a wider integer, as SQL drivers return it.
func FromInt(code int64) (Flow, error) {
	if code < 0 || code > int64(Apocalyptic) {
		return None, fmt.Errorf("%w: %d", ErrUnsupportedCode, code)
	}
	return FromCode(uint8(code))
}

// Code is the storage code.
func (f Flow) Code() uint8 {
	return uint8(f)
}

// Valid reports whether f is one of the six levels.
func (f Flow) Valid() bool {
	return f <= Apocalyptic
}

// Level returns the presentation of f.
func (f Flow) Level() Level {
	if !f.Valid() {
		return Level{Flow: f, Name: fmt.Sprintf("Flow(%d)", uint8(f)), Symbol: "?"}
	}
	return DefaultLevels()[f]
}

func (f Flow) String() string {
	return f.Level().Name
}

// Symbol is the single glyph drawn in the calendar.
func (f Flow) Symbol() string {
	return f.Level().Symbol
}

// Parse accepts a level name (any case) or its decimal code.
func Parse(s string) (Flow, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseUint(s, 10, 8); err == nil {
		return FromCode(uint8(n))
	}
	for _, l := range DefaultLevels() {
		if strings.EqualFold(l.Name, s) {
			return l.Flow, nil
		}
	}
	return None, fmt.Errorf("flow: unknown level %q", s)
}

// ByOrder sorts flows from None to Apocalyptic.
type ByOrder []Flow

func (a ByOrder) Len() int           { return len(a) }
func (a ByOrder) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a ByOrder) Less(i, j int) bool { return a[i] < a[j] }
