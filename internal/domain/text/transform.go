// Package text holds the pure string operations behind the transform and
// summarize endpoints.
package text

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects a transformation.
type Mode string

// Supported modes.
const (
	ModeUpper Mode = "upper"
	ModeLower Mode = "lower"
	ModeStrip Mode = "strip"

	DefaultMode = ModeUpper
)

// ErrInvalidMode is returned for modes other than upper, lower and strip.
var ErrInvalidMode = errors.New("invalid mode")

// ParseMode normalizes a user supplied mode. Empty input selects DefaultMode.
func ParseMode(raw string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(raw)))
	switch m {
	case "":
		return DefaultMode, nil
	case ModeUpper, ModeLower, ModeStrip:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q (expected upper, lower or strip)", ErrInvalidMode, raw)
}

// Transform applies mode to s.
func Transform(s string, mode Mode) (string, error) {
	switch mode {
	case ModeUpper:
		return strings.ToUpper(s), nil
	case ModeLower:
		return strings.ToLower(s), nil
	case ModeStrip:
		return CollapseSpace(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, string(mode))
}

// CollapseSpace replaces every whitespace run with one space and trims both ends.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
