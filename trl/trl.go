// Package trl provides the NASA Technology Readiness Level reference
// scale as immutable lookup data.
//
// The scale is a fixed external standard: nine levels from basic
// research (1) to flight-proven operational use (9). The table is
// defined once at init and never mutated, so it is safe for concurrent
// readers without locking.
package trl

import (
	"errors"
	"fmt"
)

// MinLevel and MaxLevel bound the TRL scale.
const (
	MinLevel = 1
	MaxLevel = 9
)

// ErrOutOfRange is returned when a level outside [MinLevel, MaxLevel]
// is requested.
var ErrOutOfRange = errors.New("TRL level out of range")

// Entry is one rung of the readiness scale.
type Entry struct {
	Level       int    `json:"level"`
	Description string `json:"description"`
}

// descriptions holds the canonical NASA definitions, indexed by level-1.
var descriptions = [MaxLevel]string{
	"Basic principles observed and reported.",
	"Technology concept and/or application formulated.",
	"Analytical and experimental critical function and/or characteristic proof of concept.",
	"Component and/or breadboard validation in laboratory environment.",
	"Component and/or breadboard validation in relevant environment.",
	"System/subsystem model or prototype demonstration in a relevant environment.",
	"System prototype demonstration in an operational environment.",
	`Actual system completed and "flight qualified" through test and demonstration.`,
	`Actual system "flight proven" through successful mission operations.`,
}

// Valid reports whether level is within the TRL scale.
func Valid(level int) bool {
	return level >= MinLevel && level <= MaxLevel
}

// Describe returns the canonical description for a TRL level.
// Levels outside [MinLevel, MaxLevel] return an error wrapping
// ErrOutOfRange.
func Describe(level int) (string, error) {
	if !Valid(level) {
		return "", fmt.Errorf("level %d: %w", level, ErrOutOfRange)
	}
	return descriptions[level-1], nil
}

// All returns every entry of the scale in ascending level order.
// The returned slice is freshly allocated on each call.
func All() []Entry {
	entries := make([]Entry, 0, MaxLevel)
	for i, desc := range descriptions {
		entries = append(entries, Entry{Level: i + 1, Description: desc})
	}
	return entries
}
