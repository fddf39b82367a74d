package trl

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseLevel parses a TRL level from its string form as produced by
// assessment output, e.g. "4" or "TRL 4". Leading/trailing whitespace
// and a case-insensitive "TRL" prefix are tolerated. Integers outside
// the scale return an error wrapping ErrOutOfRange.
func ParseLevel(s string) (int, error) {
	trimmed := strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(strings.ToUpper(trimmed), "TRL"); ok {
		trimmed = strings.TrimSpace(rest)
	}

	level, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid TRL %q: %w", s, err)
	}

	if !Valid(level) {
		return 0, fmt.Errorf("level %d: %w", level, ErrOutOfRange)
	}

	return level, nil
}
