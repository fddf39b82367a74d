package assessment

import "fmt"

// Decision is the outcome of gating an assessment against a minimum
// acceptable TRL.
type Decision string

const (
	// DecisionAccepted indicates the assessed level meets the minimum.
	DecisionAccepted Decision = "accepted"
	// DecisionRejected indicates the assessed level is below the minimum.
	DecisionRejected Decision = "rejected"
)

// GateResult reports the outcome of a gate check.
type GateResult struct {
	Decision Decision `json:"decision"`
	Level    int      `json:"level"`
	MinLevel int      `json:"min_level"`
}

// Gate compares the assessed level against a minimum acceptable TRL.
// The assessment's TRL string must parse; gate callers typically run
// Validate first.
func Gate(a *Assessment, minLevel int) (GateResult, error) {
	level, err := a.Level()
	if err != nil {
		return GateResult{}, fmt.Errorf("gate assessment: %w", err)
	}

	decision := DecisionAccepted
	if level < minLevel {
		decision = DecisionRejected
	}

	return GateResult{
		Decision: decision,
		Level:    level,
		MinLevel: minLevel,
	}, nil
}
