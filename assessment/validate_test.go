package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/readiness/trl"
)

func testEvidence() []Evidence {
	return []Evidence{
		{Title: "paper one", Snippet: "lab validation", SourceURL: "https://example.org/a"},
		{Title: "paper two", Snippet: "field trial", SourceURL: "https://example.org/b"},
		{Title: "patent", Snippet: "process claim", SourceURL: "https://example.org/c"},
	}
}

func TestValidate(t *testing.T) {
	t.Run("accepts a well-formed assessment", func(t *testing.T) {
		a := New("aerogel insulation", "5", "validated in relevant environment", []int{1, 3})
		require.NoError(t, Validate(a, testEvidence()))
	})

	t.Run("rejects nil assessment", func(t *testing.T) {
		require.Error(t, Validate(nil, testEvidence()))
	})

	t.Run("rejects unparseable TRL", func(t *testing.T) {
		a := New("topic", "somewhere around five", "just", nil)
		require.Error(t, Validate(a, testEvidence()))
	})

	t.Run("rejects out-of-range TRL", func(t *testing.T) {
		a := New("topic", "12", "just", nil)
		err := Validate(a, testEvidence())
		require.ErrorIs(t, err, trl.ErrOutOfRange)
	})

	t.Run("rejects empty justification", func(t *testing.T) {
		a := New("topic", "4", "   ", nil)
		require.ErrorIs(t, Validate(a, testEvidence()), ErrNoJustification)
	})

	t.Run("rejects citations outside evidence", func(t *testing.T) {
		for _, citations := range [][]int{{0}, {4}, {-1}, {1, 2, 9}} {
			a := New("topic", "4", "just", citations)
			require.ErrorIs(t, Validate(a, testEvidence()), ErrBadCitation)
		}
	})

	t.Run("accepts empty citations", func(t *testing.T) {
		a := New("topic", "4", "just", nil)
		require.NoError(t, Validate(a, testEvidence()))
	})
}

func TestCitationURLs(t *testing.T) {
	evidence := testEvidence()

	t.Run("returns URLs in citation order", func(t *testing.T) {
		a := New("topic", "4", "just", []int{3, 1})
		urls := CitationURLs(a, evidence)
		assert.Equal(t, []string{"https://example.org/c", "https://example.org/a"}, urls)
	})

	t.Run("deduplicates", func(t *testing.T) {
		a := New("topic", "4", "just", []int{2, 2, 2})
		assert.Equal(t, []string{"https://example.org/b"}, CitationURLs(a, evidence))
	})

	t.Run("skips unresolvable citations", func(t *testing.T) {
		a := New("topic", "4", "just", []int{0, 7, 1})
		assert.Equal(t, []string{"https://example.org/a"}, CitationURLs(a, evidence))
	})
}

func TestGate(t *testing.T) {
	t.Run("accepts at or above minimum", func(t *testing.T) {
		for _, trlStr := range []string{"4", "5", "9"} {
			a := New("topic", trlStr, "just", nil)
			result, err := Gate(a, 4)
			require.NoError(t, err)
			assert.Equal(t, DecisionAccepted, result.Decision)
			assert.Equal(t, 4, result.MinLevel)
		}
	})

	t.Run("rejects below minimum", func(t *testing.T) {
		a := New("topic", "3", "just", nil)
		result, err := Gate(a, 4)
		require.NoError(t, err)
		assert.Equal(t, DecisionRejected, result.Decision)
		assert.Equal(t, 3, result.Level)
	})

	t.Run("fails on unparseable TRL", func(t *testing.T) {
		a := New("topic", "n/a", "just", nil)
		_, err := Gate(a, 4)
		require.Error(t, err)
	})
}
