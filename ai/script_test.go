package ai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScriptScorer(t *testing.T) {
	src := []byte(`
math := import("math")
score = math.min(thirst / max, 1.0)
`)
	s, err := NewScriptScorer[*actor]("thirsty", src, func(a *actor) map[string]any {
		return map[string]any{"thirst": a.want, "max": 100.0}
	}, "thirst", "max")
	require.NoError(t, err)

	got, err := s.Evaluate(&actor{want: 40})
	require.NoError(t, err)
	require.InDelta(t, 0.4, got.Value(), 1e-9)

	require.Equal(t, Score(1), s.Score(&actor{want: 250}))
}

func TestScriptScorerCompileError(t *testing.T) {
	_, err := NewScriptScorer[*actor]("broken", []byte(`score = (`), nil)
	require.Error(t, err)
}

func TestScriptScorerUndeclaredInput(t *testing.T) {
	s, err := NewScriptScorer[*actor]("plain", []byte(`score = 0.5`), func(*actor) map[string]any {
		return map[string]any{"missing": 1.0}
	})
	require.NoError(t, err)

	_, err = s.Evaluate(&actor{})
	require.Error(t, err)
	require.Equal(t, Score(0), s.Score(&actor{}))
}
