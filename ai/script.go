package ai

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// ScriptScorer runs a tengo script that assigns the global `score`. Bind
// supplies the script's input variables for each evaluation; every name it
// returns must have been declared in NewScriptScorer.
type ScriptScorer[C any] struct {
	Name string
	Bind func(ctx C) map[string]any

	compiled *tengo.Compiled
}

// NewScriptScorer compiles src with the given input variables declared as
// floats. The script reads them and assigns score.
func NewScriptScorer[C any](name string, src []byte, bind func(ctx C) map[string]any, inputs ...string) (*ScriptScorer[C], error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := script.Add("score", 0.0); err != nil {
		return nil, fmt.Errorf("ai: script %s: declare score: %w", name, err)
	}
	for _, in := range inputs {
		if err := script.Add(in, 0.0); err != nil {
			return nil, fmt.Errorf("ai: script %s: declare %s: %w", name, in, err)
		}
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("ai: script %s: compile: %w", name, err)
	}
	return &ScriptScorer[C]{Name: name, Bind: bind, compiled: compiled}, nil
}

// Evaluate runs the script once and returns the clamped score.
func (s *ScriptScorer[C]) Evaluate(ctx C) (Score, error) {
	if s == nil || s.compiled == nil {
		return 0, fmt.Errorf("ai: nil script scorer")
	}
	if s.Bind != nil {
		for k, v := range s.Bind(ctx) {
			if err := s.compiled.Set(k, v); err != nil {
				return 0, fmt.Errorf("ai: script %s: set %s: %w", s.Name, k, err)
			}
		}
	}
	if err := s.compiled.Run(); err != nil {
		return 0, fmt.Errorf("ai: script %s: run: %w", s.Name, err)
	}
	return ScoreOf(s.compiled.Get("score").Float()), nil
}

// Score implements Scorer. Script errors are logged and score zero.
func (s *ScriptScorer[C]) Score(ctx C) Score {
	score, err := s.Evaluate(ctx)
	if err != nil {
		log.Printf("%v", err)
		return 0
	}
	return score
}
