package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/milk9111/tanks/ai"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
	"github.com/milk9111/tanks/prefabs"
)

// AIContext is what scorers and actions see of the world.
type AIContext struct {
	World *ecs.World
	Actor ecs.Entity
	Dt    float64
}

// ActionFactory turns an action config into a builder. Factories receive the
// system so composite actions can build their children.
type ActionFactory func(s *AISystem, cfg component.ActionConfig) (ai.ActionBuilder[*AIContext], error)

// AISystem builds a thinker for every entity with a ThinkerConfig and ticks
// it once per frame.
type AISystem struct {
	thinkers map[ecs.Entity]*ai.Thinker[*AIContext]
	failed   map[ecs.Entity]bool
	actions  map[string]ActionFactory
	scorers  map[string]ai.Scorer[*AIContext]

	// LoadScript resolves scorer scripts by name.
	LoadScript func(name string) ([]byte, error)
	Debug      bool
}

func NewAISystem() *AISystem {
	s := &AISystem{
		thinkers:   make(map[ecs.Entity]*ai.Thinker[*AIContext]),
		failed:     make(map[ecs.Entity]bool),
		actions:    make(map[string]ActionFactory),
		scorers:    make(map[string]ai.Scorer[*AIContext]),
		LoadScript: prefabs.LoadScript,
	}

	s.RegisterAction("move_to_water_source", func(_ *AISystem, cfg component.ActionConfig) (ai.ActionBuilder[*AIContext], error) {
		return func() ai.Action[*AIContext] { return &MoveToWaterSource{Speed: cfg.Speed} }, nil
	})
	s.RegisterAction("drink", func(_ *AISystem, cfg component.ActionConfig) (ai.ActionBuilder[*AIContext], error) {
		return func() ai.Action[*AIContext] { return &Drink{PerSecond: cfg.PerSecond} }, nil
	})
	s.RegisterAction("steps", func(s *AISystem, cfg component.ActionConfig) (ai.ActionBuilder[*AIContext], error) {
		children := make([]ai.ActionBuilder[*AIContext], 0, len(cfg.Steps))
		for i, step := range cfg.Steps {
			child, err := s.buildAction(step)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
			children = append(children, child)
		}
		return ai.NewSteps(cfg.Label, children...), nil
	})

	s.RegisterScorer("thirsty", ai.ScorerFunc[*AIContext](func(ctx *AIContext) float64 {
		t, ok := ecs.Get(ctx.World, ctx.Actor, component.ThirstComponent.Kind())
		if !ok {
			return 0
		}
		return ThirstyScore(*t)
	}))
	return s
}

func (s *AISystem) RegisterAction(kind string, f ActionFactory) {
	s.actions[kind] = f
}

func (s *AISystem) RegisterScorer(name string, scorer ai.Scorer[*AIContext]) {
	s.scorers[name] = scorer
}

// Thinker returns the running thinker of e.
func (s *AISystem) Thinker(e ecs.Entity) (*ai.Thinker[*AIContext], bool) {
	th, ok := s.thinkers[e]
	return th, ok
}

func (s *AISystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for e := range s.thinkers {
		if !ecs.Has(w, e, component.ThinkerConfigComponent.Kind()) {
			delete(s.thinkers, e)
		}
	}
	for e := range s.failed {
		if !w.IsAlive(e) {
			delete(s.failed, e)
		}
	}

	dt := w.Time().Delta
	ecs.ForEach(w, component.ThinkerConfigComponent.Kind(), func(e ecs.Entity, cfg *component.ThinkerConfig) {
		th, ok := s.thinkers[e]
		if !ok {
			if s.failed[e] {
				return
			}
			built, err := s.BuildThinker(*cfg)
			if err != nil {
				log.Printf("ai: entity=%s build thinker: %v", e, err)
				s.failed[e] = true
				return
			}
			built.Debug = s.Debug
			s.thinkers[e] = built
			th = built
		}

		th.Tick(&AIContext{World: w, Actor: e, Dt: dt})
		if w.IsAlive(e) {
			s.writeStatus(w, e, th)
		}
	})
}

func (s *AISystem) writeStatus(w *ecs.World, e ecs.Entity, th *ai.Thinker[*AIContext]) {
	status, ok := ecs.Get(w, e, component.AIStatusComponent.Kind())
	if !ok {
		status = &component.AIStatus{}
		_ = ecs.Add(w, e, component.AIStatusComponent.Kind(), status)
	}
	_, state := th.Current()
	status.Choice = th.CurrentLabel()
	status.State = state.String()
	status.Action = ""
	if th.CurrentLabel() != "" {
		status.Action = actionName(th)
	}
	status.Scores = status.Scores[:0]
	for _, sc := range th.Scores() {
		status.Scores = append(status.Scores, sc.Value())
	}
}

func actionName(th *ai.Thinker[*AIContext]) string {
	act, _ := th.Current()
	switch a := act.(type) {
	case *ai.Steps[*AIContext]:
		return fmt.Sprintf("%s[%d]", a.Label, a.Index())
	case *MoveToWaterSource:
		return "move_to_water_source"
	case *Drink:
		return "drink"
	}
	return fmt.Sprintf("%T", act)
}

// BuildThinker creates a thinker from its config.
func (s *AISystem) BuildThinker(cfg component.ThinkerConfig) (*ai.Thinker[*AIContext], error) {
	var picker ai.Picker
	switch strings.ToLower(cfg.Picker) {
	case "", "first_to_score":
		picker = ai.FirstToScore{Threshold: cfg.Threshold}
	case "highest":
		picker = ai.Highest{}
	case "highest_to_score":
		picker = ai.HighestToScore{Threshold: cfg.Threshold}
	default:
		return nil, fmt.Errorf("unknown picker %q", cfg.Picker)
	}

	th := ai.NewThinker[*AIContext](cfg.Label, picker)
	for i, c := range cfg.Choices {
		scorer, label, err := s.buildScorer(c)
		if err != nil {
			return nil, fmt.Errorf("choice %d: %w", i, err)
		}
		build, err := s.buildAction(c.Action)
		if err != nil {
			return nil, fmt.Errorf("choice %d: %w", i, err)
		}
		th.When(label, scorer, build)
	}
	if cfg.Otherwise != nil {
		build, err := s.buildAction(*cfg.Otherwise)
		if err != nil {
			return nil, fmt.Errorf("otherwise: %w", err)
		}
		th.Otherwise = build
	}
	return th, nil
}

func (s *AISystem) buildScorer(c component.ChoiceConfig) (ai.Scorer[*AIContext], string, error) {
	if c.Script != "" {
		if s.LoadScript == nil {
			return nil, "", fmt.Errorf("no script loader for %q", c.Script)
		}
		src, err := s.LoadScript(c.Script)
		if err != nil {
			return nil, "", fmt.Errorf("load script %q: %w", c.Script, err)
		}
		scorer, err := ai.NewScriptScorer(c.Script, src, scriptBindings, scriptInputs...)
		if err != nil {
			return nil, "", err
		}
		return scorer, c.Script, nil
	}
	scorer, ok := s.scorers[c.Scorer]
	if !ok {
		return nil, "", fmt.Errorf("unknown scorer %q", c.Scorer)
	}
	return scorer, c.Scorer, nil
}

func (s *AISystem) buildAction(cfg component.ActionConfig) (ai.ActionBuilder[*AIContext], error) {
	f, ok := s.actions[cfg.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown action %q", cfg.Kind)
	}
	return f(s, cfg)
}

var scriptInputs = []string{"thirst", "per_second", "max_thirst", "water_sources"}

// scriptBindings exposes the actor to scorer scripts.
func scriptBindings(ctx *AIContext) map[string]any {
	vars := map[string]any{
		"thirst":        0.0,
		"per_second":    0.0,
		"max_thirst":    component.MaxThirst,
		"water_sources": float64(len(ctx.World.Query(component.WaterSourceComponent.Kind()))),
	}
	if t, ok := ecs.Get(ctx.World, ctx.Actor, component.ThirstComponent.Kind()); ok {
		vars["thirst"] = t.Thirst
		vars["per_second"] = t.PerSecond
	}
	return vars
}
