package entity

import (
	"fmt"
	"math/rand"

	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/prefabs"
)

// SpawnEnemies builds count copies of prefabPath at uniform random positions
// inside a width x height rectangle centred on the origin, each with a random
// z in [0, 1).
func SpawnEnemies(w *ecs.World, prefabPath string, count int, width, height float64, rng *rand.Rand) ([]ecs.Entity, error) {
	if count <= 0 {
		return nil, nil
	}
	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return nil, fmt.Errorf("spawn enemies: load %q: %w", prefabPath, err)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	out := make([]ecs.Entity, 0, count)
	for i := 0; i < count; i++ {
		e, err := buildFromSpec(w, prefabPath, spec, &buildContext{PrefabPath: prefabPath})
		if err != nil {
			for _, built := range out {
				ecs.DestroyEntity(w, built)
			}
			return nil, fmt.Errorf("spawn enemies: %w", err)
		}
		x := rng.Float64()*width - width/2
		y := rng.Float64()*height - height/2
		z := rng.Float64()
		if err := SetEntityPosition(w, e, &x, &y, &z); err != nil {
			return nil, fmt.Errorf("spawn enemies: position: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}
