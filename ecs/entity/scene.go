package entity

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"

	"github.com/milk9111/tanks/common"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
	"github.com/milk9111/tanks/prefabs"
)

// Scene is what BuildScene made: the named entities and the clear colour.
type Scene struct {
	Name       string
	Background color.Color
	Refs       map[string]ecs.Entity
}

// BuildScene builds every entity of the named scene into w. Spawners place
// their copies with rng.
func BuildScene(w *ecs.World, name string, rng *rand.Rand) (*Scene, error) {
	spec, err := prefabs.LoadSceneSpec(name)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}

	scene := &Scene{
		Name:       spec.Name,
		Background: color.Black,
		Refs:       make(map[string]ecs.Entity),
	}
	if spec.Background != nil {
		scene.Background = spec.Background.Color
	}

	for i, es := range spec.Entities {
		ctx := &buildContext{PrefabPath: es.Prefab, Refs: scene.Refs}
		e, err := buildEntity(w, es.Prefab, ctx)
		if err != nil {
			return nil, fmt.Errorf("scene %s: entity %d: %w", name, i, err)
		}
		if es.X != nil || es.Y != nil || es.Z != nil {
			if err := SetEntityPosition(w, e, es.X, es.Y, es.Z); err != nil {
				return nil, fmt.Errorf("scene %s: entity %d: position: %w", name, i, err)
			}
		}
		if es.Parent != "" {
			parent, err := ctx.resolve(es.Parent)
			if err != nil {
				return nil, fmt.Errorf("scene %s: entity %d: %w", name, i, err)
			}
			if err := ecs.Add(w, e, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(parent)}); err != nil {
				return nil, fmt.Errorf("scene %s: entity %d: parent: %w", name, i, err)
			}
		}
		if es.ID != "" {
			if _, dup := scene.Refs[es.ID]; dup {
				return nil, fmt.Errorf("scene %s: duplicate entity id %q", name, es.ID)
			}
			scene.Refs[es.ID] = e
		}
	}

	for _, sp := range spec.Spawners {
		if _, err := SpawnEnemies(w, sp.Prefab, sp.Count, common.BaseWidth, common.BaseHeight, rng); err != nil {
			return nil, fmt.Errorf("scene %s: %w", name, err)
		}
	}

	log.Printf("scene: built %s with %d entities", name, len(ecs.Entities(w)))
	return scene, nil
}
