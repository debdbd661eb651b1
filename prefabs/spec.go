package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SceneSpec lists the entities a scene is built from. Entities are built in
// order, so a parent or joint target must come before the entities that
// refer to it.
type SceneSpec struct {
	Name       string            `yaml:"name"`
	Background *YAMLColor        `yaml:"background"`
	Entities   []SceneEntitySpec `yaml:"entities"`
	Spawners   []SpawnerSpec     `yaml:"spawners"`
}

// SceneEntitySpec places one prefab. ID names the entity for parent and joint
// references; X, Y and Z override the prefab transform when set.
type SceneEntitySpec struct {
	Prefab string   `yaml:"prefab"`
	ID     string   `yaml:"id"`
	Parent string   `yaml:"parent"`
	X      *float64 `yaml:"x"`
	Y      *float64 `yaml:"y"`
	Z      *float64 `yaml:"z"`
}

// SpawnerSpec spawns Count copies of a prefab at random positions inside the
// window rectangle centred on the origin.
type SpawnerSpec struct {
	Prefab string `yaml:"prefab"`
	Count  int    `yaml:"count"`
}

// SceneFile is the prefab file of a named scene.
func SceneFile(name string) string {
	return "scene_" + name + ".yaml"
}

func LoadSceneSpec(name string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](SceneFile(name))
	if err != nil {
		return nil, err
	}
	if len(spec.Entities) == 0 && len(spec.Spawners) == 0 {
		return nil, fmt.Errorf("prefabs: scene %q is empty", name)
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseHexColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// ParseHexColor parses #rrggbb or #rrggbbaa.
func ParseHexColor(v string) (color.Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(v), "#")
	if len(s) != 6 && len(s) != 8 {
		return nil, fmt.Errorf("invalid color format: %q", v)
	}
	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}
	r, err := parse(0)
	if err != nil {
		return nil, fmt.Errorf("parse red component: %w", err)
	}
	g, err := parse(2)
	if err != nil {
		return nil, fmt.Errorf("parse green component: %w", err)
	}
	b, err := parse(4)
	if err != nil {
		return nil, fmt.Errorf("parse blue component: %w", err)
	}
	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return nil, fmt.Errorf("parse alpha component: %w", err)
		}
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
