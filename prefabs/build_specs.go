package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Z        float64 `yaml:"z"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type ShapeComponentSpec struct {
	Kind        string      `yaml:"kind"`
	Radius      float64     `yaml:"radius"`
	Points      []PointSpec `yaml:"points"`
	Closed      *bool       `yaml:"closed"`
	Indices     []uint16    `yaml:"indices"`
	Fill        string      `yaml:"fill"`
	Stroke      string      `yaml:"stroke"`
	StrokeWidth float64     `yaml:"stroke_width"`
}

type RigidBodyComponentSpec struct {
	Type string `yaml:"type"`
}

type ColliderComponentSpec struct {
	Shape      string  `yaml:"shape"`
	HalfWidth  float64 `yaml:"half_width"`
	HalfHeight float64 `yaml:"half_height"`
	Radius     float64 `yaml:"radius"`
	Friction   float64 `yaml:"friction"`
	Sensor     bool    `yaml:"sensor"`
}

type RestitutionComponentSpec struct {
	Coefficient float64 `yaml:"coefficient"`
}

type DampingComponentSpec struct {
	Linear  float64 `yaml:"linear"`
	Angular float64 `yaml:"angular"`
}

type VelocityComponentSpec struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Angular float64 `yaml:"angular"`
}

type ColliderMassComponentSpec struct {
	Mass float64 `yaml:"mass"`
}

type CollisionGroupsComponentSpec struct {
	Memberships uint32 `yaml:"memberships"`
	Filters     uint32 `yaml:"filters"`
}

// ImpulseJointComponentSpec pins the entity to the scene entity named by
// Parent.
type ImpulseJointComponentSpec struct {
	Parent       string    `yaml:"parent"`
	AnchorParent PointSpec `yaml:"anchor_parent"`
	AnchorChild  PointSpec `yaml:"anchor_child"`
}

type PlayerComponentSpec struct {
	Speed        float64 `yaml:"speed"`
	PullDistance float64 `yaml:"pull_distance"`
	Mode         string  `yaml:"mode"`
}

type PlayerPullComponentSpec struct {
	Speed float64 `yaml:"speed"`
}

type CameraComponentSpec struct {
	Zoom float64 `yaml:"zoom"`
}

type PanCamComponentSpec struct {
	GrabButtons  []string `yaml:"grab_buttons"`
	Enabled      *bool    `yaml:"enabled"`
	ZoomToCursor bool     `yaml:"zoom_to_cursor"`
	MinScale     float64  `yaml:"min_scale"`
	MaxScale     float64  `yaml:"max_scale"`
}

type LineRenderComponentSpec struct {
	StartX float64 `yaml:"start_x"`
	StartY float64 `yaml:"start_y"`
	EndX   float64 `yaml:"end_x"`
	EndY   float64 `yaml:"end_y"`
	Width  float32 `yaml:"width"`
	Color  string  `yaml:"color"`
}

type ThirstComponentSpec struct {
	Thirst    float64 `yaml:"thirst"`
	PerSecond float64 `yaml:"per_second"`
}

type WaterSourceComponentSpec struct {
	Capacity float64 `yaml:"capacity"`
}

type ActionSpec struct {
	Kind      string       `yaml:"kind"`
	Label     string       `yaml:"label"`
	Speed     float64      `yaml:"speed"`
	PerSecond float64      `yaml:"per_second"`
	Steps     []ActionSpec `yaml:"steps"`
}

type ChoiceSpec struct {
	Scorer string     `yaml:"scorer"`
	Script string     `yaml:"script"`
	Action ActionSpec `yaml:"action"`
}

type ThinkerComponentSpec struct {
	Label     string       `yaml:"label"`
	Picker    string       `yaml:"picker"`
	Threshold float64      `yaml:"threshold"`
	Choices   []ChoiceSpec `yaml:"choices"`
	Otherwise *ActionSpec  `yaml:"otherwise"`
}
