package entity

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
	"github.com/milk9111/tanks/prefabs"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

// buildContext carries what a component builder may need beyond its own
// spec. Refs resolves scene ids of already built entities.
type buildContext struct {
	PrefabPath string
	Refs       map[string]ecs.Entity
}

func (c *buildContext) resolve(id string) (ecs.Entity, error) {
	if c == nil || c.Refs == nil {
		return 0, fmt.Errorf("no scene to resolve %q in", id)
	}
	e, ok := c.Refs[id]
	if !ok {
		return 0, fmt.Errorf("unknown entity id %q", id)
	}
	return e, nil
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"camera_tag":       addCameraTag,
	"enemy_tag":        addEnemyTag,
	"look_at":          addLookAt,
	"input":            addInput,
	"world_coords":     addWorldCoords,
	"transform":        addTransform,
	"shape":            addShape,
	"line_render":      addLineRender,
	"camera":           addCamera,
	"pan_cam":          addPanCam,
	"player":           addPlayer,
	"player_pull":      addPlayerPull,
	"rigid_body":       addRigidBody,
	"collider":         addCollider,
	"restitution":      addRestitution,
	"damping":          addDamping,
	"velocity":         addVelocity,
	"collider_mass":    addColliderMass,
	"collision_groups": addCollisionGroups,
	"impulse_joint":    addImpulseJoint,
	"thirst":           addThirst,
	"water_source":     addWaterSource,
	"thinker":          addThinker,
}

var componentBuildOrder = []string{
	"camera_tag",
	"enemy_tag",
	"look_at",
	"input",
	"world_coords",
	"transform",
	"shape",
	"line_render",
	"camera",
	"pan_cam",
	"player",
	"player_pull",
	"rigid_body",
	"collider",
	"restitution",
	"damping",
	"velocity",
	"collider_mass",
	"collision_groups",
	"impulse_joint",
	"thirst",
	"water_source",
	"thinker",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	return buildEntity(w, prefabPath, &buildContext{PrefabPath: prefabPath})
}

func buildEntity(w *ecs.World, prefabPath string, ctx *buildContext) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return buildFromSpec(w, prefabPath, spec, ctx)
}

func buildFromSpec(w *ecs.World, prefabPath string, spec entityPrefabSpec, ctx *buildContext) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		if _, ok := componentRegistry[k]; !ok {
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, k)
		}
		remaining[k] = v
	}

	e := ecs.CreateEntity(w)
	if spec.Name != "" {
		if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Name}); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add name: %w", prefabPath, err)
		}
	}

	names := make([]string, 0, len(remaining))
	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; ok {
			names = append(names, name)
			delete(remaining, name)
		}
	}
	rest := make([]string, 0, len(remaining))
	for name := range remaining {
		rest = append(rest, name)
	}
	sort.Strings(rest)
	names = append(names, rest...)

	for _, name := range names {
		if err := componentRegistry[name](w, e, spec.Components[name], ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

// SetEntityPosition moves e, creating its transform if needed. Nil
// coordinates keep the prefab value.
func SetEntityPosition(w *ecs.World, e ecs.Entity, x, y, z *float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	if x != nil {
		t.X = *x
	}
	if y != nil {
		t.Y = *y
	}
	if z != nil {
		t.Z = *z
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addEnemyTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{})
}

func addLookAt(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.LookAtComponent.Kind(), &component.LookAt{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addWorldCoords(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.WorldCoordsComponent.Kind(), &component.WorldCoords{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		Z:        spec.Z,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type shapeSpec = prefabs.ShapeComponentSpec

func addShape(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[shapeSpec](raw)
	if err != nil {
		return fmt.Errorf("decode shape spec: %w", err)
	}

	shape := component.Shape{
		Radius:      spec.Radius,
		Closed:      true,
		Indices:     spec.Indices,
		StrokeWidth: spec.StrokeWidth,
	}
	switch strings.ToLower(spec.Kind) {
	case "circle":
		shape.Kind = component.ShapeCircle
		if shape.Radius <= 0 {
			return fmt.Errorf("circle needs a positive radius")
		}
	case "polygon", "":
		shape.Kind = component.ShapePolygon
		if len(spec.Points) < 2 {
			return fmt.Errorf("polygon needs at least two points")
		}
	case "mesh":
		shape.Kind = component.ShapeMesh
		if len(spec.Indices)%3 != 0 || len(spec.Indices) == 0 {
			return fmt.Errorf("mesh indices must be whole triangles")
		}
		for _, idx := range spec.Indices {
			if int(idx) >= len(spec.Points) {
				return fmt.Errorf("mesh index %d out of range", idx)
			}
		}
	default:
		return fmt.Errorf("unknown shape kind %q", spec.Kind)
	}
	if spec.Closed != nil {
		shape.Closed = *spec.Closed
	}
	for _, p := range spec.Points {
		shape.Points = append(shape.Points, component.Point{X: p.X, Y: p.Y})
	}
	if spec.Fill != "" {
		if shape.Fill, err = parseHexColor(spec.Fill); err != nil {
			return fmt.Errorf("parse fill: %w", err)
		}
	}
	if spec.Stroke != "" {
		if shape.Stroke, err = parseHexColor(spec.Stroke); err != nil {
			return fmt.Errorf("parse stroke: %w", err)
		}
		if shape.StrokeWidth <= 0 {
			shape.StrokeWidth = 1
		}
	}
	return ecs.Add(w, e, component.ShapeComponent.Kind(), &shape)
}

type lineRenderSpec = prefabs.LineRenderComponentSpec

func addLineRender(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[lineRenderSpec](raw)
	if err != nil {
		return fmt.Errorf("decode line render spec: %w", err)
	}
	if spec.Width <= 0 {
		spec.Width = 1
	}
	c := color.Color(color.RGBA{R: 255, A: 255})
	if spec.Color != "" {
		parsed, err := parseHexColor(spec.Color)
		if err != nil {
			return fmt.Errorf("parse line render color: %w", err)
		}
		c = parsed
	}
	return ecs.Add(w, e, component.LineRenderComponent.Kind(), &component.LineRender{
		StartX: spec.StartX,
		StartY: spec.StartY,
		EndX:   spec.EndX,
		EndY:   spec.EndY,
		Width:  spec.Width,
		Color:  c,
	})
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.Zoom <= 0 {
		spec.Zoom = 1
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{Zoom: spec.Zoom})
}

type panCamSpec = prefabs.PanCamComponentSpec

var mouseButtons = map[string]ebiten.MouseButton{
	"left":   ebiten.MouseButtonLeft,
	"right":  ebiten.MouseButtonRight,
	"middle": ebiten.MouseButtonMiddle,
}

func addPanCam(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[panCamSpec](raw)
	if err != nil {
		return fmt.Errorf("decode pan cam spec: %w", err)
	}
	pc := component.PanCam{
		Enabled:      true,
		ZoomToCursor: spec.ZoomToCursor,
		MinScale:     spec.MinScale,
		MaxScale:     spec.MaxScale,
	}
	if spec.Enabled != nil {
		pc.Enabled = *spec.Enabled
	}
	if pc.MinScale > 0 && pc.MaxScale > 0 && pc.MinScale > pc.MaxScale {
		return fmt.Errorf("min_scale %v is above max_scale %v", pc.MinScale, pc.MaxScale)
	}
	buttons := spec.GrabButtons
	if len(buttons) == 0 {
		buttons = []string{"left", "right", "middle"}
	}
	for _, name := range buttons {
		b, ok := mouseButtons[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("unknown mouse button %q", name)
		}
		pc.GrabButtons = append(pc.GrabButtons, b)
	}
	return ecs.Add(w, e, component.PanCamComponent.Kind(), &pc)
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	p := component.Player{Speed: spec.Speed, PullDistance: spec.PullDistance}
	switch strings.ToLower(spec.Mode) {
	case "", "velocity":
		p.Mode = component.MoveVelocity
	case "translate":
		p.Mode = component.MoveTranslate
	default:
		return fmt.Errorf("unknown move mode %q", spec.Mode)
	}
	p.Clamp()
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &p)
}

type playerPullSpec = prefabs.PlayerPullComponentSpec

func addPlayerPull(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerPullSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player pull spec: %w", err)
	}
	return ecs.Add(w, e, component.PlayerPullComponent.Kind(), &component.PlayerPull{Speed: spec.Speed})
}

type rigidBodySpec = prefabs.RigidBodyComponentSpec

func addRigidBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[rigidBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode rigid body spec: %w", err)
	}
	var rb component.RigidBody
	switch strings.ToLower(spec.Type) {
	case "", "dynamic":
		rb.Type = component.BodyDynamic
	case "fixed", "static":
		rb.Type = component.BodyFixed
	case "kinematic":
		rb.Type = component.BodyKinematic
	default:
		return fmt.Errorf("unknown body type %q", spec.Type)
	}
	return ecs.Add(w, e, component.RigidBodyComponent.Kind(), &rb)
}

type colliderSpec = prefabs.ColliderComponentSpec

func addCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[colliderSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collider spec: %w", err)
	}
	col := component.Collider{
		HalfWidth:  spec.HalfWidth,
		HalfHeight: spec.HalfHeight,
		Radius:     spec.Radius,
		Friction:   spec.Friction,
		Sensor:     spec.Sensor,
	}
	switch strings.ToLower(spec.Shape) {
	case "ball":
		col.Shape = component.ColliderBall
		if col.Radius <= 0 {
			return fmt.Errorf("ball collider needs a positive radius")
		}
	case "cuboid", "":
		col.Shape = component.ColliderCuboid
		if col.HalfWidth <= 0 || col.HalfHeight <= 0 {
			return fmt.Errorf("cuboid collider needs positive half extents")
		}
	default:
		return fmt.Errorf("unknown collider shape %q", spec.Shape)
	}
	return ecs.Add(w, e, component.ColliderComponent.Kind(), &col)
}

type restitutionSpec = prefabs.RestitutionComponentSpec

func addRestitution(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[restitutionSpec](raw)
	if err != nil {
		return fmt.Errorf("decode restitution spec: %w", err)
	}
	return ecs.Add(w, e, component.RestitutionComponent.Kind(), &component.Restitution{Coefficient: spec.Coefficient})
}

type dampingSpec = prefabs.DampingComponentSpec

func addDamping(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[dampingSpec](raw)
	if err != nil {
		return fmt.Errorf("decode damping spec: %w", err)
	}
	return ecs.Add(w, e, component.DampingComponent.Kind(), &component.Damping{Linear: spec.Linear, Angular: spec.Angular})
}

type velocitySpec = prefabs.VelocityComponentSpec

func addVelocity(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[velocitySpec](raw)
	if err != nil {
		return fmt.Errorf("decode velocity spec: %w", err)
	}
	return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{X: spec.X, Y: spec.Y, Angular: spec.Angular})
}

type colliderMassSpec = prefabs.ColliderMassComponentSpec

func addColliderMass(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[colliderMassSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collider mass spec: %w", err)
	}
	if spec.Mass <= 0 {
		return fmt.Errorf("collider mass must be positive")
	}
	return ecs.Add(w, e, component.ColliderMassComponent.Kind(), &component.ColliderMass{Mass: spec.Mass})
}

type collisionGroupsSpec = prefabs.CollisionGroupsComponentSpec

func addCollisionGroups(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[collisionGroupsSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collision groups spec: %w", err)
	}
	return ecs.Add(w, e, component.CollisionGroupsComponent.Kind(), &component.CollisionGroups{
		Memberships: spec.Memberships,
		Filters:     spec.Filters,
	})
}

type impulseJointSpec = prefabs.ImpulseJointComponentSpec

func addImpulseJoint(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[impulseJointSpec](raw)
	if err != nil {
		return fmt.Errorf("decode impulse joint spec: %w", err)
	}
	parent, err := ctx.resolve(spec.Parent)
	if err != nil {
		return fmt.Errorf("impulse joint parent: %w", err)
	}
	return ecs.Add(w, e, component.ImpulseJointComponent.Kind(), &component.ImpulseJoint{
		Parent:        uint64(parent),
		AnchorParentX: spec.AnchorParent.X,
		AnchorParentY: spec.AnchorParent.Y,
		AnchorChildX:  spec.AnchorChild.X,
		AnchorChildY:  spec.AnchorChild.Y,
	})
}

type thirstSpec = prefabs.ThirstComponentSpec

func addThirst(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[thirstSpec](raw)
	if err != nil {
		return fmt.Errorf("decode thirst spec: %w", err)
	}
	if spec.Thirst < 0 || spec.Thirst > component.MaxThirst {
		return fmt.Errorf("thirst %v outside [0, %v]", spec.Thirst, component.MaxThirst)
	}
	return ecs.Add(w, e, component.ThirstComponent.Kind(), &component.Thirst{Thirst: spec.Thirst, PerSecond: spec.PerSecond})
}

type waterSourceSpec = prefabs.WaterSourceComponentSpec

func addWaterSource(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[waterSourceSpec](raw)
	if err != nil {
		return fmt.Errorf("decode water source spec: %w", err)
	}
	if spec.Capacity < 0 {
		return fmt.Errorf("water source capacity must not be negative")
	}
	return ecs.Add(w, e, component.WaterSourceComponent.Kind(), &component.WaterSource{Capacity: spec.Capacity})
}

type thinkerSpec = prefabs.ThinkerComponentSpec

func addThinker(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[thinkerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode thinker spec: %w", err)
	}
	cfg := component.ThinkerConfig{
		Label:     spec.Label,
		Picker:    spec.Picker,
		Threshold: spec.Threshold,
	}
	for _, c := range spec.Choices {
		if c.Scorer == "" && c.Script == "" {
			return fmt.Errorf("choice needs a scorer or a script")
		}
		cfg.Choices = append(cfg.Choices, component.ChoiceConfig{
			Scorer: c.Scorer,
			Script: c.Script,
			Action: actionConfig(c.Action),
		})
	}
	if spec.Otherwise != nil {
		otherwise := actionConfig(*spec.Otherwise)
		cfg.Otherwise = &otherwise
	}
	return ecs.Add(w, e, component.ThinkerConfigComponent.Kind(), &cfg)
}

func actionConfig(spec prefabs.ActionSpec) component.ActionConfig {
	cfg := component.ActionConfig{
		Kind:      spec.Kind,
		Label:     spec.Label,
		Speed:     spec.Speed,
		PerSecond: spec.PerSecond,
	}
	for _, step := range spec.Steps {
		cfg.Steps = append(cfg.Steps, actionConfig(step))
	}
	return cfg
}

func parseHexColor(v string) (color.Color, error) {
	return prefabs.ParseHexColor(v)
}
