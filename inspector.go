package main

import (
	"fmt"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
)

// Inspector is an ImGui window for tuning players and thirst while the game
// runs.
type Inspector struct {
	backend *ebitenbackend.EbitenBackend
}

func NewInspector(title string, width, height int) *Inspector {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &Inspector{backend: backend}
}

// Update builds the inspector frame for w. It must run once per game update.
func (in *Inspector) Update(w *ecs.World, state AppState) {
	in.backend.BeginFrame()
	defer in.backend.EndFrame()

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 120), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 300), imgui.CondOnce)
	if !imgui.BeginV("Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	imgui.Text(fmt.Sprintf("State: %s", state))
	imgui.Text(fmt.Sprintf("Entities: %d", len(ecs.Entities(w))))
	imgui.Separator()

	ecs.ForEach(w, component.PlayerComponent.Kind(), func(e ecs.Entity, p *component.Player) {
		if !imgui.TreeNodeStr(fmt.Sprintf("Player %s", e)) {
			return
		}
		speed := float32(p.Speed)
		if imgui.SliderFloat(fmt.Sprintf("speed##%s", e), &speed, 0, component.PlayerMaxSpeed) {
			p.Speed = float64(speed)
		}
		pull := float32(p.PullDistance)
		if imgui.SliderFloat(fmt.Sprintf("pull distance##%s", e), &pull, 0, component.PlayerMaxPullDistance) {
			p.PullDistance = float64(pull)
		}
		translate := p.Mode == component.MoveTranslate
		if imgui.Checkbox(fmt.Sprintf("translate##%s", e), &translate) {
			p.Mode = component.MoveVelocity
			if translate {
				p.Mode = component.MoveTranslate
			}
		}
		p.Clamp()
		imgui.TreePop()
	})

	ecs.ForEach(w, component.ThirstComponent.Kind(), func(e ecs.Entity, t *component.Thirst) {
		if !imgui.TreeNodeStr(fmt.Sprintf("Thirst %s", e)) {
			return
		}
		thirst := float32(t.Thirst)
		if imgui.SliderFloat(fmt.Sprintf("thirst##%s", e), &thirst, 0, component.MaxThirst) {
			t.Thirst = float64(thirst)
		}
		perSecond := float32(t.PerSecond)
		if imgui.InputFloat(fmt.Sprintf("per second##%s", e), &perSecond) {
			t.PerSecond = float64(perSecond)
		}
		if st, ok := ecs.Get(w, e, component.AIStatusComponent.Kind()); ok {
			imgui.Text(fmt.Sprintf("%s %s %s", st.Choice, st.Action, st.State))
		}
		imgui.TreePop()
	})
}

func (in *Inspector) Draw(screen *ebiten.Image) {
	in.backend.Draw(screen)
}

func (in *Inspector) Layout(width, height int) {
	in.backend.Layout(width, height)
}
