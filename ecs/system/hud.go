package system

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
	"golang.org/x/image/font/basicfont"
)

const hudLineSpacing = 16

var hudFace text.Face = text.NewGoXFace(basicfont.Face7x13)

// DrawHUD prints the app state, frame rate, cursor coordinates, the last
// event and any thinker status in the top left corner.
func DrawHUD(w *ecs.World, screen *ebiten.Image, state, lastEvent string) {
	if w == nil || screen == nil {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "State: %s  FPS: %.1f  TPS: %.1f\n", state, ebiten.ActualFPS(), ebiten.ActualTPS())
	if e, ok := w.First(component.WorldCoordsComponent.Kind()); ok {
		if wc, ok := ecs.Get(w, e, component.WorldCoordsComponent.Kind()); ok && wc.Valid {
			fmt.Fprintf(&b, "Cursor: %s (C to copy)\n", FormatCoords(wc.X, wc.Y))
		}
	}
	if lastEvent != "" {
		fmt.Fprintf(&b, "Last event: %s\n", lastEvent)
	}
	ecs.ForEach(w, component.AIStatusComponent.Kind(), func(e ecs.Entity, st *component.AIStatus) {
		fmt.Fprintf(&b, "AI %s: %s %s %s", e, st.Choice, st.Action, st.State)
		if t, ok := ecs.Get(w, e, component.ThirstComponent.Kind()); ok {
			fmt.Fprintf(&b, " thirst=%.1f", t.Thirst)
		}
		b.WriteString("\n")
	})

	op := &text.DrawOptions{}
	op.GeoM.Translate(10, 10)
	op.ColorScale.ScaleWithColor(color.White)
	op.LineSpacing = hudLineSpacing
	text.Draw(screen, b.String(), hudFace, op)
}
