package system

import (
	"fmt"
	"log"

	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
)

// CursorSystem keeps WorldCoords on the cursor and copies it with the copy
// key.
type CursorSystem struct {
	copyText func(string)
}

// NewCursorSystem takes the clipboard writer; nil disables copying.
func NewCursorSystem(copyText func(string)) *CursorSystem {
	return &CursorSystem{copyText: copyText}
}

func (s *CursorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	x, y, ok := CursorWorld(w)
	in := CurrentInput(w)

	ecs.ForEach(w, component.WorldCoordsComponent.Kind(), func(_ ecs.Entity, wc *component.WorldCoords) {
		if ok {
			wc.X, wc.Y, wc.Valid = x, y, true
		}
		if in.CopyPressed && wc.Valid && s.copyText != nil {
			text := FormatCoords(wc.X, wc.Y)
			s.copyText(text)
			log.Printf("cursor: copied %s", text)
		}
	})
}

func FormatCoords(x, y float64) string {
	return fmt.Sprintf("%.2f, %.2f", x, y)
}
