package system

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tanks/ecs"
)

// DiagnosticsSystem logs frame timing once per interval.
type DiagnosticsSystem struct {
	Interval float64

	elapsed float64
	frames  int
}

func NewDiagnosticsSystem() *DiagnosticsSystem {
	return &DiagnosticsSystem{Interval: 1}
}

func (d *DiagnosticsSystem) Update(w *ecs.World) {
	if d == nil || w == nil {
		return
	}
	d.elapsed += w.Time().Delta
	d.frames++
	if d.elapsed < d.Interval || d.frames == 0 {
		return
	}
	frameTime := d.elapsed / float64(d.frames) * 1000
	log.Printf("diagnostics: fps=%.1f tps=%.1f frame_time=%.2fms entities=%d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), frameTime, len(ecs.Entities(w)))
	d.elapsed = 0
	d.frames = 0
}
