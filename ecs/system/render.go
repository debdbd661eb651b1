package system

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/tanks/common"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
)

// RenderSystem draws vector shapes through the camera, ordered by global Z.
type RenderSystem struct {
	white    *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	if r.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}

	view := CameraView(w)
	entities := w.Query(component.ShapeComponent.Kind(), component.GlobalTransformComponent.Kind())
	SortByZ(w, entities)

	for _, e := range entities {
		s, ok := ecs.Get(w, e, component.ShapeComponent.Kind())
		if !ok {
			continue
		}
		g, ok := ecs.Get(w, e, component.GlobalTransformComponent.Kind())
		if !ok {
			continue
		}
		switch s.Kind {
		case component.ShapeMesh:
			r.drawMesh(screen, view, s, g)
		default:
			r.drawPath(screen, view, s, g)
		}
	}

	DrawLines(w, view, screen)
}

// SortByZ orders entities back to front by GlobalTransform.Z, then by id.
func SortByZ(w *ecs.World, entities []ecs.Entity) {
	z := func(e ecs.Entity) float64 {
		if g, ok := ecs.Get(w, e, component.GlobalTransformComponent.Kind()); ok {
			return g.Z
		}
		return 0
	}
	sort.SliceStable(entities, func(i, j int) bool {
		zi, zj := z(entities[i]), z(entities[j])
		if zi != zj {
			return zi < zj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})
}

// toScreen maps a point in the shape's local space to the screen.
func toScreen(view View, g *component.GlobalTransform, x, y float64) (float32, float32) {
	rx, ry := common.Rotate(x*scaleOr1(g.ScaleX), y*scaleOr1(g.ScaleY), g.Rotation)
	sx, sy := view.ToScreen(g.X+rx, g.Y+ry)
	return float32(sx), float32(sy)
}

func (r *RenderSystem) drawPath(screen *ebiten.Image, view View, s *component.Shape, g *component.GlobalTransform) {
	var path vector.Path
	switch s.Kind {
	case component.ShapeCircle:
		if s.Radius <= 0 {
			return
		}
		cx, cy := toScreen(view, g, 0, 0)
		radius := float32(s.Radius * math.Abs(scaleOr1(g.ScaleX)) * view.Zoom)
		path.Arc(cx, cy, radius, 0, 2*math.Pi, vector.Clockwise)
		path.Close()
	case component.ShapePolygon:
		if len(s.Points) < 2 {
			return
		}
		for i, p := range s.Points {
			x, y := toScreen(view, g, p.X, p.Y)
			if i == 0 {
				path.MoveTo(x, y)
				continue
			}
			path.LineTo(x, y)
		}
		if s.Closed {
			path.Close()
		}
	default:
		return
	}

	if s.Fill != nil && (s.Kind == component.ShapeCircle || s.Closed) {
		r.vertices, r.indices = path.AppendVerticesAndIndicesForFilling(r.vertices[:0], r.indices[:0])
		r.drawTriangles(screen, s.Fill)
	}
	if s.Stroke != nil && s.StrokeWidth > 0 {
		r.vertices, r.indices = path.AppendVerticesAndIndicesForStroke(r.vertices[:0], r.indices[:0], &vector.StrokeOptions{
			Width:    float32(s.StrokeWidth * view.Zoom),
			LineJoin: vector.LineJoinRound,
		})
		r.drawTriangles(screen, s.Stroke)
	}
}

func (r *RenderSystem) drawMesh(screen *ebiten.Image, view View, s *component.Shape, g *component.GlobalTransform) {
	if len(s.Points) < 3 || len(s.Indices) < 3 {
		return
	}
	r.vertices = r.vertices[:0]
	for _, p := range s.Points {
		x, y := toScreen(view, g, p.X, p.Y)
		r.vertices = append(r.vertices, ebiten.Vertex{DstX: x, DstY: y, SrcX: 1, SrcY: 1})
	}
	r.indices = append(r.indices[:0], s.Indices...)
	fill := s.Fill
	if fill == nil {
		fill = color.White
	}
	r.drawTriangles(screen, fill)
}

func (r *RenderSystem) drawTriangles(screen *ebiten.Image, c color.Color) {
	if len(r.indices) == 0 {
		return
	}
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	for i := range r.vertices {
		r.vertices[i].SrcX = 1
		r.vertices[i].SrcY = 1
		r.vertices[i].ColorR = float32(nc.R) / 0xff
		r.vertices[i].ColorG = float32(nc.G) / 0xff
		r.vertices[i].ColorB = float32(nc.B) / 0xff
		r.vertices[i].ColorA = float32(nc.A) / 0xff
	}
	screen.DrawTriangles(r.vertices, r.indices, r.white, &ebiten.DrawTrianglesOptions{
		FillRule:  ebiten.FillRuleNonZero,
		AntiAlias: true,
	})
}
