package main

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/tanks/common"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/entity"
	"github.com/milk9111/tanks/ecs/system"
	"github.com/milk9111/tanks/prefabs"
)

var defaultBackground = color.RGBA{R: 0x20, G: 0x22, B: 0x28, A: 0xff}

type GameOptions struct {
	Scene       string
	Debug       bool
	HotReload   bool
	Inspect     bool
	Diagnostics bool
	Seed        int64
	CopyText    func(string)
}

type Game struct {
	opts GameOptions

	world     *ecs.World
	scheduler *ecs.Scheduler
	scene     *entity.Scene
	rng       *rand.Rand

	physics *system.PhysicsSystem
	render  *system.RenderSystem
	events  *system.EventLogSystem

	state     *AppStateMachine
	menu      *ebitenui.UI
	inspector *Inspector
	watcher   *prefabs.Watcher

	quit bool
}

func NewGame(opts GameOptions) (*Game, error) {
	if opts.Scene == "" {
		opts.Scene = "game"
	}

	g := &Game{
		opts:    opts,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		physics: system.NewPhysicsSystem(),
		render:  system.NewRenderSystem(),
	}
	g.state = NewAppStateMachine(nil)
	g.menu = NewMenuUI(func() {
		g.state.Set(StateGame)
	}, func() {
		g.quit = true
	})

	if err := g.loadScene(); err != nil {
		return nil, err
	}

	if opts.HotReload {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Printf("prefabs: hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	if opts.Inspect {
		g.inspector = NewInspector("tanks inspector", common.BaseWidth, common.BaseHeight)
	}

	return g, nil
}

// loadScene builds a fresh world and system schedule for the current scene.
func (g *Game) loadScene() error {
	w := ecs.NewWorld()
	scene, err := entity.BuildScene(w, g.opts.Scene, g.rng)
	if err != nil {
		return fmt.Errorf("game: load scene %q: %w", g.opts.Scene, err)
	}
	g.physics.Reset()

	aiSystem := system.NewAISystem()
	aiSystem.Debug = g.opts.Debug

	var diag ecs.System
	if g.opts.Diagnostics {
		diag = system.NewDiagnosticsSystem()
	}

	g.events = system.NewEventLogSystem()
	g.world = w
	g.scene = scene
	g.scheduler = ecs.NewScheduler(
		system.NewTTLSystem(),
		system.NewInputSystem(),
		system.NewPanCamSystem(),
		system.NewCursorSystem(g.opts.CopyText),
		system.NewThirstSystem(),
		aiSystem,
		system.NewPlayerMovementSystem(),
		system.NewRaycastSystem(g.physics),
		g.physics,
		system.NewLookAtSystem(),
		system.NewHierarchySystem(),
		g.events,
		diag,
	)
	return nil
}

func (g *Game) reload() {
	changed := g.watcher.Poll()
	if len(changed) == 0 {
		return
	}
	log.Printf("prefabs: reloading scene %q after %d change(s)", g.opts.Scene, len(changed))

	// A failed build leaves the last good scene running.
	if err := g.loadScene(); err != nil {
		log.Printf("prefabs: reload failed: %v", err)
	}
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) Update() error {
	if g.quit || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.state.HandleKeys(inpututil.IsKeyJustPressed(ebiten.KeyM), inpututil.IsKeyJustPressed(ebiten.KeyG))
	if g.state.State() == StateMainMenu {
		g.menu.Update()
	}

	if g.watcher != nil {
		g.reload()
	}

	g.world.Advance(1.0 / common.TPS)
	g.scheduler.Update(g.world)

	if g.inspector != nil {
		g.inspector.Update(g.world, g.state.State())
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	var bg color.Color = defaultBackground
	if g.scene != nil && g.scene.Background != nil {
		bg = g.scene.Background
	}
	screen.Fill(bg)

	g.render.Draw(g.world, screen)
	if g.opts.Debug {
		system.DrawPhysicsDebug(g.physics.Space(), system.CameraView(g.world), screen)
	}

	system.DrawHUD(g.world, screen, g.state.State().String(), g.events.Last())

	if g.state.State() == StateMainMenu {
		g.menu.Draw(screen)
	}
	if g.inspector != nil {
		g.inspector.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	if g.inspector != nil {
		g.inspector.Layout(common.BaseWidth, common.BaseHeight)
	}
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
