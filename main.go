package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tanks/common"
	"github.com/pkg/profile"
	"golang.design/x/clipboard"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	sceneName := flag.String("scene", "game", "scene in prefabs/ (game, thirst, controller, physics)")
	hot := flag.Bool("hot", false, "reload the scene when prefabs on disk change")
	inspect := flag.Bool("inspect", false, "show the ImGui inspector")
	profileMode := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	diag := flag.Bool("diag", false, "log fps and frame time once per second")
	seed := flag.Int64("seed", 0, "enemy spawn seed (0 uses the clock)")
	flag.Parse()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Fatalf("unknown -profile %q (want cpu or mem)", *profileMode)
	}

	var copyText func(string)
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		copyText = func(s string) {
			clipboard.Write(clipboard.FmtText, []byte(s))
		}
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("tanks")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(GameOptions{
		Scene:       *sceneName,
		Debug:       *debug,
		HotReload:   *hot,
		Inspect:     *inspect,
		Diagnostics: *diag,
		Seed:        *seed,
		CopyText:    copyText,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
