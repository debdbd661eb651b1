// Command scenecheck builds prefab scenes into throwaway worlds and reports
// what each one spawned. It exits non-zero when any scene fails to build.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"sort"

	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
	"github.com/milk9111/tanks/ecs/entity"
	"github.com/milk9111/tanks/prefabs"
)

type report struct {
	Scene    string
	Entities int
	Prefabs  map[string]int
	Err      error
}

func checkScene(name string, seed int64) report {
	r := report{Scene: name, Prefabs: make(map[string]int)}
	w := ecs.NewWorld()
	if _, err := entity.BuildScene(w, name, rand.New(rand.NewSource(seed))); err != nil {
		r.Err = err
		return r
	}
	for _, e := range ecs.Entities(w) {
		r.Entities++
		if n, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok {
			r.Prefabs[n.Value]++
		}
	}
	return r
}

func writeReport(out io.Writer, r report) {
	if r.Err != nil {
		fmt.Fprintf(out, "%s: FAIL %v\n", r.Scene, r.Err)
		return
	}
	fmt.Fprintf(out, "%s: ok, %d entities\n", r.Scene, r.Entities)
	names := make([]string, 0, len(r.Prefabs))
	for name := range r.Prefabs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %-20s %d\n", name, r.Prefabs[name])
	}
}

func run(out io.Writer, scenes []string, seed int64) int {
	if len(scenes) == 0 {
		scenes = prefabs.Scenes()
	}
	failed := 0
	for _, name := range scenes {
		r := checkScene(name, seed)
		writeReport(out, r)
		if r.Err != nil {
			failed++
		}
	}
	return failed
}

func main() {
	seed := flag.Int64("seed", 1, "enemy spawn seed")
	flag.Parse()

	if failed := run(os.Stdout, flag.Args(), *seed); failed > 0 {
		log.Printf("%d scene(s) failed", failed)
		os.Exit(1)
	}
}
