package component

type MoveMode int

const (
	MoveVelocity MoveMode = iota
	MoveTranslate
)

const (
	PlayerMaxSpeed        = 1000.0
	PlayerMaxPullDistance = 100.0
)

type Player struct {
	Speed        float64
	PullDistance float64
	Mode         MoveMode
}

var PlayerComponent = NewComponent[Player]()

// Clamp keeps the tunables inside their editable ranges.
func (p *Player) Clamp() {
	p.Speed = clamp(p.Speed, 0, PlayerMaxSpeed)
	p.PullDistance = clamp(p.PullDistance, 0, PlayerMaxPullDistance)
}

// PlayerPull drives a body through velocity scaled by frame time.
type PlayerPull struct {
	Speed float64
}

var PlayerPullComponent = NewComponent[PlayerPull]()

// WorldCoords holds the cursor position in world space.
type WorldCoords struct {
	X     float64
	Y     float64
	Valid bool
}

var WorldCoordsComponent = NewComponent[WorldCoords]()

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
