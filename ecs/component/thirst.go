package component

const MaxThirst = 100.0

type Thirst struct {
	Thirst    float64
	PerSecond float64
}

var ThirstComponent = NewComponent[Thirst]()

// WaterSource is drunk from until Capacity reaches zero. Its shape radius
// tracks the capacity.
type WaterSource struct {
	Capacity float64
}

var WaterSourceComponent = NewComponent[WaterSource]()
