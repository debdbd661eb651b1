package component

// TTL destroys its entity once Seconds has run out. An entity created with
// zero seconds is still drawn for one frame.
type TTL struct {
	Seconds float64
}

var TTLComponent = NewComponent[TTL]()
