package entities

// RoutingStrategy decides, once per step, what a drone does with its
// buffered packets: relay them to a neighbour, hold them, or divert the
// drone to the depot. Implementations live outside this package and are
// injected per drone at construction.
type RoutingStrategy interface {
	// Name is the configuration tag of the strategy family ("GEO", ...).
	Name() string

	// Routing runs one step of the strategy for its drone. It may mutate
	// any drone's buffer and mobility flags.
	Routing(depot *Depot, drones []*Drone, step int)

	// ConsumesFeedback reports whether the strategy adapts to packet
	// outcomes. Feedback is never delivered to strategies returning false.
	ConsumesFeedback() bool

	// Feedback delivers a packet outcome. Only called when
	// ConsumesFeedback is true.
	Feedback(sig FeedbackSignal)
}
