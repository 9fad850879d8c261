package entities

import "math/rand"

// MetricsRecorder is the write-only metrics surface the entity layer needs.
// The full aggregation lives outside this package.
type MetricsRecorder interface {
	AddGeneratedEvent(eventID int)
	AddCreatedPacket(packetID int)
	IncDataPackets()
	AddMissedEvent(eventID int)
	IncTimeOnMission()
	IncTimeOnActiveRouting()
	AddDeliveredPacket(packetID int, step int)
}

// Params are the configuration-derived knobs the entity layer reads.
type Params struct {
	TickDuration  float64 // simulated seconds between two steps
	EventDuration int     // default event lifetime, in steps
	PacketsMaxTTL int
	PacketSize    float64 // mean packet size, bytes

	DroneSpeed         float64
	DroneSensingRange  float64
	DroneCommRange     float64
	DroneMaxBufferSize int
	DroneMaxEnergy     float64

	DepotCoords Point
}

// Context is the world handle shared by every entity in a run. It owns id
// allocation, the run RNG, the metrics sink, the drone registry, and the
// feedback fan-out. Every constructor takes one; nothing reaches for
// ambient state.
type Context struct {
	Params

	RNG     *rand.Rand
	Metrics MetricsRecorder

	ids    IDAllocator
	drones []*Drone
}

// NewContext builds a context for one simulation run.
func NewContext(params Params, rng *rand.Rand, metrics MetricsRecorder) *Context {
	return &Context{
		Params:  params,
		RNG:     rng,
		Metrics: metrics,
	}
}

// NextID allocates a unique entity id.
func (c *Context) NextID() int {
	return c.ids.NextID()
}

// RegisterDrones records the fleet so outcome feedback can reach every
// drone's strategy. Call once after the fleet is built.
func (c *Context) RegisterDrones(drones []*Drone) {
	c.drones = drones
}

// Drones returns the registered fleet, in registration order.
func (c *Context) Drones() []*Drone {
	return c.drones
}

// Outcome tells a strategy how a packet ended up.
type Outcome int

const (
	OutcomeExpired   Outcome = -1
	OutcomeDelivered Outcome = 1
)

// FeedbackSignal carries a packet outcome to the routing strategies.
type FeedbackSignal struct {
	Source  *Drone // drone that held the packet when the outcome happened
	EventID int
	Delay   float64
	Outcome Outcome
	Reward  float64
}

// BroadcastFeedback fans a packet outcome out to every registered drone's
// strategy, in registration order, skipping strategies that do not consume
// feedback. The iteration is synchronous; a caller parallelizing drones
// must treat it as a barrier.
func (c *Context) BroadcastFeedback(sig FeedbackSignal) {
	for _, d := range c.drones {
		strategy := d.Strategy()
		if strategy == nil || !strategy.ConsumesFeedback() {
			continue
		}
		strategy.Feedback(sig)
	}
}
