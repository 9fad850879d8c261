package entities

import (
	"math"

	log "github.com/sirupsen/logrus"
)

// MobilityState is the drone's movement mode.
type MobilityState int

const (
	// StateOnMission: patrolling the cyclic waypoint path, sensing events.
	StateOnMission MobilityState = iota
	// StateDivertingToDepot: flying straight to the depot to offload.
	StateDivertingToDepot
	// StateReturningToMission: flying back to where the mission was left.
	StateReturningToMission
)

func (s MobilityState) String() string {
	switch s {
	case StateOnMission:
		return "on-mission"
	case StateDivertingToDepot:
		return "diverting-to-depot"
	case StateReturningToMission:
		return "returning-to-mission"
	default:
		return "unknown"
	}
}

// EnergyAction is one of the mutually exclusive energy-consuming actions.
type EnergyAction int

const (
	ActionTransmission EnergyAction = iota
	ActionMove
	ActionHello
)

const (
	energyCostTransmission = 100
	energyCostMovePerSpeed = 100
	energyCostHello        = 10
)

// expiringToleranceSecs is the tolerance window of the proactive
// return-to-depot heuristic.
const expiringToleranceSecs = 5

// Drone patrols a cyclic waypoint path, senses events into a packet buffer,
// and hands routing decisions to its injected strategy.
type Drone struct {
	Entity

	Depot              *Depot
	Path               []Point
	Speed              float64
	SensingRange       float64
	CommunicationRange float64
	BufferMaxSize      int
	TransmissionRate   float64

	ResidualEnergy          float64
	InitialEnergy           float64
	AccumulatedMovingEnergy float64
	AccumulatedHelloEnergy  float64
	AccumulatedSendEnergy   float64

	// TightestEventDeadline is the soonest deadline among buffered packets'
	// events, NaN while the buffer is empty.
	TightestEventDeadline float64
	CurrentWaypoint       int
	DistanceFromDepot     float64

	state             MobilityState
	lastTickDiverting bool
	lastMissionCoords Point

	buffer   []*DataPacket
	strategy RoutingStrategy

	ctx *Context
}

// StrategyFactory builds the routing strategy for a newly constructed drone.
type StrategyFactory func(d *Drone, ctx *Context) RoutingStrategy

// NewDrone creates a drone at the first waypoint of path. Speed, energy and
// transmission rate get a gaussian jitter around the configured values so
// the fleet is not perfectly homogeneous.
func NewDrone(ctx *Context, identifier int, path []Point, depot *Depot, newStrategy StrategyFactory) *Drone {
	d := &Drone{
		Entity:                Entity{ID: identifier, Coords: path[0]},
		Depot:                 depot,
		Path:                  path,
		Speed:                 ctx.DroneSpeed + ctx.RNG.NormFloat64(),
		SensingRange:          ctx.DroneSensingRange,
		CommunicationRange:    ctx.DroneCommRange,
		BufferMaxSize:         ctx.DroneMaxBufferSize,
		TransmissionRate:      2e5 + ctx.RNG.NormFloat64()*1e3,
		TightestEventDeadline: math.NaN(),
		ctx:                   ctx,
	}
	d.ResidualEnergy = ctx.DroneMaxEnergy + ctx.RNG.NormFloat64()*1000
	d.InitialEnergy = d.ResidualEnergy
	if newStrategy != nil {
		d.strategy = newStrategy(d, ctx)
	}
	return d
}

// Strategy returns the injected routing strategy.
func (d *Drone) Strategy() RoutingStrategy {
	return d.strategy
}

// SetStrategy replaces the routing strategy.
func (d *Drone) SetStrategy(s RoutingStrategy) {
	d.strategy = s
}

// State returns the current mobility state.
func (d *Drone) State() MobilityState {
	return d.state
}

// Diverting reports whether the drone is flying to the depot.
func (d *Drone) Diverting() bool {
	return d.state == StateDivertingToDepot
}

// SetDiverting starts or stops a diversion to the depot. Stopping does not
// teleport the drone back: the next Move starts the return leg towards the
// point where the mission was interrupted.
func (d *Drone) SetDiverting(diverting bool) {
	if diverting {
		d.state = StateDivertingToDepot
		return
	}
	if d.state == StateDivertingToDepot {
		d.state = StateOnMission
	}
}

// LastMissionCoords returns where the mission was interrupted by the last
// diversion.
func (d *Drone) LastMissionCoords() Point {
	return d.lastMissionCoords
}

// UpdatePackets drops the expired packets from the buffer, recomputes the
// tightest deadline among the retained ones, and broadcasts a negative
// outcome for every dropped packet. An emptied buffer cancels a pending
// diversion.
func (d *Drone) UpdatePackets(step int) {
	retained := make([]*DataPacket, 0, len(d.buffer))
	d.TightestEventDeadline = math.NaN()

	for _, pck := range d.buffer {
		if !pck.Expired(step) {
			retained = append(retained, pck)
			d.TightestEventDeadline = nanMin(d.TightestEventDeadline, float64(pck.EventRef.Deadline))
			continue
		}
		d.ctx.BroadcastFeedback(FeedbackSignal{
			Source:  d,
			EventID: pck.EventRef.ID,
			Delay:   float64(d.ctx.EventDuration),
			Outcome: OutcomeExpired,
			Reward:  -100,
		})
	}
	d.buffer = retained

	if d.BufferLength() == 0 {
		d.SetDiverting(false)
	}
}

// PacketIsExpiring reports whether a buffered packet is close enough to its
// deadline that the drone should head to the depot now: the travel time at
// current speed falls inside the tolerance window before the tightest
// deadline. Advisory only; the caller decides whether to divert.
func (d *Drone) PacketIsExpiring(step int) bool {
	timeToDepot := d.DistanceFromDepot / d.Speed
	eventTimeToDead := (d.TightestEventDeadline - float64(step)) * d.ctx.TickDuration
	return eventTimeToDead-expiringToleranceSecs < timeToDepot && timeToDepot <= eventTimeToDead
}

// NextMoveToMissionPoint returns the position the drone would occupy after
// one step of mission movement, without moving it.
func (d *Drone) NextMoveToMissionPoint() Point {
	currentWaypoint := d.CurrentWaypoint
	if currentWaypoint >= len(d.Path)-1 {
		currentWaypoint = -1
	}

	// waypoint the drone is leaving from, wrapping like the path does
	from := d.Path[(currentWaypoint+len(d.Path))%len(d.Path)]

	p0 := d.Coords
	p1 := d.Path[currentWaypoint+1]
	allDistance := Distance(p0, p1)
	distance := d.ctx.TickDuration * d.Speed
	if allDistance == 0 || distance == 0 {
		return from
	}

	t := distance / allDistance
	if t >= 1 {
		return from
	}
	if t <= 0 {
		log.WithFields(log.Fields{"drone": d.ID, "ratio": t}).Fatal("negative interpolation fraction")
	}
	return lerp(p0, p1, t)
}

// FeelEvent senses a new event at the drone's position and buffers its
// packet. While the drone is diverting or returning the event is missed and
// only recorded in the metrics.
func (d *Drone) FeelEvent(step int) {
	ev := NewEvent(d.ctx, d.Coords, step)
	pck := ev.AsPacket(step, d)
	if d.state == StateOnMission {
		d.buffer = append(d.buffer, pck)
		d.ctx.Metrics.IncDataPackets()
	} else {
		d.ctx.Metrics.AddMissedEvent(ev.ID)
	}
}

// AcceptPackets buffers packets handed over by another drone, skipping any
// whose event is already represented in the buffer. Two distinct packets
// about the same event are duplicates. Returns the packets actually kept.
func (d *Drone) AcceptPackets(packets []*DataPacket) []*DataPacket {
	accepted := make([]*DataPacket, 0, len(packets))
	for _, pck := range packets {
		if d.KnownPacket(pck) {
			continue
		}
		d.buffer = append(d.buffer, pck)
		accepted = append(accepted, pck)
	}
	return accepted
}

// KnownPacket reports whether the buffer already holds a packet referring
// to the same event.
func (d *Drone) KnownPacket(packet *DataPacket) bool {
	for _, pck := range d.buffer {
		if pck.EventRef.Equal(&packet.EventRef.Entity) {
			return true
		}
	}
	return false
}

// Routing refreshes the distance to the depot and delegates the step's
// routing decision to the strategy.
func (d *Drone) Routing(drones []*Drone, depot *Depot, step int) {
	d.DistanceFromDepot = Distance(d.Depot.Coords, d.Coords)
	d.strategy.Routing(depot, drones, step)
}

// ConsumeEnergy decrements the residual energy for one action and adds the
// cost to the matching running total. Residual energy is not clamped and
// nothing happens when it goes negative; callers inspect it.
func (d *Drone) ConsumeEnergy(action EnergyAction) {
	switch action {
	case ActionTransmission:
		d.ResidualEnergy -= energyCostTransmission
		d.AccumulatedSendEnergy += energyCostTransmission
	case ActionMove:
		cost := d.Speed * energyCostMovePerSpeed
		d.ResidualEnergy -= cost
		d.AccumulatedMovingEnergy += cost
	case ActionHello:
		d.ResidualEnergy -= energyCostHello
		d.AccumulatedHelloEnergy += energyCostHello
	}
}

// Move advances the drone by one tick: towards the depot while diverting,
// back to the interrupted mission point after a diversion ends, along the
// patrol path otherwise.
func (d *Drone) Move(tickDuration float64) {
	if d.state != StateOnMission {
		d.ctx.Metrics.IncTimeOnActiveRouting()
	}

	if d.state == StateDivertingToDepot {
		if !d.lastTickDiverting {
			// first diversion tick, remember where to resume the mission
			d.lastMissionCoords = d.Coords
		}
		d.moveToDepot(tickDuration)
	} else {
		if d.lastTickDiverting {
			d.state = StateReturningToMission
		}
		d.moveToMission(tickDuration)
		d.ctx.Metrics.IncTimeOnMission()
	}

	d.lastTickDiverting = d.state == StateDivertingToDepot

	d.ConsumeEnergy(ActionMove)
}

// IsFull reports whether the buffer reached its configured size. Intake
// never refuses on capacity; strategies query this to throttle transfers.
func (d *Drone) IsFull() bool {
	return d.BufferLength() == d.BufferMaxSize
}

// EmptyBuffer drops every buffered packet.
func (d *Drone) EmptyBuffer() {
	d.buffer = nil
}

// AllPackets returns the buffered packets.
func (d *Drone) AllPackets() []*DataPacket {
	return d.buffer
}

// BufferLength returns the number of buffered packets.
func (d *Drone) BufferLength() int {
	return len(d.buffer)
}

// RemovePackets drops the given packets from the buffer, by packet identity.
func (d *Drone) RemovePackets(packets []*DataPacket) {
	for _, packet := range packets {
		for i, pck := range d.buffer {
			if pck.Equal(&packet.Entity) {
				d.buffer = append(d.buffer[:i], d.buffer[i+1:]...)
				log.WithFields(log.Fields{"drone": d.ID, "packet": packet.ID}).Debug("removed packet")
				break
			}
		}
	}
}

// NextTarget returns the point the drone is currently heading to.
func (d *Drone) NextTarget() Point {
	switch d.state {
	case StateDivertingToDepot:
		return d.Depot.Coords
	case StateReturningToMission:
		return d.lastMissionCoords
	default:
		if d.CurrentWaypoint >= len(d.Path)-1 { // end of the path, wrap
			return d.Path[0]
		}
		return d.Path[d.CurrentWaypoint+1]
	}
}

func (d *Drone) moveToMission(tickDuration float64) {
	if d.CurrentWaypoint >= len(d.Path)-1 {
		d.CurrentWaypoint = -1
	}

	p0 := d.Coords
	var p1 Point
	if d.state == StateReturningToMission {
		p1 = d.lastMissionCoords
	} else {
		p1 = d.Path[d.CurrentWaypoint+1]
	}

	allDistance := Distance(p0, p1)
	distance := tickDuration * d.Speed
	if allDistance == 0 || distance == 0 {
		d.arriveAt(p1)
		return
	}

	t := distance / allDistance
	switch {
	case t >= 1:
		// would overshoot the target this tick, snap to it
		d.arriveAt(p1)
	case t <= 0:
		log.WithFields(log.Fields{"drone": d.ID, "ratio": t}).Fatal("negative interpolation fraction")
	default:
		d.Coords = lerp(p0, p1, t)
	}
}

func (d *Drone) arriveAt(p1 Point) {
	if d.state == StateReturningToMission {
		// mission resumed exactly where it was interrupted, same waypoint leg
		d.state = StateOnMission
		d.Coords = p1
		return
	}
	d.CurrentWaypoint++
	d.Coords = d.Path[d.CurrentWaypoint]
}

func (d *Drone) moveToDepot(tickDuration float64) {
	p0 := d.Coords
	p1 := d.Depot.Coords

	allDistance := Distance(p0, p1)
	if allDistance == 0 {
		d.state = StateOnMission
		return
	}

	t := tickDuration * d.Speed / allDistance
	switch {
	case t >= 1:
		// would surpass the depot this tick, snap to it
		d.Coords = p1
	case t <= 0:
		log.WithFields(log.Fields{"drone": d.ID, "ratio": t}).Fatal("negative interpolation fraction")
	default:
		d.Coords = lerp(p0, p1, t)
	}
}
