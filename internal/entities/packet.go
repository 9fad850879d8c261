package entities

// packetSizeStd is the fixed spread of the sampled packet size.
const packetSizeStd = 20

// Packet is a unit of routed data created out of an event. Every packet
// references exactly one event; packets not backed by a sensed event hold a
// placeholder one.
type Packet struct {
	Entity

	TimeStepCreation       int
	EventRef               *Event
	MaxTTL                 int
	RetransmissionAttempts int
	AccumulatedDelay       float64
	Size                   float64
	OptionalData           any

	// TimeDelivery is the step the depot received the packet, -1 until then.
	TimeDelivery int

	// MovePacket marks a packet that was delivered by diverting the drone.
	MovePacket bool

	ttl         int
	lastTwoHops []*Drone

	ctx *Context
}

func newPacket(ctx *Context, timeStepCreation int, eventRef *Event) Packet {
	registered := eventRef != nil
	if eventRef == nil {
		eventRef = newPlaceholderEvent(ctx)
	}
	p := Packet{
		Entity:           Entity{ID: ctx.NextID(), Coords: eventRef.Coords},
		TimeStepCreation: timeStepCreation,
		EventRef:         eventRef,
		MaxTTL:           ctx.PacketsMaxTTL,
		Size:             ctx.PacketSize + ctx.RNG.NormFloat64()*packetSizeStd,
		TimeDelivery:     -1,
		ttl:              -1,
		ctx:              ctx,
	}
	if registered {
		ctx.Metrics.AddCreatedPacket(p.ID)
	}
	return p
}

// AddHop records the drone as the newest hop, keeping only the last two,
// and increments the TTL. Every packet gets its origin drone added here at
// creation, so a packet that has left its origin has TTL >= 0.
func (p *Packet) AddHop(drone *Drone) {
	if len(p.lastTwoHops) == 2 {
		p.lastTwoHops = p.lastTwoHops[1:]
	}
	p.lastTwoHops = append(p.lastTwoHops, drone)
	p.ttl++
}

// TTL returns the number of hops the packet has crossed.
func (p *Packet) TTL() int {
	return p.ttl
}

// LastHops returns the sliding window of the last two hops, oldest first.
func (p *Packet) LastHops() []*Drone {
	return p.lastTwoHops
}

// DecreaseDeadline tightens the owned event's deadline under accumulated
// queuing delay. The mutation is local to this packet's own event copy.
func (p *Packet) DecreaseDeadline(delay float64) {
	p.EventRef.Deadline -= int(delay/p.ctx.TickDuration) + 1
}

// Expired reports whether the packet's event deadline has passed. MaxTTL is
// tracked but is not an expiry trigger here; strategies consult it.
func (p *Packet) Expired(step int) bool {
	return step > p.EventRef.Deadline
}

// IncreaseTransmissionAttempt counts one more retransmission.
func (p *Packet) IncreaseTransmissionAttempt() {
	p.RetransmissionAttempts++
}

// AddDelay accumulates forwarding delay.
func (p *Packet) AddDelay(delay float64) {
	p.AccumulatedDelay += delay
}

// Delay returns the accumulated forwarding delay.
func (p *Packet) Delay() float64 {
	return p.AccumulatedDelay
}

// Age returns how many steps the packet has existed for.
func (p *Packet) Age(step int) int {
	return step - p.TimeStepCreation
}

// DistanceFromDepot returns the distance between the packet's event and the
// depot.
func (p *Packet) DistanceFromDepot() float64 {
	return Distance(p.ctx.DepotCoords, p.Coords)
}

// AppendOptionalData attaches strategy-specific data to share with
// neighbour drones.
func (p *Packet) AppendOptionalData(data any) {
	p.OptionalData = data
}

// PacketJSON is the external projection of a packet for logs and rendering.
type PacketJSON struct {
	Coord   [2]float64 `json:"coord"`
	IGen    int        `json:"i_gen"`
	IDead   int        `json:"i_dead"`
	ID      int        `json:"id"`
	TTL     int        `json:"TTL"`
	IDEvent int        `json:"id_event"`
}

// JSON returns the external projection of the packet.
func (p *Packet) JSON() PacketJSON {
	return PacketJSON{
		Coord:   [2]float64{p.Coords.X, p.Coords.Y},
		IGen:    p.TimeStepCreation,
		IDead:   p.EventRef.Deadline,
		ID:      p.ID,
		TTL:     p.ttl,
		IDEvent: p.EventRef.ID,
	}
}

// DataPacket carries one sensed event towards the depot.
type DataPacket struct {
	Packet
}

// NewDataPacket creates a data packet for the given event. A nil event
// yields a placeholder-backed packet that is not counted in metrics.
func NewDataPacket(ctx *Context, timeStepCreation int, eventRef *Event) *DataPacket {
	return &DataPacket{Packet: newPacket(ctx, timeStepCreation, eventRef)}
}

// AckPacket acknowledges the reception of another packet.
type AckPacket struct {
	Packet

	SrcDrone    *Drone
	DstDrone    *Drone
	AckedPacket *Packet
}

// NewAckPacket creates an acknowledgement from src to dst for ackedPacket.
func NewAckPacket(ctx *Context, srcDrone, dstDrone *Drone, ackedPacket *Packet, timeStepCreation int) *AckPacket {
	return &AckPacket{
		Packet:      newPacket(ctx, timeStepCreation, nil),
		SrcDrone:    srcDrone,
		DstDrone:    dstDrone,
		AckedPacket: ackedPacket,
	}
}

// HelloPacket is the beacon a drone broadcasts to inform its neighbourhood.
type HelloPacket struct {
	Packet

	SrcDrone     *Drone
	CurPos       Point
	Speed        float64
	NextTarget   Point
	Energy       float64
	QueueDelay   float64
	LearningRate float64
}

// NewHelloPacket creates a beacon describing the sending drone.
func NewHelloPacket(ctx *Context, srcDrone *Drone, timeStepCreation int, curPos Point, speed float64, nextTarget Point, energy, queueDelay, learningRate float64) *HelloPacket {
	return &HelloPacket{
		Packet:       newPacket(ctx, timeStepCreation, nil),
		SrcDrone:     srcDrone,
		CurPos:       curPos,
		Speed:        speed,
		NextTarget:   nextTarget,
		Energy:       energy,
		QueueDelay:   queueDelay,
		LearningRate: learningRate,
	}
}
