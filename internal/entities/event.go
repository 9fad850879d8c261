package entities

// Event is a sensed occurrence on the area of interest. Its deadline is the
// estimate of when the event stops being interesting to monitor.
type Event struct {
	Entity

	GenTime  int // step the event was sensed at
	Deadline int

	ctx *Context
}

// NewEvent creates an event with the default deadline GenTime+EventDuration
// and registers it in the generated-events metrics.
func NewEvent(ctx *Context, coords Point, currentTime int) *Event {
	return newEvent(ctx, coords, currentTime, currentTime+ctx.EventDuration)
}

// NewEventWithDeadline creates an event with an explicit deadline.
func NewEventWithDeadline(ctx *Context, coords Point, currentTime, deadline int) *Event {
	return newEvent(ctx, coords, currentTime, deadline)
}

func newEvent(ctx *Context, coords Point, currentTime, deadline int) *Event {
	e := &Event{
		Entity:   Entity{ID: ctx.NextID(), Coords: coords},
		GenTime:  currentTime,
		Deadline: deadline,
		ctx:      ctx,
	}
	if !e.placeholder() {
		ctx.Metrics.AddGeneratedEvent(e.ID)
	}
	return e
}

// newPlaceholderEvent backs packets that carry no sensed event (acks,
// hellos). It is not counted in the generation metrics.
func newPlaceholderEvent(ctx *Context) *Event {
	return newEvent(ctx, Point{X: -1, Y: -1}, -1, -1+ctx.EventDuration)
}

func (e *Event) placeholder() bool {
	return e.Coords == Point{X: -1, Y: -1} && e.GenTime == -1
}

// Expired reports whether the deadline has passed at the given step.
func (e *Event) Expired(step int) bool {
	return step > e.Deadline
}

// AsPacket wraps the event in a data packet with the given drone recorded
// as the packet's first hop. Called once, when the packet is created.
func (e *Event) AsPacket(step int, drone *Drone) *DataPacket {
	pck := NewDataPacket(e.ctx, step, e)
	pck.AddHop(drone)
	return pck
}

// EventJSON is the external projection of an event for logs and rendering.
type EventJSON struct {
	Coord [2]float64 `json:"coord"`
	IGen  int        `json:"i_gen"`
	IDead int        `json:"i_dead"`
	ID    int        `json:"id"`
}

// JSON returns the external projection of the event.
func (e *Event) JSON() EventJSON {
	return EventJSON{
		Coord: [2]float64{e.Coords.X, e.Coords.Y},
		IGen:  e.GenTime,
		IDead: e.Deadline,
		ID:    e.ID,
	}
}
