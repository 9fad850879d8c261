package entities

// Depot is the fixed collection point the drones deliver packets to. Its
// buffer is an append-only log of every packet ever received; offloading
// the same packet twice leaves two entries.
type Depot struct {
	Entity

	CommunicationRange float64

	buffer []*DataPacket

	ctx *Context
}

// NewDepot places the depot on the map.
func NewDepot(ctx *Context, coords Point, communicationRange float64) *Depot {
	return &Depot{
		Entity:             Entity{ID: ctx.NextID(), Coords: coords},
		CommunicationRange: communicationRange,
		ctx:                ctx,
	}
}

// AllPackets returns the delivery log.
func (d *Depot) AllPackets() []*DataPacket {
	return d.buffer
}

// TransferNotifiedPackets copies all of the drone's buffered packets into
// the delivery log, stamps their delivery step, records the delivery
// metrics, and broadcasts a positive outcome for each. The packets are not
// removed from the drone's buffer; the caller does that.
func (d *Depot) TransferNotifiedPackets(currentDrone *Drone, step int) {
	packetsToOffload := currentDrone.AllPackets()
	d.buffer = append(d.buffer, packetsToOffload...)

	for _, pck := range packetsToOffload {
		d.ctx.BroadcastFeedback(FeedbackSignal{
			Source:  currentDrone,
			EventID: pck.EventRef.ID,
			Delay:   float64(step - pck.EventRef.GenTime),
			Outcome: OutcomeDelivered,
			Reward:  100,
		})

		d.ctx.Metrics.AddDeliveredPacket(pck.ID, step)
		pck.TimeDelivery = step
	}
}
