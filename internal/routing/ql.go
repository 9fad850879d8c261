package routing

import (
	log "github.com/sirupsen/logrus"

	"github.com/dronet-sim/dronet/internal/entities"
)

const (
	qlLearningRate  = 0.1
	qlExploration   = 0.1
	qlHelloInterval = 10 // steps between beacons
)

// QL learns which neighbour to relay through from the delivery and expiry
// outcomes broadcast by the depot and the buffer maintenance: it keeps a
// running action value per relay drone, updated with a constant learning
// rate, and picks relays epsilon-greedily. Hello beacons share position and
// load with the neighbourhood.
type QL struct {
	drone *entities.Drone
	ctx   *entities.Context

	values  map[int]float64 // relay drone id -> action value
	pending map[int]int     // event id -> relay drone id chosen for it
	hellos  map[int]*entities.HelloPacket
}

// NewQL builds the QL strategy for a drone.
func NewQL(d *entities.Drone, ctx *entities.Context) entities.RoutingStrategy {
	return &QL{
		drone:   d,
		ctx:     ctx,
		values:  make(map[int]float64),
		pending: make(map[int]int),
		hellos:  make(map[int]*entities.HelloPacket),
	}
}

func (q *QL) Name() string { return "QL" }

func (q *QL) ConsumesFeedback() bool { return true }

// Feedback folds a packet outcome into the value of the relay that was
// chosen for the packet's event. Outcomes for events this drone never
// routed are ignored.
func (q *QL) Feedback(sig entities.FeedbackSignal) {
	relay, ok := q.pending[sig.EventID]
	if !ok {
		return
	}
	delete(q.pending, sig.EventID)
	q.values[relay] += qlLearningRate * (sig.Reward - q.values[relay])

	log.WithFields(log.Fields{
		"drone":   q.drone.ID,
		"event":   sig.EventID,
		"relay":   relay,
		"outcome": sig.Outcome,
		"value":   q.values[relay],
	}).Debug("feedback applied")
}

// ReceiveHello stores a neighbour's latest beacon.
func (q *QL) ReceiveHello(h *entities.HelloPacket) {
	q.hellos[h.SrcDrone.ID] = h
}

// helloReceiver is implemented by strategies that consume beacons.
type helloReceiver interface {
	ReceiveHello(h *entities.HelloPacket)
}

func (q *QL) Routing(depot *entities.Depot, drones []*entities.Drone, step int) {
	if step%qlHelloInterval == 0 {
		q.broadcastHello(drones, step)
	}

	if q.drone.BufferLength() == 0 || q.drone.Diverting() {
		return
	}
	if q.drone.PacketIsExpiring(step) {
		q.drone.SetDiverting(true)
		return
	}

	candidates := neighbours(q.drone, drones)
	if len(candidates) == 0 {
		return
	}

	var pick *entities.Drone
	if q.ctx.RNG.Float64() < qlExploration {
		pick = candidates[q.ctx.RNG.Intn(len(candidates))]
	} else {
		for _, n := range candidates {
			if pick == nil || q.values[n.ID] > q.values[pick.ID] {
				pick = n
			}
		}
		// holding is worth 0; don't relay through a known-bad neighbour
		if pick != nil && q.values[pick.ID] < 0 {
			return
		}
	}
	if pick == nil || pick.IsFull() {
		return
	}

	sent := append([]*entities.DataPacket(nil), q.drone.AllPackets()...)
	Relay(q.ctx, q.drone, pick, step)
	for _, pck := range sent {
		q.pending[pck.EventRef.ID] = pick.ID
	}
}

// broadcastHello beacons this drone's position and load to every neighbour
// able to consume it.
func (q *QL) broadcastHello(drones []*entities.Drone, step int) {
	hello := entities.NewHelloPacket(
		q.ctx,
		q.drone,
		step,
		q.drone.Coords,
		q.drone.Speed,
		q.drone.NextTarget(),
		q.drone.ResidualEnergy,
		float64(q.drone.BufferLength())/q.drone.TransmissionRate,
		qlLearningRate,
	)
	q.drone.ConsumeEnergy(entities.ActionHello)

	for _, n := range neighbours(q.drone, drones) {
		if receiver, ok := n.Strategy().(helloReceiver); ok {
			receiver.ReceiveHello(hello)
		}
	}
}
