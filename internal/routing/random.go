package routing

import (
	"github.com/dronet-sim/dronet/internal/entities"
)

// Random relays the buffer to a uniformly chosen neighbour in range. It is
// the lower-bound baseline and does not learn from packet outcomes.
type Random struct {
	drone *entities.Drone
	ctx   *entities.Context
}

// NewRandom builds the RND strategy for a drone.
func NewRandom(d *entities.Drone, ctx *entities.Context) entities.RoutingStrategy {
	return &Random{drone: d, ctx: ctx}
}

func (r *Random) Name() string { return "RND" }

func (r *Random) ConsumesFeedback() bool { return false }

func (r *Random) Feedback(entities.FeedbackSignal) {}

func (r *Random) Routing(depot *entities.Depot, drones []*entities.Drone, step int) {
	if r.drone.BufferLength() == 0 || r.drone.Diverting() {
		return
	}
	if r.drone.PacketIsExpiring(step) {
		r.drone.SetDiverting(true)
		return
	}
	candidates := neighbours(r.drone, drones)
	if len(candidates) == 0 {
		return
	}
	pick := candidates[r.ctx.RNG.Intn(len(candidates))]
	if pick.IsFull() {
		return
	}
	Relay(r.ctx, r.drone, pick, step)
}
