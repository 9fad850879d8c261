package routing

import (
	"github.com/dronet-sim/dronet/internal/entities"
)

// Geo is the geographic baseline: greedily relay the buffer to the
// neighbour in communication range closest to the depot, and divert the
// drone itself when a packet is about to expire. It does not learn from
// packet outcomes.
type Geo struct {
	drone *entities.Drone
	ctx   *entities.Context
}

// NewGeo builds the GEO strategy for a drone.
func NewGeo(d *entities.Drone, ctx *entities.Context) entities.RoutingStrategy {
	return &Geo{drone: d, ctx: ctx}
}

func (g *Geo) Name() string { return "GEO" }

func (g *Geo) ConsumesFeedback() bool { return false }

func (g *Geo) Feedback(entities.FeedbackSignal) {}

func (g *Geo) Routing(depot *entities.Depot, drones []*entities.Drone, step int) {
	if g.drone.BufferLength() == 0 || g.drone.Diverting() {
		return
	}
	if g.drone.PacketIsExpiring(step) {
		g.drone.SetDiverting(true)
		return
	}
	if best := closestToDepot(g.drone, depot, drones); best != nil {
		Relay(g.ctx, g.drone, best, step)
	}
}

// closestToDepot returns the in-range neighbour strictly closer to the
// depot than self, or nil when no neighbour improves on self.
func closestToDepot(self *entities.Drone, depot *entities.Depot, drones []*entities.Drone) *entities.Drone {
	var best *entities.Drone
	bestDist := entities.Distance(depot.Coords, self.Coords)
	for _, n := range drones {
		if n.Equal(&self.Entity) {
			continue
		}
		if !entities.InRange(self.Coords, n.Coords, self.CommunicationRange) {
			continue
		}
		if n.IsFull() {
			continue
		}
		if d := entities.Distance(depot.Coords, n.Coords); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

// neighbours returns every other drone within self's communication range.
func neighbours(self *entities.Drone, drones []*entities.Drone) []*entities.Drone {
	var out []*entities.Drone
	for _, n := range drones {
		if n.Equal(&self.Entity) {
			continue
		}
		if entities.InRange(self.Coords, n.Coords, self.CommunicationRange) {
			out = append(out, n)
		}
	}
	return out
}
