package routing

import (
	"math"

	"github.com/dronet-sim/dronet/internal/entities"
)

// GeoSpeed refines GEO by also looking at where a neighbour is heading: a
// neighbour flying towards the depot is a better relay than one at the same
// distance flying away. Non-adaptive.
type GeoSpeed struct {
	drone *entities.Drone
	ctx   *entities.Context
}

// NewGeoSpeed builds the GEOS strategy for a drone.
func NewGeoSpeed(d *entities.Drone, ctx *entities.Context) entities.RoutingStrategy {
	return &GeoSpeed{drone: d, ctx: ctx}
}

func (g *GeoSpeed) Name() string { return "GEOS" }

func (g *GeoSpeed) ConsumesFeedback() bool { return false }

func (g *GeoSpeed) Feedback(entities.FeedbackSignal) {}

func (g *GeoSpeed) Routing(depot *entities.Depot, drones []*entities.Drone, step int) {
	if g.drone.BufferLength() == 0 || g.drone.Diverting() {
		return
	}
	if g.drone.PacketIsExpiring(step) {
		g.drone.SetDiverting(true)
		return
	}

	var best *entities.Drone
	bestScore := headingScore(g.drone, depot)
	for _, n := range neighbours(g.drone, drones) {
		if n.IsFull() {
			continue
		}
		if s := headingScore(n, depot); s < bestScore {
			best, bestScore = n, s
		}
	}
	if best != nil {
		Relay(g.ctx, g.drone, best, step)
	}
}

// headingScore blends a drone's current distance to the depot with the
// distance of the point it is flying to. Lower is better.
func headingScore(d *entities.Drone, depot *entities.Depot) float64 {
	now := entities.Distance(depot.Coords, d.Coords)
	next := entities.Distance(depot.Coords, d.NextTarget())
	return math.Min(now, next)
}
