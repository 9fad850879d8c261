package entities

// Environment holds the area of interest the events are generated on, and
// the registries of everything placed on it.
type Environment struct {
	Width  float64
	Height float64

	Depot  *Depot
	Drones []*Drone

	EventGenerator *EventGenerator

	ctx *Context
}

// NewEnvironment builds the area of interest with the given bounds.
func NewEnvironment(ctx *Context, width, height float64) *Environment {
	return &Environment{
		Width:          width,
		Height:         height,
		EventGenerator: NewEventGenerator(ctx, width, height),
		ctx:            ctx,
	}
}

// AddDrones registers the fleet in the environment.
func (e *Environment) AddDrones(drones []*Drone) {
	e.Drones = drones
}

// AddDepot registers the depot in the environment.
func (e *Environment) AddDepot(depot *Depot) {
	e.Depot = depot
}

// EventGenerator places events on the map for the map-driven generation
// mode, as opposed to events being sensed at the drones' own positions.
type EventGenerator struct {
	Width  float64
	Height float64

	ctx *Context
}

// NewEventGenerator builds a generator bounded by the map dimensions.
func NewEventGenerator(ctx *Context, width, height float64) *EventGenerator {
	return &EventGenerator{Width: width, Height: height, ctx: ctx}
}

// UniformEventCoords returns a uniformly random position on the map.
func (g *EventGenerator) UniformEventCoords() Point {
	return Point{
		X: g.ctx.RNG.Float64() * g.Width,
		Y: g.ctx.RNG.Float64() * g.Height,
	}
}

// PoissonEventCoords is declared for the Poisson-process generation mode,
// which is not implemented. Callers must not invoke it.
func (g *EventGenerator) PoissonEventCoords() Point {
	panic("poisson event generation not implemented")
}
