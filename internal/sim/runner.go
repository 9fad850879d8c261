// Package sim drives the simulation: it owns the per-step call ordering
// over the fleet and the terminal depot offload.
package sim

import (
	"fmt"
	"math/rand"

	log "github.com/sirupsen/logrus"

	"github.com/dronet-sim/dronet/internal/config"
	"github.com/dronet-sim/dronet/internal/entities"
	"github.com/dronet-sim/dronet/internal/metrics"
	"github.com/dronet-sim/dronet/internal/routing"
)

// waypointsPerPath is the number of patrol waypoints generated per drone.
const waypointsPerPath = 4

// Runner advances the simulation one step at a time with a fixed phase
// ordering: sense, move, buffer maintenance, routing, depot offload. The
// ordering is what makes runs reproducible, since outcome broadcasts read
// and write strategy state shared across the fleet.
type Runner struct {
	cfg config.Config
	ctx *entities.Context
	rng *rand.Rand

	env    *entities.Environment
	depot  *entities.Depot
	drones []*entities.Drone
	mtr    *metrics.Metrics

	step int
}

// New builds a runner, its world, and the fleet from the config.
func New(cfg config.Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	factory, err := routing.New(cfg.Routing)
	if err != nil {
		return nil, fmt.Errorf("building fleet: %w", err)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	mtr := metrics.New()
	ctx := entities.NewContext(entities.Params{
		TickDuration:       cfg.TickDuration,
		EventDuration:      cfg.EventDuration,
		PacketsMaxTTL:      cfg.PacketsMaxTTL,
		PacketSize:         cfg.PacketSize,
		DroneSpeed:         cfg.DroneSpeed,
		DroneSensingRange:  cfg.DroneSensingRange,
		DroneCommRange:     cfg.DroneCommRange,
		DroneMaxBufferSize: cfg.DroneMaxBufferSize,
		DroneMaxEnergy:     cfg.DroneMaxEnergy,
		DepotCoords:        entities.Point{X: cfg.DepotX, Y: cfg.DepotY},
	}, rng, mtr)

	depot := entities.NewDepot(ctx, entities.Point{X: cfg.DepotX, Y: cfg.DepotY}, cfg.DepotCommRange)
	env := entities.NewEnvironment(ctx, cfg.Width, cfg.Height)
	env.AddDepot(depot)

	drones := make([]*entities.Drone, 0, cfg.Drones)
	for i := 0; i < cfg.Drones; i++ {
		path := patrolPath(rng, cfg.Width, cfg.Height)
		drones = append(drones, entities.NewDrone(ctx, ctx.NextID(), path, depot, factory))
	}
	ctx.RegisterDrones(drones)
	env.AddDrones(drones)

	log.WithFields(log.Fields{
		"event":   "runner_built",
		"drones":  cfg.Drones,
		"routing": cfg.Routing,
		"seed":    cfg.Seed,
		"run":     mtr.RunID,
	}).Info()

	return &Runner{cfg: cfg, ctx: ctx, rng: rng, env: env, depot: depot, drones: drones, mtr: mtr}, nil
}

// patrolPath draws a cyclic patrol path of random waypoints on the map.
func patrolPath(rng *rand.Rand, width, height float64) []entities.Point {
	path := make([]entities.Point, waypointsPerPath)
	for i := range path {
		path[i] = entities.Point{
			X: rng.Float64() * width,
			Y: rng.Float64() * height,
		}
	}
	return path
}

// Step advances the simulation by one tick.
func (r *Runner) Step() {
	step := r.step

	// sense
	for _, d := range r.drones {
		if r.rng.Float64() < r.cfg.EventProbability {
			d.FeelEvent(step)
		}
	}

	// move
	for _, d := range r.drones {
		d.Move(r.cfg.TickDuration)
	}

	// buffer maintenance, broadcasts expiry outcomes
	for _, d := range r.drones {
		d.UpdatePackets(step)
	}

	// routing delegation, may mutate buffers across drones
	for _, d := range r.drones {
		d.Routing(r.drones, r.depot, step)
	}

	// depot offload, broadcasts delivery outcomes
	for _, d := range r.drones {
		if d.BufferLength() == 0 {
			continue
		}
		if !entities.InRange(d.Coords, r.depot.Coords, r.depot.CommunicationRange) {
			continue
		}
		r.depot.TransferNotifiedPackets(d, step)
		d.EmptyBuffer()
		d.SetDiverting(false)
	}

	r.step++
}

// Run executes the configured number of steps and writes the report if a
// path is configured.
func (r *Runner) Run() error {
	for r.step < r.cfg.Steps {
		r.Step()
	}

	report := r.mtr.Report()
	log.WithFields(log.Fields{
		"event":     "run_finished",
		"steps":     r.step,
		"events":    report.GeneratedEvents,
		"delivered": report.DeliveredPackets,
		"missed":    report.MissedEvents,
	}).Info()

	if r.cfg.ReportPath != "" {
		return r.mtr.WriteReport(r.cfg.ReportPath)
	}
	return nil
}

// CurrentStep returns the number of completed steps.
func (r *Runner) CurrentStep() int { return r.step }

// Drones returns the fleet.
func (r *Runner) Drones() []*entities.Drone { return r.drones }

// Depot returns the depot.
func (r *Runner) Depot() *entities.Depot { return r.depot }

// Environment returns the area of interest.
func (r *Runner) Environment() *entities.Environment { return r.env }

// Metrics returns the run's metrics sink.
func (r *Runner) Metrics() *metrics.Metrics { return r.mtr }
