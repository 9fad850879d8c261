package entities_test

import (
	"math/rand"

	"github.com/dronet-sim/dronet/internal/entities"
)

// recordingMetrics captures everything the entity layer reports.
type recordingMetrics struct {
	generatedEvents []int
	createdPackets  []int
	dataPackets     int
	missedEvents    []int
	timeOnMission   int
	timeOnRouting   int
	deliveries      []delivery
}

type delivery struct {
	packetID int
	step     int
}

func (m *recordingMetrics) AddGeneratedEvent(eventID int) {
	m.generatedEvents = append(m.generatedEvents, eventID)
}

func (m *recordingMetrics) AddCreatedPacket(packetID int) {
	m.createdPackets = append(m.createdPackets, packetID)
}

func (m *recordingMetrics) IncDataPackets() { m.dataPackets++ }

func (m *recordingMetrics) AddMissedEvent(eventID int) {
	m.missedEvents = append(m.missedEvents, eventID)
}

func (m *recordingMetrics) IncTimeOnMission() { m.timeOnMission++ }

func (m *recordingMetrics) IncTimeOnActiveRouting() { m.timeOnRouting++ }

func (m *recordingMetrics) AddDeliveredPacket(packetID int, step int) {
	m.deliveries = append(m.deliveries, delivery{packetID: packetID, step: step})
}

// recordingStrategy records received feedback; it never moves packets.
type recordingStrategy struct {
	adaptive bool
	signals  []entities.FeedbackSignal
	routed   int
}

func (s *recordingStrategy) Name() string { return "MOCK" }

func (s *recordingStrategy) Routing(*entities.Depot, []*entities.Drone, int) { s.routed++ }

func (s *recordingStrategy) ConsumesFeedback() bool { return s.adaptive }

func (s *recordingStrategy) Feedback(sig entities.FeedbackSignal) {
	s.signals = append(s.signals, sig)
}

func adaptiveFactory(strategies *[]*recordingStrategy) entities.StrategyFactory {
	return func(*entities.Drone, *entities.Context) entities.RoutingStrategy {
		s := &recordingStrategy{adaptive: true}
		*strategies = append(*strategies, s)
		return s
	}
}

func newTestContext() (*entities.Context, *recordingMetrics) {
	m := &recordingMetrics{}
	ctx := entities.NewContext(entities.Params{
		TickDuration:       1,
		EventDuration:      50,
		PacketsMaxTTL:      64,
		PacketSize:         2000,
		DroneSpeed:         5,
		DroneSensingRange:  10,
		DroneCommRange:     100,
		DroneMaxBufferSize: 50,
		DroneMaxEnergy:     1e6,
		DepotCoords:        entities.Point{X: 100, Y: 0},
	}, rand.New(rand.NewSource(42)), m)
	return ctx, m
}

// newTestDrone builds a drone with deterministic speed on the given path.
func newTestDrone(ctx *entities.Context, path []entities.Point, strategy entities.RoutingStrategy) (*entities.Drone, *entities.Depot) {
	depot := entities.NewDepot(ctx, ctx.DepotCoords, 200)
	d := entities.NewDrone(ctx, ctx.NextID(), path, depot, nil)
	d.Speed = 5
	if strategy != nil {
		d.SetStrategy(strategy)
	}
	ctx.RegisterDrones([]*entities.Drone{d})
	return d, depot
}
