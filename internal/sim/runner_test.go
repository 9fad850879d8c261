package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dronet-sim/dronet/internal/config"
	"github.com/dronet-sim/dronet/internal/entities"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Width = 300
	cfg.Height = 300
	cfg.Drones = 3
	cfg.Steps = 50
	cfg.EventProbability = 1
	cfg.DepotX = 150
	cfg.DepotY = 150
	// depot covers the whole map: sensed packets are offloaded in the
	// same step they are created
	cfg.DepotCommRange = 500
	return cfg
}

func TestNewRejectsUnknownStrategy(t *testing.T) {
	cfg := testConfig()
	cfg.Routing = "AODV"

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Drones = 0

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestPatrolPathsStayOnMap(t *testing.T) {
	cfg := testConfig()
	runner, err := New(cfg)
	require.NoError(t, err)

	for _, d := range runner.Drones() {
		require.Len(t, d.Path, waypointsPerPath)
		for _, wp := range d.Path {
			assert.GreaterOrEqual(t, wp.X, 0.0)
			assert.LessOrEqual(t, wp.X, cfg.Width)
			assert.GreaterOrEqual(t, wp.Y, 0.0)
			assert.LessOrEqual(t, wp.Y, cfg.Height)
		}
	}
}

func TestStepSensesAndDelivers(t *testing.T) {
	runner, err := New(testConfig())
	require.NoError(t, err)

	runner.Step()

	m := runner.Metrics()
	assert.Equal(t, 3, m.GeneratedEvents())
	assert.Equal(t, 3, m.DeliveredPackets())
	assert.Len(t, runner.Depot().AllPackets(), 3)
	for _, d := range runner.Drones() {
		assert.Equal(t, 0, d.BufferLength())
	}
}

func TestDeliveryStampsStep(t *testing.T) {
	runner, err := New(testConfig())
	require.NoError(t, err)

	runner.Step()
	runner.Step()

	for _, pck := range runner.Depot().AllPackets() {
		assert.Equal(t, pck.TimeStepCreation, pck.TimeDelivery)
	}
}

func TestRunIsDeterministicForASeed(t *testing.T) {
	first, err := New(testConfig())
	require.NoError(t, err)
	second, err := New(testConfig())
	require.NoError(t, err)

	require.NoError(t, first.Run())
	require.NoError(t, second.Run())

	assert.Equal(t, first.Metrics().GeneratedEvents(), second.Metrics().GeneratedEvents())
	assert.Equal(t, first.Metrics().DeliveredPackets(), second.Metrics().DeliveredPackets())
	assert.Equal(t, first.Metrics().DeliveredList, second.Metrics().DeliveredList)
	for i, d := range first.Drones() {
		assert.Equal(t, d.Coords, second.Drones()[i].Coords)
	}
}

func TestRunnerOffloadClearsDiversion(t *testing.T) {
	cfg := testConfig()
	runner, err := New(cfg)
	require.NoError(t, err)

	d := runner.Drones()[0]
	ev := entities.NewEventWithDeadline(runner.ctx, d.Coords, 0, 1000)
	d.AcceptPackets([]*entities.DataPacket{ev.AsPacket(0, d)})
	d.SetDiverting(true)

	runner.Step()

	assert.False(t, d.Diverting())
	assert.Equal(t, 0, d.BufferLength())
}
