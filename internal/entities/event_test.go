package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dronet-sim/dronet/internal/entities"
)

func TestEventDefaultDeadline(t *testing.T) {
	ctx, _ := newTestContext()

	ev := entities.NewEvent(ctx, entities.Point{X: 5, Y: 5}, 10)

	assert.Equal(t, 60, ev.Deadline)
	assert.False(t, ev.Expired(59))
	assert.False(t, ev.Expired(60))
	assert.True(t, ev.Expired(61))
}

func TestEventExplicitDeadline(t *testing.T) {
	ctx, _ := newTestContext()

	ev := entities.NewEventWithDeadline(ctx, entities.Point{X: 5, Y: 5}, 10, 30)

	assert.Equal(t, 30, ev.Deadline)
	assert.True(t, ev.Expired(31))
}

func TestEventRegistersInMetrics(t *testing.T) {
	ctx, m := newTestContext()

	ev := entities.NewEvent(ctx, entities.Point{X: 1, Y: 2}, 0)

	require.Len(t, m.generatedEvents, 1)
	assert.Equal(t, ev.ID, m.generatedEvents[0])
}

func TestPlaceholderEventNotRegistered(t *testing.T) {
	ctx, m := newTestContext()

	// packets without a sensed event hold a placeholder that must not
	// count as a generated event nor as a created packet
	entities.NewDataPacket(ctx, 0, nil)

	assert.Empty(t, m.generatedEvents)
	assert.Empty(t, m.createdPackets)
}

func TestAsPacketRecordsFirstHop(t *testing.T) {
	ctx, m := newTestContext()
	d, _ := newTestDrone(ctx, []entities.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, nil)

	ev := entities.NewEvent(ctx, d.Coords, 3)
	pck := ev.AsPacket(3, d)

	assert.Equal(t, 0, pck.TTL())
	require.Len(t, pck.LastHops(), 1)
	assert.Same(t, d, pck.LastHops()[0])
	assert.Contains(t, m.createdPackets, pck.ID)
}

func TestEventJSON(t *testing.T) {
	ctx, _ := newTestContext()

	ev := entities.NewEvent(ctx, entities.Point{X: 5, Y: 7}, 10)
	j := ev.JSON()

	assert.Equal(t, [2]float64{5, 7}, j.Coord)
	assert.Equal(t, 10, j.IGen)
	assert.Equal(t, 60, j.IDead)
	assert.Equal(t, ev.ID, j.ID)
}
