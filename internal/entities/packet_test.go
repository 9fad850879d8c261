package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dronet-sim/dronet/internal/entities"
)

func TestTTLCountsHops(t *testing.T) {
	ctx, _ := newTestContext()
	d, _ := newTestDrone(ctx, []entities.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, nil)

	pck := entities.NewDataPacket(ctx, 0, entities.NewEvent(ctx, d.Coords, 0))
	assert.Equal(t, -1, pck.TTL())

	for i := 0; i < 3; i++ {
		pck.AddHop(d)
	}
	assert.Equal(t, 2, pck.TTL())
}

func TestHopWindowKeepsLastTwo(t *testing.T) {
	ctx, _ := newTestContext()
	path := []entities.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	depot := entities.NewDepot(ctx, ctx.DepotCoords, 200)
	d1 := entities.NewDrone(ctx, ctx.NextID(), path, depot, nil)
	d2 := entities.NewDrone(ctx, ctx.NextID(), path, depot, nil)
	d3 := entities.NewDrone(ctx, ctx.NextID(), path, depot, nil)

	pck := entities.NewDataPacket(ctx, 0, entities.NewEvent(ctx, d1.Coords, 0))
	pck.AddHop(d1)
	pck.AddHop(d2)
	pck.AddHop(d3)

	hops := pck.LastHops()
	require.Len(t, hops, 2)
	assert.Same(t, d2, hops[0])
	assert.Same(t, d3, hops[1])
	assert.Equal(t, 2, pck.TTL())
}

func TestDecreaseDeadlineTightensEvent(t *testing.T) {
	ctx, _ := newTestContext()

	ev := entities.NewEvent(ctx, entities.Point{X: 1, Y: 1}, 10) // deadline 60
	pck := entities.NewDataPacket(ctx, 10, ev)

	pck.DecreaseDeadline(5) // 5/tick + 1 = 6
	assert.Equal(t, 54, ev.Deadline)
}

func TestExpiryIgnoresMaxTTL(t *testing.T) {
	ctx, _ := newTestContext()
	d, _ := newTestDrone(ctx, []entities.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, nil)

	pck := entities.NewDataPacket(ctx, 0, entities.NewEvent(ctx, d.Coords, 0))
	for i := 0; i < pck.MaxTTL+5; i++ {
		pck.AddHop(d)
	}

	// deadline is 50; crossing MaxTTL hops does not expire the packet here
	assert.False(t, pck.Expired(50))
	assert.True(t, pck.Expired(51))
}

func TestDelayAccumulates(t *testing.T) {
	ctx, _ := newTestContext()

	pck := entities.NewDataPacket(ctx, 0, entities.NewEvent(ctx, entities.Point{}, 0))
	pck.AddDelay(1.5)
	pck.AddDelay(2.5)

	assert.Equal(t, 4.0, pck.Delay())
}

func TestPacketJSON(t *testing.T) {
	ctx, _ := newTestContext()
	d, _ := newTestDrone(ctx, []entities.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, nil)

	ev := entities.NewEvent(ctx, entities.Point{X: 3, Y: 4}, 10)
	pck := ev.AsPacket(10, d)
	j := pck.JSON()

	assert.Equal(t, [2]float64{3, 4}, j.Coord)
	assert.Equal(t, 10, j.IGen)
	assert.Equal(t, 60, j.IDead)
	assert.Equal(t, pck.ID, j.ID)
	assert.Equal(t, 0, j.TTL)
	assert.Equal(t, ev.ID, j.IDEvent)
}

func TestAckAndHelloCarryNoEvent(t *testing.T) {
	ctx, m := newTestContext()
	path := []entities.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	depot := entities.NewDepot(ctx, ctx.DepotCoords, 200)
	src := entities.NewDrone(ctx, ctx.NextID(), path, depot, nil)
	dst := entities.NewDrone(ctx, ctx.NextID(), path, depot, nil)

	data := entities.NewDataPacket(ctx, 0, entities.NewEvent(ctx, src.Coords, 0))
	created := len(m.createdPackets)

	ack := entities.NewAckPacket(ctx, src, dst, &data.Packet, 1)
	hello := entities.NewHelloPacket(ctx, src, 1, src.Coords, src.Speed, dst.Coords, 100, 0.1, 0.5)

	// placeholder-backed packets stay out of the metrics
	assert.Len(t, m.createdPackets, created)
	assert.Same(t, &data.Packet, ack.AckedPacket)
	assert.Equal(t, src, hello.SrcDrone)
	assert.Equal(t, -1, ack.TimeDelivery)
}
