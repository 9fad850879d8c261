package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dronet-sim/dronet/internal/entities"
)

func TestUniformEventCoordsStayOnMap(t *testing.T) {
	ctx, _ := newTestContext()
	env := entities.NewEnvironment(ctx, 300, 200)

	for i := 0; i < 100; i++ {
		p := env.EventGenerator.UniformEventCoords()
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.Less(t, p.X, 300.0)
		assert.GreaterOrEqual(t, p.Y, 0.0)
		assert.Less(t, p.Y, 200.0)
	}
}

func TestPoissonEventCoordsUnimplemented(t *testing.T) {
	ctx, _ := newTestContext()
	gen := entities.NewEventGenerator(ctx, 100, 100)

	assert.Panics(t, func() { gen.PoissonEventCoords() })
}

func TestEnvironmentRegistries(t *testing.T) {
	ctx, _ := newTestContext()
	env := entities.NewEnvironment(ctx, 100, 100)
	d, depot := newTestDrone(ctx, []entities.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, nil)

	env.AddDepot(depot)
	env.AddDrones([]*entities.Drone{d})

	require.NotNil(t, env.Depot)
	assert.Same(t, depot, env.Depot)
	require.Len(t, env.Drones, 1)
	assert.Same(t, d, env.Drones[0])
}

func TestEntityEqualityByID(t *testing.T) {
	a := &entities.Entity{ID: 1, Coords: entities.Point{X: 0, Y: 0}}
	b := &entities.Entity{ID: 1, Coords: entities.Point{X: 9, Y: 9}}
	c := &entities.Entity{ID: 2, Coords: entities.Point{X: 0, Y: 0}}

	// same id is the same entity regardless of coords
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestIDAllocatorMonotonic(t *testing.T) {
	var alloc entities.IDAllocator

	first := alloc.NextID()
	second := alloc.NextID()

	assert.Equal(t, first+1, second)
}
