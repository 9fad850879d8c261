package entities

// Entity is anything placed on the map: drones, events, packets, the depot.
// Identity is defined solely by the id; coordinates are only meaningful for
// spatial queries and must never be used to compare entities.
type Entity struct {
	ID     int
	Coords Point
}

// Equal reports whether two entities are the same entity, by id only.
func (e *Entity) Equal(other *Entity) bool {
	if other == nil {
		return false
	}
	return e.ID == other.ID
}

// IDAllocator hands out unique entity ids for one simulation run.
// The zero value is ready to use.
type IDAllocator struct {
	next int
}

// NextID returns a fresh id, never reused within the run.
func (a *IDAllocator) NextID() int {
	id := a.next
	a.next++
	return id
}
