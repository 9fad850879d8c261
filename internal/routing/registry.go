// Package routing provides the concrete routing strategies a drone can be
// configured with, selected by name.
package routing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dronet-sim/dronet/internal/entities"
)

// ErrUnknownStrategy is returned for a name no strategy registers.
var ErrUnknownStrategy = errors.New("unknown routing strategy")

var factories = map[string]entities.StrategyFactory{
	"GEO":  NewGeo,
	"RND":  NewRandom,
	"GEOS": NewGeoSpeed,
	"QL":   NewQL,
}

// New returns the factory for the named strategy, case-insensitively.
func New(name string) (entities.StrategyFactory, error) {
	factory, ok := factories[strings.ToUpper(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return factory, nil
}

// Names lists the registered strategy names.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	return names
}
