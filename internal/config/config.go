// Package config holds the simulation parameters and their JSON loading.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the full parameter set of one simulation run.
type Config struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Drones int   `json:"drones"`
	Steps  int   `json:"steps"`
	Seed   int64 `json:"seed"`

	TickDuration     float64 `json:"tick_duration"`
	EventDuration    int     `json:"event_duration"`
	EventProbability float64 `json:"event_probability"` // per drone per step

	DroneSpeed         float64 `json:"drone_speed"`
	DroneSensingRange  float64 `json:"drone_sensing_range"`
	DroneCommRange     float64 `json:"drone_comm_range"`
	DroneMaxBufferSize int     `json:"drone_max_buffer_size"`
	DroneMaxEnergy     float64 `json:"drone_max_energy"`

	PacketsMaxTTL int     `json:"packets_max_ttl"`
	PacketSize    float64 `json:"packet_size"`

	DepotX         float64 `json:"depot_x"`
	DepotY         float64 `json:"depot_y"`
	DepotCommRange float64 `json:"depot_comm_range"`

	Routing string `json:"routing"`

	ReportPath string `json:"report_path"`
}

// Default returns the parameters of the reference scenario.
func Default() Config {
	return Config{
		Width:              1500,
		Height:             1500,
		Drones:             10,
		Steps:              3000,
		Seed:               1,
		TickDuration:       1,
		EventDuration:      50,
		EventProbability:   0.02,
		DroneSpeed:         5,
		DroneSensingRange:  10,
		DroneCommRange:     100,
		DroneMaxBufferSize: 50,
		DroneMaxEnergy:     1e6,
		PacketsMaxTTL:      64,
		PacketSize:         2000,
		DepotX:             750,
		DepotY:             0,
		DepotCommRange:     200,
		Routing:            "GEO",
	}
}

// Load reads a JSON config from path on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects parameter combinations the simulation cannot run with.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("map size must be positive, got %gx%g", c.Width, c.Height)
	}
	if c.Drones <= 0 {
		return fmt.Errorf("drone count must be positive, got %d", c.Drones)
	}
	if c.TickDuration <= 0 {
		return fmt.Errorf("tick duration must be positive, got %g", c.TickDuration)
	}
	if c.DroneSpeed <= 0 {
		return fmt.Errorf("drone speed must be positive, got %g", c.DroneSpeed)
	}
	if c.EventProbability < 0 || c.EventProbability > 1 {
		return fmt.Errorf("event probability must be in [0,1], got %g", c.EventProbability)
	}
	if c.Routing == "" {
		return fmt.Errorf("routing strategy name is required")
	}
	return nil
}
