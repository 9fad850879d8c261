// Package metrics aggregates the write-only counters the entity layer
// reports into, and turns them into a per-run JSON report.
package metrics

import (
	"encoding/json"
	"os"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Delivery is one entry of the chronological delivery log.
type Delivery struct {
	PacketID int `json:"packet_id"`
	Step     int `json:"step"`
}

// Metrics collects what happened during one run. Methods are cheap and
// never fail; the simulation core calls them inline.
type Metrics struct {
	RunID string

	events        map[int]struct{}
	dronesPackets map[int]struct{}
	missedEvents  map[int]struct{}
	delivered     map[int]struct{}

	// DeliveredList keeps duplicates when the same packet is offloaded
	// more than once; the delivered set does not.
	DeliveredList []Delivery

	AllDataPacketsInSimulation int
	TimeOnMission              int
	TimeOnActiveRouting        int
}

// New returns an empty metrics sink with a fresh run id.
func New() *Metrics {
	return &Metrics{
		RunID:         uuid.NewString(),
		events:        make(map[int]struct{}),
		dronesPackets: make(map[int]struct{}),
		missedEvents:  make(map[int]struct{}),
		delivered:     make(map[int]struct{}),
	}
}

// AddGeneratedEvent records a sensed event.
func (m *Metrics) AddGeneratedEvent(eventID int) {
	m.events[eventID] = struct{}{}
}

// AddCreatedPacket records an event-backed packet entering the simulation.
func (m *Metrics) AddCreatedPacket(packetID int) {
	m.dronesPackets[packetID] = struct{}{}
}

// IncDataPackets counts a packet actually buffered by its sensing drone.
func (m *Metrics) IncDataPackets() {
	m.AllDataPacketsInSimulation++
}

// AddMissedEvent records an event missed because the drone was moving.
func (m *Metrics) AddMissedEvent(eventID int) {
	m.missedEvents[eventID] = struct{}{}
}

// IncTimeOnMission counts one drone-tick of patrol movement.
func (m *Metrics) IncTimeOnMission() {
	m.TimeOnMission++
}

// IncTimeOnActiveRouting counts one drone-tick of diversion or return.
func (m *Metrics) IncTimeOnActiveRouting() {
	m.TimeOnActiveRouting++
}

// AddDeliveredPacket records a depot delivery, appending to the
// chronological list on every call.
func (m *Metrics) AddDeliveredPacket(packetID int, step int) {
	m.delivered[packetID] = struct{}{}
	m.DeliveredList = append(m.DeliveredList, Delivery{PacketID: packetID, Step: step})
}

// GeneratedEvents returns the number of distinct sensed events.
func (m *Metrics) GeneratedEvents() int { return len(m.events) }

// CreatedPackets returns the number of distinct event-backed packets.
func (m *Metrics) CreatedPackets() int { return len(m.dronesPackets) }

// MissedEvents returns the number of events lost to movement.
func (m *Metrics) MissedEvents() int { return len(m.missedEvents) }

// DeliveredPackets returns the number of distinct delivered packets.
func (m *Metrics) DeliveredPackets() int { return len(m.delivered) }

// Report is the JSON summary of a run.
type Report struct {
	RunID               string     `json:"run_id"`
	GeneratedEvents     int        `json:"generated_events"`
	CreatedPackets      int        `json:"created_packets"`
	BufferedPackets     int        `json:"buffered_packets"`
	MissedEvents        int        `json:"missed_events"`
	DeliveredPackets    int        `json:"delivered_packets"`
	TimeOnMission       int        `json:"time_on_mission"`
	TimeOnActiveRouting int        `json:"time_on_active_routing"`
	Deliveries          []Delivery `json:"deliveries"`
}

// Report builds the summary of the run so far.
func (m *Metrics) Report() Report {
	return Report{
		RunID:               m.RunID,
		GeneratedEvents:     m.GeneratedEvents(),
		CreatedPackets:      m.CreatedPackets(),
		BufferedPackets:     m.AllDataPacketsInSimulation,
		MissedEvents:        m.MissedEvents(),
		DeliveredPackets:    m.DeliveredPackets(),
		TimeOnMission:       m.TimeOnMission,
		TimeOnActiveRouting: m.TimeOnActiveRouting,
		Deliveries:          m.DeliveredList,
	}
}

// WriteReport writes the JSON report to path.
func (m *Metrics) WriteReport(path string) error {
	data, err := json.MarshalIndent(m.Report(), "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"event": "report_written",
		"path":  path,
		"run":   m.RunID,
	}).Info()
	return nil
}
