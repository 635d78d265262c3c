// Package fleetstatus keeps the latest prediction outcome per vehicle.
package fleetstatus

import (
	"sort"
	"sync"
	"time"
)

// VehicleStatus captures the last known maintenance state of a vehicle.
type VehicleStatus struct {
	VehicleID          string    `json:"vehicle_id"`
	FleetID            string    `json:"fleet_id,omitempty"`
	SOH                float64   `json:"soh"`
	SOHStatus          string    `json:"soh_status"`
	RULCycles          float64   `json:"rul_cycles"`
	ThermalRisk        float64   `json:"thermal_risk"`
	ThermalStatus      string    `json:"thermal_status"`
	MaintenanceUrgency string    `json:"maintenance_urgency"`
	Source             string    `json:"source"`
	LastSeen           time.Time `json:"last_seen"`
}

// Filter narrows a listing.
type Filter struct {
	FleetID string
	Urgency string
}

// Store holds the latest status per vehicle.
type Store interface {
	Set(VehicleStatus)
	List(Filter) []VehicleStatus
	Len() int
}

// MemoryStore is an in-memory Store safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]VehicleStatus
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]VehicleStatus{}}
}

func (s *MemoryStore) Set(st VehicleStatus) {
	s.mu.Lock()
	s.data[st.VehicleID] = st
	s.mu.Unlock()
}

func (s *MemoryStore) List(f Filter) []VehicleStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]VehicleStatus, 0, len(s.data))
	for _, st := range s.data {
		if f.FleetID != "" && st.FleetID != f.FleetID {
			continue
		}
		if f.Urgency != "" && st.MaintenanceUrgency != f.Urgency {
			continue
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VehicleID < out[j].VehicleID })
	return out
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
