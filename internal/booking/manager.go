package booking

import "sync"

// FlowManager hands out one Flow per client.  The host UI allows a
// single open reservation flow per session, so a client asking again
// while a flow is live gets the same instance back; a persisted flow is
// replaced with a fresh one.
type FlowManager struct {
	mu       sync.Mutex
	flows    map[uint64]*Flow
	store    Store
	vehicles VehicleSource
}

// NewFlowManager returns a manager creating flows bound to the given
// store and vehicle source.
func NewFlowManager(store Store, vehicles VehicleSource) *FlowManager {
	return &FlowManager{
		flows:    make(map[uint64]*Flow),
		store:    store,
		vehicles: vehicles,
	}
}

// FlowFor returns the live flow for clientID, creating one if none
// exists or the previous one already persisted its reservation.
func (m *FlowManager) FlowFor(clientID uint64) *Flow {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.flows[clientID]; ok && f.State() != StatePersisted {
		return f
	}
	f := NewFlow(clientID, m.store, m.vehicles)
	m.flows[clientID] = f
	return f
}

// Drop forgets the flow for clientID, if any.
func (m *FlowManager) Drop(clientID uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.flows, clientID)
}
