package registry

import (
	"sync"

	"parcel-tracker/internal/features/tracking/domain"
	"parcel-tracker/internal/features/tracking/ports"
)

// CarrierRegistry maps carrier codes to their adapters.
// It is populated once at startup and read concurrently afterwards.
type CarrierRegistry struct {
	mu       sync.RWMutex
	carriers map[domain.CarrierCode]ports.Carrier
}

// New creates an empty CarrierRegistry.
func New() *CarrierRegistry {
	return &CarrierRegistry{
		carriers: make(map[domain.CarrierCode]ports.Carrier),
	}
}

// Register adds or replaces the adapter for its carrier code.
// The last registration for a code wins.
func (r *CarrierRegistry) Register(carrier ports.Carrier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carriers[carrier.Code()] = carrier
}

// Get returns the adapter registered for the given code, if any.
func (r *CarrierRegistry) Get(code domain.CarrierCode) (ports.Carrier, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	carrier, ok := r.carriers[code]
	return carrier, ok
}

// List returns the codes of all registered carriers.
func (r *CarrierRegistry) List() []domain.CarrierCode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]domain.CarrierCode, 0, len(r.carriers))
	for code := range r.carriers {
		codes = append(codes, code)
	}
	return codes
}
