package repositories

import "sync"

// Dataset keys known to the dashboard. The store accepts arbitrary keys, but
// these are the ones the views read.
const (
	DatasetMembers          = "members"
	DatasetExpiringPlans    = "expiring_plans"
	DatasetCustomerProfiles = "customer_profiles"
)

// DatasetRepository holds the last-loaded raw CSV text per dataset key.
// There is exactly one logical current dataset per key at a time, replaced
// wholesale on each load and never mutated incrementally.
type DatasetRepository interface {
	Save(key, rawCSV string)
	Get(key string) (string, error)
	Delete(key string) error
	Keys() []string
}

type datasetRepository struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewDatasetRepository creates an empty in-memory dataset store.
func NewDatasetRepository() DatasetRepository {
	return &datasetRepository{data: make(map[string]string)}
}

func (r *datasetRepository) Save(key, rawCSV string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = rawCSV
}

func (r *datasetRepository) Get(key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	raw, ok := r.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return raw, nil
}

func (r *datasetRepository) Delete(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[key]; !ok {
		return ErrNotFound
	}
	delete(r.data, key)
	return nil
}

func (r *datasetRepository) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.data))
	for k := range r.data {
		keys = append(keys, k)
	}
	return keys
}
