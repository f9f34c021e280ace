package repositories

import (
	"sync"

	"studio_crm_backend/internal/models"
)

// DownloadRepository tracks per-file download state for the simulated report
// export flow. File order is fixed at construction and preserved in listings.
type DownloadRepository interface {
	Files() []string
	Statuses() []models.FileStatus
	Status(filename string) (string, error)
	SetStatus(filename, status string) error
	Reset()
}

type downloadRepository struct {
	mu       sync.RWMutex
	order    []string
	statuses map[string]string
}

// NewDownloadRepository creates a status store with every file "available".
func NewDownloadRepository(files []string) DownloadRepository {
	statuses := make(map[string]string, len(files))
	order := make([]string, len(files))
	for i, f := range files {
		order[i] = f
		statuses[f] = models.DownloadAvailable
	}
	return &downloadRepository{order: order, statuses: statuses}
}

func (r *downloadRepository) Files() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	files := make([]string, len(r.order))
	copy(files, r.order)
	return files
}

func (r *downloadRepository) Statuses() []models.FileStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.FileStatus, 0, len(r.order))
	for _, f := range r.order {
		out = append(out, models.FileStatus{Filename: f, Status: r.statuses[f]})
	}
	return out
}

func (r *downloadRepository) Status(filename string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	status, ok := r.statuses[filename]
	if !ok {
		return "", ErrNotFound
	}
	return status, nil
}

func (r *downloadRepository) SetStatus(filename, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.statuses[filename]; !ok {
		return ErrNotFound
	}
	r.statuses[filename] = status
	return nil
}

func (r *downloadRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.order {
		r.statuses[f] = models.DownloadAvailable
	}
}
