package services

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"studio_crm_backend/internal/models"
	"studio_crm_backend/internal/repositories"
	"studio_crm_backend/pkg/utils"

	"github.com/google/uuid"
)

// --- Custom Service Errors for downloads ---
var (
	ErrDownloadInProgress = errors.New("a download run is already in progress")
)

// --- DownloadService Interface ---
type DownloadService interface {
	Progress() models.DownloadProgress
	Start(ctx context.Context) (string, error)
	Reset() error
}

// --- downloadService Implementation ---
type downloadService struct {
	repo  repositories.DownloadRepository
	delay time.Duration

	mu        sync.Mutex
	running   bool
	lastRunID string
}

// NewDownloadService creates a sequential download simulator with the given
// per-file delay.
func NewDownloadService(repo repositories.DownloadRepository, delay time.Duration) DownloadService {
	return &downloadService{repo: repo, delay: delay}
}

// Progress reports the current per-file statuses and completion percentage.
// Safe to call mid-run; aggregations never depend on completion ordering.
func (s *downloadService) Progress() models.DownloadProgress {
	statuses := s.repo.Statuses()
	downloaded := 0
	for _, fs := range statuses {
		if fs.Status == models.DownloadDownloaded {
			downloaded++
		}
	}

	percent := 0
	if len(statuses) > 0 {
		percent = int(math.Round(float64(downloaded) / float64(len(statuses)) * 100))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return models.DownloadProgress{
		RunID:      s.lastRunID,
		Running:    s.running,
		Files:      statuses,
		Downloaded: downloaded,
		Total:      len(statuses),
		Percent:    percent,
	}
}

// Start launches a run that processes files strictly one at a time in list
// order, skipping files already downloaded. Only one run may be active.
func (s *downloadService) Start(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return "", ErrDownloadInProgress
	}
	runID := uuid.NewString()
	s.running = true
	s.lastRunID = runID
	s.mu.Unlock()

	go s.run(ctx, runID)
	return runID, nil
}

func (s *downloadService) run(ctx context.Context, runID string) {
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	for _, filename := range s.repo.Files() {
		status, err := s.repo.Status(filename)
		if err != nil || status == models.DownloadDownloaded {
			continue
		}

		if err := s.repo.SetStatus(filename, models.DownloadDownloading); err != nil {
			utils.LogError(err, "download run: failed to mark file downloading")
			continue
		}

		select {
		case <-ctx.Done():
			// Shutdown mid-file: put the file back so a later run retries it.
			if err := s.repo.SetStatus(filename, models.DownloadAvailable); err != nil {
				utils.LogError(err, "download run: failed to restore file status")
			}
			utils.LogInfo("Download run cancelled", map[string]interface{}{"run_id": runID, "file": filename})
			return
		case <-time.After(s.delay):
		}

		if err := s.repo.SetStatus(filename, models.DownloadDownloaded); err != nil {
			utils.LogError(err, "download run: failed to mark file downloaded")
		}
	}

	utils.LogInfo("Download run completed", map[string]interface{}{"run_id": runID})
}

// Reset returns every file to "available". Refused while a run is active.
func (s *downloadService) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return ErrDownloadInProgress
	}
	s.repo.Reset()
	return nil
}
