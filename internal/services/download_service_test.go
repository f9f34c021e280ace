package services

import (
	"context"
	"testing"
	"time"

	"studio_crm_backend/internal/models"
	"studio_crm_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testReportFiles = []string{"memberships.csv", "attendances.csv", "revenue.csv"}

func waitForRunEnd(t *testing.T, svc DownloadService) models.DownloadProgress {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		progress := svc.Progress()
		if !progress.Running {
			return progress
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("download run did not finish in time")
	return models.DownloadProgress{}
}

func TestDownloadRunCompletes(t *testing.T) {
	repo := repositories.NewDownloadRepository(testReportFiles)
	svc := NewDownloadService(repo, time.Millisecond)

	runID, err := svc.Start(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	progress := waitForRunEnd(t, svc)

	assert.Equal(t, runID, progress.RunID)
	assert.Equal(t, 3, progress.Total)
	assert.Equal(t, 3, progress.Downloaded)
	assert.Equal(t, 100, progress.Percent)
	for _, fs := range progress.Files {
		assert.Equal(t, models.DownloadDownloaded, fs.Status)
	}
}

func TestDownloadStartWhileRunning(t *testing.T) {
	repo := repositories.NewDownloadRepository(testReportFiles)
	svc := NewDownloadService(repo, 200*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := svc.Start(ctx)
	require.NoError(t, err)

	_, err = svc.Start(ctx)
	assert.ErrorIs(t, err, ErrDownloadInProgress)

	cancel()
	waitForRunEnd(t, svc)
}

func TestDownloadResetRefusedWhileRunning(t *testing.T) {
	repo := repositories.NewDownloadRepository(testReportFiles)
	svc := NewDownloadService(repo, 200*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := svc.Start(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Reset(), ErrDownloadInProgress)

	cancel()
	waitForRunEnd(t, svc)
}

func TestDownloadCancelRestoresInFlightFile(t *testing.T) {
	repo := repositories.NewDownloadRepository(testReportFiles)
	svc := NewDownloadService(repo, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	_, err := svc.Start(ctx)
	require.NoError(t, err)
	cancel()

	progress := waitForRunEnd(t, svc)

	// Nothing completed; the file caught mid-transfer went back to available.
	assert.Equal(t, 0, progress.Downloaded)
	for _, fs := range progress.Files {
		assert.Equal(t, models.DownloadAvailable, fs.Status)
	}
}

func TestDownloadSecondRunSkipsDownloadedFiles(t *testing.T) {
	repo := repositories.NewDownloadRepository(testReportFiles)
	require.NoError(t, repo.SetStatus("memberships.csv", models.DownloadDownloaded))

	svc := NewDownloadService(repo, time.Millisecond)
	_, err := svc.Start(context.Background())
	require.NoError(t, err)

	progress := waitForRunEnd(t, svc)
	assert.Equal(t, 3, progress.Downloaded)
}

func TestDownloadReset(t *testing.T) {
	repo := repositories.NewDownloadRepository(testReportFiles)
	svc := NewDownloadService(repo, time.Millisecond)

	_, err := svc.Start(context.Background())
	require.NoError(t, err)
	waitForRunEnd(t, svc)

	require.NoError(t, svc.Reset())

	progress := svc.Progress()
	assert.Equal(t, 0, progress.Downloaded)
	assert.Equal(t, 0, progress.Percent)
	for _, fs := range progress.Files {
		assert.Equal(t, models.DownloadAvailable, fs.Status)
	}
}
