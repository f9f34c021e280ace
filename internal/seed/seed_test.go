package seed

import (
	"os"
	"path/filepath"
	"testing"

	"studio_crm_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	datasets := repositories.NewDatasetRepository()
	require.NoError(t, LoadDefaults(datasets))

	for _, key := range []string{
		repositories.DatasetMembers,
		repositories.DatasetExpiringPlans,
		repositories.DatasetCustomerProfiles,
	} {
		raw, err := datasets.Get(key)
		require.NoError(t, err, "dataset %q", key)
		assert.NotEmpty(t, raw)
	}
}

func TestLoadFromDirOverridesSomeKeys(t *testing.T) {
	datasets := repositories.NewDatasetRepository()
	require.NoError(t, LoadDefaults(datasets))

	dir := t.TempDir()
	custom := "First Name,Last Name\nTest,Member"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "members.csv"), []byte(custom), 0o644))

	require.NoError(t, LoadFromDir(datasets, dir))

	raw, err := datasets.Get(repositories.DatasetMembers)
	require.NoError(t, err)
	assert.Equal(t, custom, raw)

	// Keys without an override file keep the embedded default.
	raw, err = datasets.Get(repositories.DatasetExpiringPlans)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
}

func TestReportFilesListed(t *testing.T) {
	assert.NotEmpty(t, ReportFiles)
	assert.Contains(t, ReportFiles, "expiringPlans.csv")
}
