// Package seed holds the sample datasets the dashboard boots with, mirroring
// the exports the studio pulls from its booking platform. A PUT on the
// dataset API replaces them wholesale.
package seed

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"studio_crm_backend/internal/repositories"
)

//go:embed data/*.csv
var dataFS embed.FS

var datasetFiles = map[string]string{
	repositories.DatasetMembers:          "data/members.csv",
	repositories.DatasetExpiringPlans:    "data/expiring_plans.csv",
	repositories.DatasetCustomerProfiles: "data/customer_profiles.csv",
}

// ReportFiles is the default list for the simulated download flow, in the
// order the files are processed.
var ReportFiles = []string{
	"expiringPlans.csv",
	"memberships (1).csv",
	"packages.csv",
	"customer_report_20220911.csv",
	"class_attendance_20251004_to_20251103.csv",
	"daily_transactions_20251030.csv",
	"sales_by_pricing_plan_20251004_to_20251103.csv",
	"attendance-with-revenue_20251004_to_20251103.csv",
	"sales_overtime_20251004_to_20251103.csv",
	"sales_overtime_20251103 (1).csv",
	"customers_activities (1).csv",
}

// LoadDefaults stores every embedded sample dataset into the repository.
func LoadDefaults(datasets repositories.DatasetRepository) error {
	for key, path := range datasetFiles {
		raw, err := dataFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read embedded dataset %s: %w", path, err)
		}
		datasets.Save(key, string(raw))
	}
	return nil
}

// LoadFromDir overrides datasets from <dir>/<key>.csv files. Keys without a
// file keep their embedded defaults.
func LoadFromDir(datasets repositories.DatasetRepository, dir string) error {
	for key := range datasetFiles {
		path := filepath.Join(dir, key+".csv")
		raw, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("failed to read dataset file %s: %w", path, err)
		}
		datasets.Save(key, string(raw))
	}
	return nil
}
