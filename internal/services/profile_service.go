package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"studio_crm_backend/internal/csvio"
	"studio_crm_backend/internal/models"
	"studio_crm_backend/internal/repositories"
)

// --- ProfileService Interface ---
type ProfileService interface {
	ListProfiles() ([]models.CustomerProfile, error)
	Summary() (*models.ProfileSummary, error)
	Export(format string, ref time.Time) (*ExportArtifact, error)
}

// --- profileService Implementation ---
type profileService struct {
	datasets repositories.DatasetRepository
}

// NewProfileService creates a new instance of ProfileService.
func NewProfileService(datasets repositories.DatasetRepository) ProfileService {
	return &profileService{datasets: datasets}
}

func (s *profileService) load() ([]models.CustomerProfile, error) {
	raw, err := s.datasets.Get(repositories.DatasetCustomerProfiles)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrDatasetNotFound
		}
		return nil, fmt.Errorf("failed to read customer profiles dataset: %w", err)
	}

	doc, err := csvio.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
	}

	profiles := make([]models.CustomerProfile, 0, len(doc.Records))
	for _, rec := range doc.Records {
		profiles = append(profiles, models.CustomerProfile{
			CustomerName:                rec.Get("CustomerName"),
			MobileCode:                  rec.Get("MobileCode"),
			Mobile:                      rec.Get("Mobile"),
			Email:                       rec.Get("Email"),
			DateOfBirth:                 rec.Get("DateOfBirth"),
			JoinedDate:                  rec.Get("JoinedDate"),
			Completed:                   rec.Number("Completed"),
			Cancelled:                   rec.Number("Cancelled"),
			DateJoined:                  rec.Get("Date joined"),
			DaysSinceLastClass:          rec.Get("Days since last class"),
			DaysSincePackagePurchase:    rec.Get("Days since package purchase"),
			DaysSinceMembershipPurchase: rec.Get("Days since membership purchase"),
			ProfileTotalSpent:           rec.Number("Profile Total Spent"),
			ProfileTotalAttended:        rec.Number("Profile Total Attended"),
			AverageRevenue:              rec.Number("Average Revenue"),
		})
	}
	return profiles, nil
}

// ListProfiles returns all customer profiles sorted by total spend, highest
// first.
func (s *profileService) ListProfiles() ([]models.CustomerProfile, error) {
	profiles, err := s.load()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].ProfileTotalSpent > profiles[j].ProfileTotalSpent
	})
	return profiles, nil
}

// Summary computes the customer cards: headcount, revenue total and the two
// averages, guarding both divisions against empty denominators.
func (s *profileService) Summary() (*models.ProfileSummary, error) {
	profiles, err := s.load()
	if err != nil {
		return nil, err
	}

	summary := models.ProfileSummary{TotalCustomers: len(profiles)}
	var totalAttended float64
	for _, p := range profiles {
		summary.TotalRevenue += p.ProfileTotalSpent
		totalAttended += p.ProfileTotalAttended
	}
	if summary.TotalCustomers > 0 {
		summary.AvgRevenuePerCustomer = summary.TotalRevenue / float64(summary.TotalCustomers)
	}
	if totalAttended > 0 {
		summary.AvgRevenuePerClass = summary.TotalRevenue / totalAttended
	}
	return &summary, nil
}

// Export serves the stored dataset text back as a download; the spreadsheet
// variant additionally gets the BOM-and-sanitize treatment.
func (s *profileService) Export(format string, ref time.Time) (*ExportArtifact, error) {
	raw, err := s.datasets.Get(repositories.DatasetCustomerProfiles)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrDatasetNotFound
		}
		return nil, fmt.Errorf("failed to read customer profiles dataset: %w", err)
	}
	return buildArtifact("customer_profiles", raw, format, ref)
}
