package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"studio_crm_backend/internal/csvio"
	"studio_crm_backend/internal/models"
	"studio_crm_backend/internal/repositories"
	"studio_crm_backend/pkg/utils"
)

// Plan rows whose name contains any of these (case-insensitive) never reach
// an aggregate or a rendered list. The filter runs exactly once per view.
var excludedPlanNames = []string{
	"drop in",
	"1 free class pass",
	"drop in (20% off)",
	"10 free pass (instructor)",
}

// Expiring-plans header contract; the fixed export column order.
var planHeaders = []string{
	"Type", "Plan Name", "Total Credits", "Remaining Credits",
	"Purchased Date", "Start Date", "End Date",
	"First Name", "Last Name", "Mobile", "Email",
	"First Class", "Last Class", "Last Class Staff", "Last Class Name",
}

// --- PlanService Interface ---
type PlanService interface {
	ListPlans(ref time.Time) ([]models.Plan, error)
	Summary(ref time.Time) (*models.PlanSummary, error)
	Export(format string, ref time.Time) (*ExportArtifact, error)
}

// --- planService Implementation ---
type planService struct {
	datasets repositories.DatasetRepository
}

// NewPlanService creates a new instance of PlanService.
func NewPlanService(datasets repositories.DatasetRepository) PlanService {
	return &planService{datasets: datasets}
}

// loadFiltered parses the expiring-plans dataset, derives per-row fields and
// applies the exclusion filter once.
func (s *planService) loadFiltered(ref time.Time) ([]models.Plan, error) {
	raw, err := s.datasets.Get(repositories.DatasetExpiringPlans)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrDatasetNotFound
		}
		return nil, fmt.Errorf("failed to read expiring plans dataset: %w", err)
	}

	doc, err := csvio.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
	}

	plans := make([]models.Plan, 0, len(doc.Records))
	for _, rec := range doc.Records {
		plan := planFromRecord(rec, ref)
		if planExcluded(plan.PlanName) {
			continue
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

func planExcluded(planName string) bool {
	lowered := strings.ToLower(planName)
	for _, excluded := range excludedPlanNames {
		if strings.Contains(lowered, excluded) {
			return true
		}
	}
	return false
}

// ListPlans returns the filtered plans sorted by days until expiry, soonest
// first, rows with an unknown expiry last.
func (s *planService) ListPlans(ref time.Time) ([]models.Plan, error) {
	plans, err := s.loadFiltered(ref)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(plans, func(i, j int) bool {
		a, b := plans[i].DaysUntilExpiry, plans[j].DaysUntilExpiry
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})
	return plans, nil
}

// Summary computes the expiring-plans cards: total, critical (expiring within
// 7 days), and average days to expiry over known non-negative values. The
// average is 0, not NaN, when no such plans exist.
func (s *planService) Summary(ref time.Time) (*models.PlanSummary, error) {
	plans, err := s.loadFiltered(ref)
	if err != nil {
		return nil, err
	}

	summary := models.PlanSummary{TotalPlans: len(plans)}
	var daysSum, daysCount int
	for _, p := range plans {
		if p.DaysUntilExpiry == nil {
			continue
		}
		days := *p.DaysUntilExpiry
		if days < 0 {
			continue
		}
		if days <= 7 {
			summary.CriticalPlans++
		}
		daysSum += days
		daysCount++
	}
	if daysCount > 0 {
		summary.AverageDaysToEnd = int(math.Round(float64(daysSum) / float64(daysCount)))
	}
	return &summary, nil
}

// Export re-serializes the filtered plans with the fixed column order.
func (s *planService) Export(format string, ref time.Time) (*ExportArtifact, error) {
	plans, err := s.loadFiltered(ref)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		rows = append(rows, []string{
			p.Type, p.PlanName,
			formatCredits(p.TotalCredits), formatCredits(p.RemainingCredits),
			p.PurchasedDate, p.StartDate, p.EndDate,
			p.FirstName, p.LastName, p.Mobile, p.Email,
			p.FirstClass, p.LastClass, p.LastClassStaff, p.LastClassName,
		})
	}

	return buildArtifact("expiring_plans", csvio.Write(planHeaders, rows), format, ref)
}

func planFromRecord(rec csvio.Record, ref time.Time) models.Plan {
	plan := models.Plan{
		Type:             rec.Get("Type"),
		PlanName:         rec.Get("Plan Name"),
		TotalCredits:     rec.Number("Total Credits"),
		RemainingCredits: rec.Number("Remaining Credits"),
		PurchasedDate:    rec.Get("Purchased Date"),
		StartDate:        rec.Get("Start Date"),
		EndDate:          rec.Get("End Date"),
		FirstName:        rec.Get("First Name"),
		LastName:         rec.Get("Last Name"),
		Mobile:           rec.Get("Mobile"),
		Email:            rec.Get("Email"),
		FirstClass:       rec.Get("First Class"),
		LastClass:        rec.Get("Last Class"),
		LastClassStaff:   rec.Get("Last Class Staff"),
		LastClassName:    rec.Get("Last Class Name"),
	}
	plan.FullName = strings.TrimSpace(plan.FirstName + " " + plan.LastName)

	if plan.EndDate != "" {
		if days, ok := utils.DaysUntilExpiry(plan.EndDate, ref); ok {
			plan.DaysUntilExpiry = &days
		}
	}
	return plan
}

func formatCredits(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
