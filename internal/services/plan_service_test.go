package services

import (
	"strings"
	"testing"

	"studio_crm_backend/internal/models"
	"studio_crm_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planCSV(rows ...string) string {
	header := "Type,Plan Name,Total Credits,Remaining Credits,Purchased Date,Start Date,End Date," +
		"First Name,Last Name,Mobile,Email,First Class,Last Class,Last Class Staff,Last Class Name"
	return header + "\n" + strings.Join(rows, "\n")
}

func planRow(name, endDate string) string {
	return "Package," + name + ",10,3,09/09/25,27/09/25," + endDate +
		",Arlene,Tjahja,+62 818785005,arlene@example.com,19/09/25,16/10/25,Elvira Wijaya,BANG!"
}

func newPlanFixture(t *testing.T, csv string) PlanService {
	t.Helper()
	datasets := repositories.NewDatasetRepository()
	if csv != "" {
		datasets.Save(repositories.DatasetExpiringPlans, csv)
	}
	return NewPlanService(datasets)
}

func TestListPlansExcludesInternalPlans(t *testing.T) {
	svc := newPlanFixture(t, planCSV(
		planRow("10 Class Pack (30% off)", "28/11/25"),
		planRow("Drop In", "28/11/25"),
		planRow("DROP IN (20% OFF)", "28/11/25"),
		planRow("1 Free Class Pass", "28/11/25"),
		planRow("10 Free Pass (Instructor)", "28/11/25"),
	))

	plans, err := svc.ListPlans(testRef)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "10 Class Pack (30% off)", plans[0].PlanName)
}

func TestListPlansSortedByDaysUntilExpiry(t *testing.T) {
	svc := newPlanFixture(t, planCSV(
		planRow("Pack B", "10/12/25"),
		planRow("Pack A", "28/11/25"),
		planRow("Pack D", ""),
		planRow("Pack C", "20/11/25"),
	))

	plans, err := svc.ListPlans(testRef)
	require.NoError(t, err)
	require.Len(t, plans, 4)

	// Soonest first; already-expired rows lead, unknown expiry sinks last.
	assert.Equal(t, "Pack C", plans[0].PlanName)
	assert.Equal(t, "Pack A", plans[1].PlanName)
	assert.Equal(t, "Pack B", plans[2].PlanName)
	assert.Equal(t, "Pack D", plans[3].PlanName)
	assert.Nil(t, plans[3].DaysUntilExpiry)
}

func TestPlanAlertLevels(t *testing.T) {
	days := func(d int) *int { return &d }

	assert.Equal(t, models.PlanAlertCritical, models.Plan{DaysUntilExpiry: days(0)}.AlertLevel())
	assert.Equal(t, models.PlanAlertCritical, models.Plan{DaysUntilExpiry: days(7)}.AlertLevel())
	assert.Equal(t, models.PlanAlertWarning, models.Plan{DaysUntilExpiry: days(8)}.AlertLevel())
	assert.Equal(t, models.PlanAlertWarning, models.Plan{DaysUntilExpiry: days(30)}.AlertLevel())
	assert.Equal(t, models.PlanAlertSafe, models.Plan{DaysUntilExpiry: days(31)}.AlertLevel())
	assert.Equal(t, "", models.Plan{DaysUntilExpiry: days(-1)}.AlertLevel())
	assert.Equal(t, "", models.Plan{}.AlertLevel())
}

func TestPlanSummary(t *testing.T) {
	svc := newPlanFixture(t, planCSV(
		planRow("Pack A", "28/11/25"), // 2 days, critical
		planRow("Pack B", "10/12/25"), // 14 days
		planRow("Pack C", "20/11/25"), // already expired, ignored by both stats
		planRow("Pack D", ""),         // unknown, ignored by both stats
	))

	summary, err := svc.Summary(testRef)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalPlans)
	assert.Equal(t, 1, summary.CriticalPlans)
	assert.Equal(t, 8, summary.AverageDaysToEnd)
}

func TestPlanSummaryEmptyAverage(t *testing.T) {
	svc := newPlanFixture(t, planCSV(
		planRow("Pack C", "20/11/25"),
		planRow("Pack D", ""),
	))

	summary, err := svc.Summary(testRef)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalPlans)
	assert.Equal(t, 0, summary.CriticalPlans)
	assert.Equal(t, 0, summary.AverageDaysToEnd)
}

func TestPlanExport(t *testing.T) {
	svc := newPlanFixture(t, planCSV(
		planRow("Pack A", "28/11/25"),
		planRow("Drop In", "28/11/25"),
	))

	artifact, err := svc.Export(FormatCSV, testRef)
	require.NoError(t, err)

	assert.Equal(t, "expiring_plans_2025-11-26.csv", artifact.Filename)

	lines := strings.Split(string(artifact.Content), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Type,Plan Name,Total Credits"))
	assert.Contains(t, lines[1], "Pack A")
	assert.Contains(t, lines[1], ",10,3,")
	assert.NotContains(t, string(artifact.Content), "Drop In")
}

func TestPlanServiceDatasetMissing(t *testing.T) {
	svc := newPlanFixture(t, "")

	_, err := svc.ListPlans(testRef)
	assert.ErrorIs(t, err, ErrDatasetNotFound)
	_, err = svc.Summary(testRef)
	assert.ErrorIs(t, err, ErrDatasetNotFound)
	_, err = svc.Export(FormatCSV, testRef)
	assert.ErrorIs(t, err, ErrDatasetNotFound)
}
