package models

// Plan is one purchased package/membership credit block from the expiring
// plans export. Staff and class columns are opaque display strings.
type Plan struct {
	Type             string  `json:"type"`
	PlanName         string  `json:"plan_name"`
	TotalCredits     float64 `json:"total_credits"`
	RemainingCredits float64 `json:"remaining_credits"`
	PurchasedDate    string  `json:"purchased_date"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	Mobile           string  `json:"mobile"`
	Email            string  `json:"email"`
	FirstClass       string  `json:"first_class"`
	LastClass        string  `json:"last_class"`
	LastClassStaff   string  `json:"last_class_staff"`
	LastClassName    string  `json:"last_class_name"`

	FullName        string `json:"full_name"`
	DaysUntilExpiry *int   `json:"days_until_expiry"`
}

// Alert levels for plan rows, keyed off days until expiry.
const (
	PlanAlertCritical = "critical" // 0..7 days
	PlanAlertWarning  = "warning"  // 8..30 days
	PlanAlertSafe     = "safe"     // beyond 30 days
)

// AlertLevel returns the row highlight class, or "" when the expiry is
// unknown or already passed.
func (p Plan) AlertLevel() string {
	if p.DaysUntilExpiry == nil {
		return ""
	}
	days := *p.DaysUntilExpiry
	switch {
	case days >= 0 && days <= 7:
		return PlanAlertCritical
	case days > 7 && days <= 30:
		return PlanAlertWarning
	case days > 30:
		return PlanAlertSafe
	}
	return ""
}

// PlanSummary is the expiring-plans card row.
type PlanSummary struct {
	TotalPlans       int `json:"total_plans"`
	CriticalPlans    int `json:"critical_plans"`
	AverageDaysToEnd int `json:"average_days_to_expiry"`
}
