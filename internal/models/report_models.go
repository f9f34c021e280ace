package models

// MemberSummary is the dashboard card row: pure tallies over the classified
// set. A record can contribute to more than one non-total bucket.
type MemberSummary struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Expiring int `json:"expiring"`
	Expired  int `json:"expired"`
	Dormant  int `json:"dormant"`
}

// RevenueSnapshot sums membership prices over the active and expiring sets.
type RevenueSnapshot struct {
	ActiveRevenue    float64 `json:"active_revenue"`
	PotentialRevenue float64 `json:"potential_revenue"`
}

// RenewalBucket is one 7-day window of the renewal pipeline chart.
type RenewalBucket struct {
	Label     string `json:"label"` // "DD/MM/YY - DD/MM/YY"
	WeekStart string `json:"week_start"`
	WeekEnd   string `json:"week_end"`
	Count     int    `json:"count"`
}

// DashboardSummary bundles the member cards and the revenue snapshot.
type DashboardSummary struct {
	Members MemberSummary   `json:"members"`
	Revenue RevenueSnapshot `json:"revenue"`
}
