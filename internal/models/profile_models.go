package models

// CustomerProfile is one row of the customer report export. Numeric columns
// are coerced with the silent-default-to-0 policy; everything else stays as
// the source string.
type CustomerProfile struct {
	CustomerName                string  `json:"customer_name"`
	MobileCode                  string  `json:"mobile_code"`
	Mobile                      string  `json:"mobile"`
	Email                       string  `json:"email"`
	DateOfBirth                 string  `json:"date_of_birth"`
	JoinedDate                  string  `json:"joined_date"`
	Completed                   float64 `json:"completed"`
	Cancelled                   float64 `json:"cancelled"`
	DateJoined                  string  `json:"date_joined"`
	DaysSinceLastClass          string  `json:"days_since_last_class"`
	DaysSincePackagePurchase    string  `json:"days_since_package_purchase"`
	DaysSinceMembershipPurchase string  `json:"days_since_membership_purchase"`
	ProfileTotalSpent           float64 `json:"profile_total_spent"`
	ProfileTotalAttended        float64 `json:"profile_total_attended"`
	AverageRevenue              float64 `json:"average_revenue"`
}

// ProfileSummary is the customer-profiles card row.
type ProfileSummary struct {
	TotalCustomers        int     `json:"total_customers"`
	TotalRevenue          float64 `json:"total_revenue"`
	AvgRevenuePerCustomer float64 `json:"avg_revenue_per_customer"`
	AvgRevenuePerClass    float64 `json:"avg_revenue_per_class"`
}
