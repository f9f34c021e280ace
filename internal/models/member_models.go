package models

import "encoding/json"

// StatusCode is the closed set of derived member lifecycle states.
type StatusCode string

const (
	StatusActive   StatusCode = "active"
	StatusUnpaid   StatusCode = "unpaid"
	StatusFrozen   StatusCode = "frozen"
	StatusDormant  StatusCode = "dormant"
	StatusExpired  StatusCode = "expired"
	StatusExpiring StatusCode = "expiring"
	StatusUnknown  StatusCode = "unknown"
	// StatusOther carries a raw source status that matched no fixed case.
	// The original string is preserved on MemberStatus.Raw.
	StatusOther StatusCode = "other"
)

// MemberStatus is the classification result. For StatusOther the lowercased
// raw source status is kept alongside the code instead of widening the enum.
type MemberStatus struct {
	Code StatusCode `json:"code"`
	Raw  string     `json:"raw,omitempty"`
}

// String returns the value rendered in tables and exports: the code itself,
// or the preserved raw status for the pass-through case.
func (s MemberStatus) String() string {
	if s.Code == StatusOther && s.Raw != "" {
		return s.Raw
	}
	return string(s.Code)
}

// Display maps the lifecycle code to the label shown on the dashboard.
func (s MemberStatus) Display() string {
	switch s.Code {
	case StatusActive:
		return "Active"
	case StatusUnpaid:
		return "Unpaid"
	case StatusFrozen:
		return "Frozen"
	case StatusDormant:
		return "Dormant"
	case StatusExpired:
		return "Expired"
	case StatusExpiring:
		return "Expiring Soon"
	case StatusUnknown:
		return "Unknown"
	}
	return "Active"
}

// MarshalJSON keeps the wire shape stable for the presentation layer.
func (s MemberStatus) MarshalJSON() ([]byte, error) {
	type alias MemberStatus
	return json.Marshal(struct {
		alias
		Display string `json:"display"`
	}{alias(s), s.Display()})
}

// Member is one raw membership row. Date-bearing fields hold either a valid
// DD/MM/YY string, the "Unlimited" sentinel (expiration only), or "".
type Member struct {
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Mobile          string  `json:"mobile"`
	Category        string  `json:"category"`
	Price           float64 `json:"price"`
	ExpirationDate  string  `json:"expiration_date"`
	LastBookingDate string  `json:"last_booking_date"`
	Status          string  `json:"status"`
	RenewsOn        string  `json:"renews_on"`
}

// Unlimited reports whether the membership has no fixed expiration date.
func (m Member) Unlimited() bool {
	return m.ExpirationDate == "Unlimited"
}

// ClassifiedMember is a Member augmented with derived lifecycle fields.
// Computed once per load against a fixed reference time; never mutated after.
type ClassifiedMember struct {
	Member

	CalculatedStatus   MemberStatus `json:"calculated_status"`
	IsExpired          bool         `json:"is_expired"`
	IsExpiringSoon     bool         `json:"is_expiring_soon"`
	IsDormant          bool         `json:"is_dormant"`
	FullName           string       `json:"full_name"`
	DaysSinceLastVisit *int         `json:"days_since_last_visit"`
	NextStep           string       `json:"next_step"`
	WhatsAppLink       string       `json:"whatsapp_link,omitempty"`
}

// AtRisk reports whether the member belongs to the outreach set.
func (m ClassifiedMember) AtRisk() bool {
	return m.IsExpired || m.IsDormant || m.IsExpiringSoon
}

// RelevantExpiry is the date string driving renewal reminders: renews-on for
// unlimited memberships, the expiration date otherwise.
func (m ClassifiedMember) RelevantExpiry() string {
	if m.Unlimited() {
		return m.RenewsOn
	}
	return m.ExpirationDate
}
