package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"studio_crm_backend/internal/csvio"
	"studio_crm_backend/internal/models"
	"studio_crm_backend/internal/repositories"
	"studio_crm_backend/pkg/utils"
)

// --- Custom Service Errors shared by the dataset-backed services ---
var (
	ErrDatasetNotFound = errors.New("dataset has not been loaded")
	ErrMalformedCSV    = errors.New("malformed csv data")
)

// Lifecycle windows. A member is dormant after 30 days without a booking and
// expiring within 14 days of the membership end.
const (
	dormancyWindow = 30 * 24 * time.Hour
	expiringWindow = 14 * 24 * time.Hour
)

// Member dataset header contract. Consumers match on these exact strings.
const (
	headerFirstName   = "First Name"
	headerLastName    = "Last Name"
	headerMobile      = "Mobile"
	headerCategory    = "Category"
	headerPrice       = "Price"
	headerExpiration  = "Expiration Date"
	headerLastBooking = "Last Booking Date"
	headerStatus      = "Status"
	headerRenewsOn    = "Renews On"
)

// Classify derives the lifecycle status, risk flags and recommended next step
// for one member. It is a pure function of the record and the reference time:
// same inputs on the same instant always yield the same result.
func Classify(m models.Member, ref time.Time) models.ClassifiedMember {
	classified := models.ClassifiedMember{
		Member:           m,
		CalculatedStatus: statusOf(m, ref),
		IsExpired:        isExpired(m, ref),
		IsExpiringSoon:   isExpiringSoon(m, ref),
		IsDormant:        isDormant(m, ref),
		FullName:         strings.TrimSpace(m.FirstName + " " + m.LastName),
	}
	classified.DaysSinceLastVisit = daysSinceLastVisit(m, ref)
	classified.NextStep = nextStep(classified)
	return classified
}

// statusOf evaluates the precedence rules. Unlimited memberships are driven
// by the raw source status first; finite memberships by the expiry date.
func statusOf(m models.Member, ref time.Time) models.MemberStatus {
	lastBooking, hasBooking := utils.ParseOptionalDate(m.LastBookingDate)

	if m.Unlimited() {
		switch m.Status {
		case "Active":
			return models.MemberStatus{Code: models.StatusActive}
		case "Unpaid", "Overdue":
			return models.MemberStatus{Code: models.StatusUnpaid}
		case "Frozen":
			return models.MemberStatus{Code: models.StatusFrozen}
		}
		if hasBooking && ref.Sub(lastBooking) > dormancyWindow {
			return models.MemberStatus{Code: models.StatusDormant}
		}
		return passThroughStatus(m.Status)
	}

	expiry, hasExpiry := utils.ParseOptionalDate(m.ExpirationDate)
	if !hasExpiry {
		return models.MemberStatus{Code: models.StatusUnknown}
	}
	if expiry.Before(ref) {
		return models.MemberStatus{Code: models.StatusExpired}
	}
	// A missing booking date means "not dormant" here, never a fault.
	if hasBooking && ref.Sub(lastBooking) > dormancyWindow {
		return models.MemberStatus{Code: models.StatusDormant}
	}
	if expiry.Sub(ref) <= expiringWindow {
		return models.MemberStatus{Code: models.StatusExpiring}
	}
	return models.MemberStatus{Code: models.StatusActive}
}

// passThroughStatus lowercases an uncontrolled source status. Statuses that
// happen to spell a fixed code collapse onto it; anything else is preserved
// as StatusOther instead of widening the enum.
func passThroughStatus(raw string) models.MemberStatus {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	switch models.StatusCode(lowered) {
	case models.StatusActive, models.StatusUnpaid, models.StatusFrozen,
		models.StatusDormant, models.StatusExpired, models.StatusExpiring,
		models.StatusUnknown:
		return models.MemberStatus{Code: models.StatusCode(lowered)}
	}
	return models.MemberStatus{Code: models.StatusOther, Raw: lowered}
}

func isExpiringSoon(m models.Member, ref time.Time) bool {
	if m.Unlimited() {
		// No lower bound on purpose: a past renews-on date still needs
		// the renewal reminder to fire.
		renewsOn, ok := utils.ParseOptionalDate(m.RenewsOn)
		return ok && renewsOn.Sub(ref) <= expiringWindow
	}
	expiry, ok := utils.ParseOptionalDate(m.ExpirationDate)
	return ok && expiry.Sub(ref) <= expiringWindow && expiry.After(ref)
}

func isExpired(m models.Member, ref time.Time) bool {
	if m.Unlimited() {
		return false
	}
	expiry, ok := utils.ParseOptionalDate(m.ExpirationDate)
	return ok && expiry.Before(ref)
}

func isDormant(m models.Member, ref time.Time) bool {
	lastBooking, ok := utils.ParseOptionalDate(m.LastBookingDate)
	return ok && ref.Sub(lastBooking) > dormancyWindow
}

func daysSinceLastVisit(m models.Member, ref time.Time) *int {
	lastBooking, ok := utils.ParseOptionalDate(m.LastBookingDate)
	if !ok {
		return nil
	}
	days := int(math.Floor(ref.Sub(lastBooking).Hours() / 24))
	return &days
}

// nextStep picks the first matching outreach action; the precedence is fixed
// and exclusive.
func nextStep(m models.ClassifiedMember) string {
	switch {
	case m.IsExpired:
		return "Send offer"
	case m.IsExpiringSoon:
		return "WhatsApp reminder"
	case m.IsDormant:
		return "Call"
	}
	return ""
}

// --- MemberService Interface ---
type MemberService interface {
	ListMembers(ref time.Time) ([]models.ClassifiedMember, error)
	OutreachMessage(m models.ClassifiedMember) string
}

// --- memberService Implementation ---
type memberService struct {
	datasets   repositories.DatasetRepository
	studioName string
}

// NewMemberService creates a new instance of MemberService.
func NewMemberService(datasets repositories.DatasetRepository, studioName string) MemberService {
	return &memberService{
		datasets:   datasets,
		studioName: studioName,
	}
}

// ListMembers parses the current members dataset and classifies every row
// against the reference time. Per-field problems degrade to zero values; only
// a structurally broken dataset is an error.
func (s *memberService) ListMembers(ref time.Time) ([]models.ClassifiedMember, error) {
	raw, err := s.datasets.Get(repositories.DatasetMembers)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrDatasetNotFound
		}
		return nil, fmt.Errorf("failed to read members dataset: %w", err)
	}

	doc, err := csvio.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
	}

	members := make([]models.ClassifiedMember, 0, len(doc.Records))
	for _, rec := range doc.Records {
		classified := Classify(memberFromRecord(rec), ref)
		classified.WhatsAppLink = utils.WhatsAppLink(classified.Mobile, s.OutreachMessage(classified))
		members = append(members, classified)
	}
	return members, nil
}

// OutreachMessage builds the personalized WhatsApp copy for a member.
func (s *memberService) OutreachMessage(m models.ClassifiedMember) string {
	if m.IsExpired {
		return fmt.Sprintf("Hi %s, your %s has expired. Would you like to renew?", m.FirstName, m.Category)
	}
	return fmt.Sprintf("Hi %s, we miss you at %s. Would you like to book a class soon?", m.FirstName, s.studioName)
}

func memberFromRecord(rec csvio.Record) models.Member {
	return models.Member{
		FirstName:       rec.Get(headerFirstName),
		LastName:        rec.Get(headerLastName),
		Mobile:          rec.Get(headerMobile),
		Category:        rec.Get(headerCategory),
		Price:           rec.Number(headerPrice),
		ExpirationDate:  rec.Get(headerExpiration),
		LastBookingDate: rec.Get(headerLastBooking),
		Status:          rec.Get(headerStatus),
		RenewsOn:        rec.Get(headerRenewsOn),
	}
}
