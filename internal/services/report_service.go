package services

import (
	"errors"
	"fmt"
	"time"

	"studio_crm_backend/internal/csvio"
	"studio_crm_backend/internal/models"
	"studio_crm_backend/pkg/utils"

	"github.com/google/uuid"
)

// --- Custom Service Errors for reporting ---
var (
	ErrUnknownSegment = errors.New("unknown export segment")
	ErrUnknownFormat  = errors.New("unknown export format")
)

// Export segments for the at-risk outreach downloads.
const (
	SegmentAll      = "all"
	SegmentExpired  = "expired"
	SegmentDormant  = "dormant"
	SegmentExpiring = "expiring"
)

// Export formats.
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
)

const renewalWeeks = 4

// ExportArtifact is a generated download: content plus the metadata the
// handler needs to serve it as a file.
type ExportArtifact struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"-"`
}

// --- ReportService Interface ---
type ReportService interface {
	Summary(ref time.Time) (*models.DashboardSummary, error)
	RenewalBuckets(ref time.Time) ([]models.RenewalBucket, error)
	AtRisk(ref time.Time) ([]models.ClassifiedMember, error)
	ExportMembers(segment, format string, ref time.Time) (*ExportArtifact, error)
}

// --- reportService Implementation ---
type reportService struct {
	members MemberService
}

// NewReportService creates a new instance of ReportService.
func NewReportService(members MemberService) ReportService {
	return &reportService{members: members}
}

// Summary tallies the classified set. Each predicate is independent, so one
// record can land in several non-total buckets.
func (s *reportService) Summary(ref time.Time) (*models.DashboardSummary, error) {
	classified, err := s.members.ListMembers(ref)
	if err != nil {
		return nil, err
	}

	summary := models.DashboardSummary{}
	summary.Members.Total = len(classified)
	for _, m := range classified {
		if m.CalculatedStatus.Code == models.StatusActive {
			summary.Members.Active++
			summary.Revenue.ActiveRevenue += m.Price
		}
		if m.IsExpiringSoon {
			summary.Members.Expiring++
			summary.Revenue.PotentialRevenue += m.Price
		}
		if m.IsExpired {
			summary.Members.Expired++
		}
		if m.IsDormant {
			summary.Members.Dormant++
		}
	}
	return &summary, nil
}

// RenewalBuckets partitions the next four non-overlapping 7-day windows
// starting at the reference day and counts expiring members into the first
// window whose inclusive [start, start+6d] range contains their relevant
// expiry date. Dates outside all windows are silently dropped.
func (s *reportService) RenewalBuckets(ref time.Time) ([]models.RenewalBucket, error) {
	classified, err := s.members.ListMembers(ref)
	if err != nil {
		return nil, err
	}

	day := utils.Midnight(ref)
	buckets := make([]models.RenewalBucket, renewalWeeks)
	starts := make([]time.Time, renewalWeeks)
	ends := make([]time.Time, renewalWeeks)
	for i := 0; i < renewalWeeks; i++ {
		starts[i] = day.AddDate(0, 0, i*7)
		ends[i] = starts[i].AddDate(0, 0, 6)
		buckets[i] = models.RenewalBucket{
			Label:     utils.FormatDate(starts[i]) + " - " + utils.FormatDate(ends[i]),
			WeekStart: utils.FormatDate(starts[i]),
			WeekEnd:   utils.FormatDate(ends[i]),
		}
	}

	for _, m := range classified {
		if !m.IsExpiringSoon {
			continue
		}
		expiry, ok := utils.ParseOptionalDate(m.RelevantExpiry())
		if !ok {
			continue
		}
		for i := 0; i < renewalWeeks; i++ {
			if !expiry.Before(starts[i]) && !expiry.After(ends[i]) {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets, nil
}

// AtRisk returns the outreach set: the union of expired, dormant and
// expiring-soon members. Each record appears once, in dataset order.
func (s *reportService) AtRisk(ref time.Time) ([]models.ClassifiedMember, error) {
	classified, err := s.members.ListMembers(ref)
	if err != nil {
		return nil, err
	}

	atRisk := make([]models.ClassifiedMember, 0)
	for _, m := range classified {
		if m.AtRisk() {
			atRisk = append(atRisk, m)
		}
	}
	return atRisk, nil
}

// ExportMembers builds the outreach CSV for one segment: name, normalized
// phone and the personalized message, quoted per the export rules.
func (s *reportService) ExportMembers(segment, format string, ref time.Time) (*ExportArtifact, error) {
	classified, err := s.members.ListMembers(ref)
	if err != nil {
		return nil, err
	}

	var include func(models.ClassifiedMember) bool
	switch segment {
	case SegmentAll:
		include = func(models.ClassifiedMember) bool { return true }
	case SegmentExpired:
		include = func(m models.ClassifiedMember) bool { return m.IsExpired }
	case SegmentDormant:
		include = func(m models.ClassifiedMember) bool { return m.IsDormant }
	case SegmentExpiring:
		include = func(m models.ClassifiedMember) bool { return m.IsExpiringSoon }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSegment, segment)
	}

	headers := []string{"Name", "Phone", "Personalized Message"}
	rows := make([][]string, 0, len(classified))
	for _, m := range classified {
		if !include(m) {
			continue
		}
		rows = append(rows, []string{
			m.FullName,
			utils.NormalizePhone(m.Mobile),
			s.members.OutreachMessage(m),
		})
	}

	return buildArtifact("members_"+segment, csvio.Write(headers, rows), format, ref)
}

// buildArtifact finalizes export content for the requested format.
func buildArtifact(domain, csvText, format string, ref time.Time) (*ExportArtifact, error) {
	artifact := &ExportArtifact{ID: uuid.NewString()}
	switch format {
	case FormatCSV, "":
		artifact.Filename = csvio.ExportFilename(domain, ref, "csv")
		artifact.ContentType = "text/csv; charset=utf-8"
		artifact.Content = []byte(csvText)
	case FormatExcel:
		artifact.Filename = csvio.ExportFilename(domain, ref, "xls")
		artifact.ContentType = "application/vnd.ms-excel; charset=utf-8"
		artifact.Content = []byte(csvio.ExcelVariant(csvText))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return artifact, nil
}
