package services

import (
	"strings"
	"testing"
	"time"

	"studio_crm_backend/internal/models"
	"studio_crm_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference instant used across classification tests: 26 Nov 2025, 10:00 local.
var testRef = time.Date(2025, 11, 26, 10, 0, 0, 0, time.Local)

func finiteMember(expiration, lastBooking string) models.Member {
	return models.Member{
		FirstName:       "Theo",
		LastName:        "Tedjasasmita",
		Mobile:          "+62 87889885152",
		Category:        "5 Class Pack",
		Price:           750000,
		ExpirationDate:  expiration,
		LastBookingDate: lastBooking,
		Status:          "Active",
	}
}

func unlimitedMember(status, lastBooking, renewsOn string) models.Member {
	return models.Member{
		FirstName:       "Helena",
		LastName:        "S",
		Mobile:          "+62 8119187117",
		Category:        "Unlimited Monthly",
		Price:           2500000,
		ExpirationDate:  "Unlimited",
		LastBookingDate: lastBooking,
		Status:          status,
		RenewsOn:        renewsOn,
	}
}

func TestClassifyFiniteStatuses(t *testing.T) {
	tests := []struct {
		name        string
		expiration  string
		lastBooking string
		want        models.StatusCode
	}{
		{"active", "26/12/25", "20/11/25", models.StatusActive},
		{"expiring within window", "05/12/25", "20/11/25", models.StatusExpiring},
		{"expired", "10/11/25", "20/11/25", models.StatusExpired},
		{"dormant beats expiring", "05/12/25", "01/10/25", models.StatusDormant},
		{"expired beats dormant", "10/11/25", "01/10/25", models.StatusExpired},
		{"no expiry is unknown", "", "20/11/25", models.StatusUnknown},
		{"unparseable expiry is unknown", "soon", "20/11/25", models.StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(finiteMember(tt.expiration, tt.lastBooking), testRef)
			assert.Equal(t, tt.want, got.CalculatedStatus.Code)
		})
	}
}

func TestClassifyFiniteMissingBookingDate(t *testing.T) {
	// A member with no booking history and a past expiry must classify as
	// expired, never dormant, and never panic on the absent date.
	got := Classify(finiteMember("10/11/25", ""), testRef)

	assert.Equal(t, models.StatusExpired, got.CalculatedStatus.Code)
	assert.False(t, got.IsDormant)
	assert.Nil(t, got.DaysSinceLastVisit)
}

func TestClassifyUnlimitedStatuses(t *testing.T) {
	tests := []struct {
		name        string
		status      string
		lastBooking string
		want        models.MemberStatus
	}{
		{"active", "Active", "20/11/25", models.MemberStatus{Code: models.StatusActive}},
		{"unpaid", "Unpaid", "20/11/25", models.MemberStatus{Code: models.StatusUnpaid}},
		{"overdue folds into unpaid", "Overdue", "20/11/25", models.MemberStatus{Code: models.StatusUnpaid}},
		{"frozen", "Frozen", "20/11/25", models.MemberStatus{Code: models.StatusFrozen}},
		{"source status wins over stale booking", "Active", "01/10/25", models.MemberStatus{Code: models.StatusActive}},
		{"unrecognized with stale booking is dormant", "On Hold", "01/10/25", models.MemberStatus{Code: models.StatusDormant}},
		{"unrecognized with recent booking passes through", "On Hold", "20/11/25", models.MemberStatus{Code: models.StatusOther, Raw: "on hold"}},
		{"lowercase known status collapses onto code", "FROZEN", "20/11/25", models.MemberStatus{Code: models.StatusFrozen}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(unlimitedMember(tt.status, tt.lastBooking, "10/12/25"), testRef)
			assert.Equal(t, tt.want, got.CalculatedStatus)
		})
	}
}

func TestClassifyFlagsAreIndependent(t *testing.T) {
	// An unlimited Active member with a 40-day-old booking keeps the active
	// status while still raising the dormancy flag.
	got := Classify(unlimitedMember("Active", "17/10/25", ""), testRef)

	assert.Equal(t, models.StatusActive, got.CalculatedStatus.Code)
	assert.True(t, got.IsDormant)
	assert.False(t, got.IsExpired)
	require.NotNil(t, got.DaysSinceLastVisit)
	assert.Equal(t, 40, *got.DaysSinceLastVisit)
}

func TestClassifyExpiringSoon(t *testing.T) {
	// Finite: within 14 days and strictly in the future.
	assert.True(t, Classify(finiteMember("05/12/25", "20/11/25"), testRef).IsExpiringSoon)
	assert.False(t, Classify(finiteMember("26/12/25", "20/11/25"), testRef).IsExpiringSoon)
	assert.False(t, Classify(finiteMember("10/11/25", "20/11/25"), testRef).IsExpiringSoon)

	// Unlimited: driven by renews-on, with no lower bound so an overdue
	// renewal still flags.
	assert.True(t, Classify(unlimitedMember("Active", "20/11/25", "05/12/25"), testRef).IsExpiringSoon)
	assert.True(t, Classify(unlimitedMember("Unpaid", "20/11/25", "20/11/25"), testRef).IsExpiringSoon)
	assert.False(t, Classify(unlimitedMember("Active", "20/11/25", "26/12/25"), testRef).IsExpiringSoon)
	assert.False(t, Classify(unlimitedMember("Active", "20/11/25", ""), testRef).IsExpiringSoon)
}

func TestClassifyNextStepPrecedence(t *testing.T) {
	// Expired outranks everything.
	expired := Classify(finiteMember("10/11/25", "01/10/25"), testRef)
	assert.Equal(t, "Send offer", expired.NextStep)

	// Expiring outranks dormant.
	expiring := Classify(finiteMember("05/12/25", "20/11/25"), testRef)
	assert.Equal(t, "WhatsApp reminder", expiring.NextStep)

	dormant := Classify(finiteMember("26/12/25", "01/10/25"), testRef)
	assert.Equal(t, "Call", dormant.NextStep)

	healthy := Classify(finiteMember("26/12/25", "20/11/25"), testRef)
	assert.Equal(t, "", healthy.NextStep)
}

func TestClassifyIsPure(t *testing.T) {
	m := finiteMember("05/12/25", "01/10/25")
	first := Classify(m, testRef)
	second := Classify(m, testRef)
	assert.Equal(t, first, second)
}

func TestClassifyFullName(t *testing.T) {
	got := Classify(models.Member{FirstName: "Randy", LastName: ""}, testRef)
	assert.Equal(t, "Randy", got.FullName)
}

const membersCSV = `First Name,Last Name,Mobile,Category,Price,Expiration Date,Last Booking Date,Status,Renews On
Arlene,Tjahja,+62 818785005,10 Class Pack,1500000,26/12/25,20/11/25,Active,
Jonathan,Edward,+62 87878461661,5 Class Pack,750000,10/11/25,,Active,
Helena,S,+62 8119187117,Unlimited Monthly,2500000,Unlimited,20/11/25,Active,05/12/25`

func newMemberFixture(t *testing.T, csv string) (MemberService, repositories.DatasetRepository) {
	t.Helper()
	datasets := repositories.NewDatasetRepository()
	if csv != "" {
		datasets.Save(repositories.DatasetMembers, csv)
	}
	return NewMemberService(datasets, "Bang! Studio"), datasets
}

func TestListMembers(t *testing.T) {
	svc, _ := newMemberFixture(t, membersCSV)

	members, err := svc.ListMembers(testRef)
	require.NoError(t, err)
	require.Len(t, members, 3)

	assert.Equal(t, models.StatusActive, members[0].CalculatedStatus.Code)
	assert.Equal(t, models.StatusExpired, members[1].CalculatedStatus.Code)
	assert.Equal(t, models.StatusActive, members[2].CalculatedStatus.Code)
	assert.True(t, members[2].IsExpiringSoon)

	for _, m := range members {
		assert.True(t, strings.HasPrefix(m.WhatsAppLink, "https://wa.me/62"), "link %q", m.WhatsAppLink)
	}
}

func TestListMembersDatasetMissing(t *testing.T) {
	svc, _ := newMemberFixture(t, "")
	_, err := svc.ListMembers(testRef)
	assert.ErrorIs(t, err, ErrDatasetNotFound)
}

func TestListMembersMalformedDataset(t *testing.T) {
	svc, datasets := newMemberFixture(t, "")
	datasets.Save(repositories.DatasetMembers, "just a header")

	_, err := svc.ListMembers(testRef)
	assert.ErrorIs(t, err, ErrMalformedCSV)
}

func TestOutreachMessage(t *testing.T) {
	svc, _ := newMemberFixture(t, membersCSV)

	expired := Classify(finiteMember("10/11/25", ""), testRef)
	assert.Equal(t, "Hi Theo, your 5 Class Pack has expired. Would you like to renew?", svc.OutreachMessage(expired))

	dormant := Classify(finiteMember("26/12/25", "01/10/25"), testRef)
	assert.Equal(t, "Hi Theo, we miss you at Bang! Studio. Would you like to book a class soon?", svc.OutreachMessage(dormant))
}
