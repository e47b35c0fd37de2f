package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/attendance"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/device"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/member"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeAttendanceRepo struct {
	records map[string]attendance.Record // keyed by member_id|date
	byID    map[string]attendance.Record
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		records: make(map[string]attendance.Record),
		byID:    make(map[string]attendance.Record),
	}
}

func (f *fakeAttendanceRepo) put(r attendance.Record) {
	f.records[r.MemberID+"|"+r.Date] = r
	f.byID[r.ID] = r
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	r, ok := f.byID[id]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeAttendanceRepo) GetByMemberAndDate(ctx context.Context, memberID, date string) (attendance.Record, error) {
	r, ok := f.records[memberID+"|"+date]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	f.put(record)
	return record, nil
}

func (f *fakeAttendanceRepo) SetCheckOut(ctx context.Context, id string, record attendance.Record) error {
	stored, ok := f.byID[id]
	if !ok {
		return attendance.ErrRecordNotFound
	}
	stored.CheckOut = record.CheckOut
	f.put(stored)
	return nil
}

func (f *fakeAttendanceRepo) SetValidationStatus(ctx context.Context, id string, status attendance.ValidationStatus, notes *string) error {
	stored, ok := f.byID[id]
	if !ok {
		return attendance.ErrRecordNotFound
	}
	stored.ValidationStatus = status
	if notes != nil {
		stored.Notes = notes
	}
	f.put(stored)
	return nil
}

func (f *fakeAttendanceRepo) Find(ctx context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, id := range filter.MemberIDs {
		for _, r := range f.byID {
			if r.MemberID == id {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) Count(ctx context.Context, filter attendance.Filter) (int64, error) {
	records, _ := f.Find(ctx, filter)
	return int64(len(records)), nil
}

func (f *fakeAttendanceRepo) MemberIDsWithRecordOn(ctx context.Context, memberIDs []string, date string) ([]string, error) {
	var out []string
	for _, id := range memberIDs {
		if _, ok := f.records[id+"|"+date]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

type fakeMemberRepo struct {
	members map[string]member.Member
}

func (f *fakeMemberRepo) GetByID(ctx context.Context, id string) (member.Member, error) {
	m, ok := f.members[id]
	if !ok {
		return member.Member{}, member.ErrMemberNotFound
	}
	return m, nil
}

func (f *fakeMemberRepo) Create(ctx context.Context, m member.Member) (member.Member, error) {
	return m, nil
}

func (f *fakeMemberRepo) Update(ctx context.Context, id string, req member.UpdateMemberRequest) error {
	return nil
}

func (f *fakeMemberRepo) Deactivate(ctx context.Context, id string) error { return nil }

func (f *fakeMemberRepo) ExistsByEmail(ctx context.Context, organizationID, email string) (bool, error) {
	return false, nil
}

func (f *fakeMemberRepo) List(ctx context.Context, organizationID string, filter member.ListFilter) ([]member.Member, error) {
	return nil, nil
}

func (f *fakeMemberRepo) ActiveIDs(ctx context.Context, organizationID string) ([]string, error) {
	var ids []string
	for id, m := range f.members {
		if m.IsActive && m.OrganizationID == organizationID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type fakeDeviceRepo struct {
	cards map[string]device.Card // keyed by uid
}

func (f *fakeDeviceRepo) GetByID(ctx context.Context, id string) (device.Device, error) {
	return device.Device{}, device.ErrDeviceNotFound
}

func (f *fakeDeviceRepo) Create(ctx context.Context, d device.Device) (device.Device, error) {
	return d, nil
}

func (f *fakeDeviceRepo) List(ctx context.Context, organizationID string) ([]device.Device, error) {
	return nil, nil
}

func (f *fakeDeviceRepo) TouchLastSeen(ctx context.Context, id string) error { return nil }

func (f *fakeDeviceRepo) AssignCard(ctx context.Context, c device.Card) (device.Card, error) {
	return c, nil
}

func (f *fakeDeviceRepo) RevokeCard(ctx context.Context, cardID string) error { return nil }

func (f *fakeDeviceRepo) GetCardByUID(ctx context.Context, cardUID string) (device.Card, error) {
	c, ok := f.cards[cardUID]
	if !ok {
		return device.Card{}, device.ErrCardNotFound
	}
	return c, nil
}

func (f *fakeDeviceRepo) CardExists(ctx context.Context, cardUID string) (bool, error) {
	_, ok := f.cards[cardUID]
	return ok, nil
}

func (f *fakeDeviceRepo) ListCardsByMember(ctx context.Context, memberID string) ([]device.Card, error) {
	return nil, nil
}

type fakeNotifier struct {
	sent []notification.Notification
}

func (f *fakeNotifier) List(ctx context.Context, recipientID string, limit, offset int) ([]notification.NotificationResponse, error) {
	return nil, nil
}

func (f *fakeNotifier) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	return 0, nil
}

func (f *fakeNotifier) MarkRead(ctx context.Context, recipientID, notificationID string) error {
	return nil
}

func (f *fakeNotifier) Notify(ctx context.Context, n notification.Notification) error {
	f.sent = append(f.sent, n)
	return nil
}

func (f *fakeNotifier) NotifyLateSpike(ctx context.Context, organizationID string, currentLate, previousLate int64, percentChange int) error {
	return nil
}

const (
	orgID    = "org-1"
	memberID = "2f6cbb14-98c1-4d7a-8e56-aa17b33dd001"
)

func fixture() (*fakeAttendanceRepo, *fakeMemberRepo, *fakeDeviceRepo, *fakeNotifier) {
	attendanceRepo := newFakeAttendanceRepo()
	memberRepo := &fakeMemberRepo{members: map[string]member.Member{
		memberID: {ID: memberID, OrganizationID: orgID, FullName: "Ayu", IsActive: true},
	}}
	deviceRepo := &fakeDeviceRepo{cards: map[string]device.Card{
		"CARD-001": {ID: "c1", MemberID: memberID, CardUID: "CARD-001", IsActive: true},
	}}
	notifier := &fakeNotifier{}
	return attendanceRepo, memberRepo, deviceRepo, notifier
}

func newService(ar *fakeAttendanceRepo, mr *fakeMemberRepo, dr *fakeDeviceRepo, n *fakeNotifier, now time.Time) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		repo:            ar,
		memberRepo:      mr,
		deviceRepo:      dr,
		notificationSvc: n,
		now:             func() time.Time { return now },
	}
}

// ===== CARD CHECK-IN =====

func TestCheckInByCard_BeforeCutoffIsPresent(t *testing.T) {
	t.Parallel()
	ar, mr, dr, n := fixture()
	now := time.Date(2025, time.March, 3, 8, 30, 0, 0, time.UTC)
	svc := newService(ar, mr, dr, n, now)

	got, err := svc.CheckInByCard(context.Background(), orgID, attendance.CardCheckInRequest{CardUID: "CARD-001"})

	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusPresent), got.Status)
	assert.Equal(t, "2025-03-03", got.Date)
	assert.Equal(t, string(attendance.ValidationApproved), got.ValidationStatus)
	require.NotNil(t, got.CheckIn)
	assert.Equal(t, "08:30", *got.CheckIn)
}

func TestCheckInByCard_AfterCutoffIsLate(t *testing.T) {
	t.Parallel()
	ar, mr, dr, n := fixture()
	now := time.Date(2025, time.March, 3, 9, 1, 0, 0, time.UTC)
	svc := newService(ar, mr, dr, n, now)

	got, err := svc.CheckInByCard(context.Background(), orgID, attendance.CardCheckInRequest{CardUID: "CARD-001"})

	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusLate), got.Status)
}

func TestCheckInByCard_ExactCutoffIsPresent(t *testing.T) {
	t.Parallel()
	ar, mr, dr, n := fixture()
	now := time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)
	svc := newService(ar, mr, dr, n, now)

	got, err := svc.CheckInByCard(context.Background(), orgID, attendance.CardCheckInRequest{CardUID: "CARD-001"})

	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusPresent), got.Status)
}

func TestCheckInByCard_SecondSwipeConflicts(t *testing.T) {
	t.Parallel()
	ar, mr, dr, n := fixture()
	now := time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)
	svc := newService(ar, mr, dr, n, now)

	_, err := svc.CheckInByCard(context.Background(), orgID, attendance.CardCheckInRequest{CardUID: "CARD-001"})
	require.NoError(t, err)

	_, err = svc.CheckInByCard(context.Background(), orgID, attendance.CardCheckInRequest{CardUID: "CARD-001"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckInByCard_OutSwipeClosesRecord(t *testing.T) {
	t.Parallel()
	ar, mr, dr, n := fixture()
	now := time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)
	svc := newService(ar, mr, dr, n, now)

	_, err := svc.CheckInByCard(context.Background(), orgID, attendance.CardCheckInRequest{CardUID: "CARD-001"})
	require.NoError(t, err)

	got, err := svc.CheckInByCard(context.Background(), orgID, attendance.CardCheckInRequest{
		CardUID:   "CARD-001",
		Direction: "out",
		SwipedAt:  "2025-03-03T17:00:00Z",
	})
	require.NoError(t, err)
	require.NotNil(t, got.CheckOut)
	assert.Equal(t, "17:00", *got.CheckOut)
}

func TestCheckInByCard_OutSwipeWithoutCheckIn(t *testing.T) {
	t.Parallel()
	ar, mr, dr, n := fixture()
	now := time.Date(2025, time.March, 3, 17, 0, 0, 0, time.UTC)
	svc := newService(ar, mr, dr, n, now)

	_, err := svc.CheckInByCard(context.Background(), orgID, attendance.CardCheckInRequest{
		CardUID:   "CARD-001",
		Direction: "out",
	})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckInByCard_UnknownCard(t *testing.T) {
	t.Parallel()
	ar, mr, dr, n := fixture()
	svc := newService(ar, mr, dr, n, time.Now())

	_, err := svc.CheckInByCard(context.Background(), orgID, attendance.CardCheckInRequest{CardUID: "NOPE"})
	assert.ErrorIs(t, err, attendance.ErrUnknownCard)
}

func TestCheckInByCard_CardFromAnotherOrganization(t *testing.T) {
	t.Parallel()
	ar, mr, dr, n := fixture()
	svc := newService(ar, mr, dr, n, time.Now())

	_, err := svc.CheckInByCard(context.Background(), "other-org", attendance.CardCheckInRequest{CardUID: "CARD-001"})
	assert.ErrorIs(t, err, attendance.ErrUnknownCard)
}

// ===== VALIDATION WORKFLOW =====

func TestValidate_ApprovesPendingRecordAndNotifies(t *testing.T) {
	t.Parallel()
	ar, mr, dr, n := fixture()
	ar.put(attendance.Record{
		ID: "r1", MemberID: memberID, Date: "2025-03-03",
		Status: attendance.StatusPresent, ValidationStatus: attendance.ValidationPending,
	})
	svc := newService(ar, mr, dr, n, time.Now())

	err := svc.Validate(context.Background(), "r1", "reviewer-1", attendance.ValidateRecordRequest{Action: "approve"})

	require.NoError(t, err)
	stored, _ := ar.GetByID(context.Background(), "r1")
	assert.Equal(t, attendance.ValidationApproved, stored.ValidationStatus)
	require.Len(t, n.sent, 1)
	assert.Equal(t, notification.TypeAttendanceApproved, n.sent[0].Type)
	assert.Equal(t, memberID, n.sent[0].RecipientID)
}

func TestValidate_RejectedRecordCannotBeReviewedAgain(t *testing.T) {
	t.Parallel()
	ar, mr, dr, n := fixture()
	ar.put(attendance.Record{
		ID: "r1", MemberID: memberID, Date: "2025-03-03",
		Status: attendance.StatusPresent, ValidationStatus: attendance.ValidationPending,
	})
	svc := newService(ar, mr, dr, n, time.Now())

	require.NoError(t, svc.Validate(context.Background(), "r1", "reviewer-1", attendance.ValidateRecordRequest{Action: "reject"}))

	err := svc.Validate(context.Background(), "r1", "reviewer-1", attendance.ValidateRecordRequest{Action: "approve"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyFinalized)
}

// ===== MANUAL ENTRY =====

func TestCreateRecord_PendingByDefault(t *testing.T) {
	t.Parallel()
	ar, mr, dr, n := fixture()
	svc := newService(ar, mr, dr, n, time.Now())

	got, err := svc.CreateRecord(context.Background(), attendance.CreateRecordRequest{
		MemberID: memberID,
		Date:     "2025-03-03",
		Status:   "excused",
	})

	require.NoError(t, err)
	assert.Equal(t, string(attendance.ValidationPending), got.ValidationStatus)
	assert.Equal(t, "Ayu", got.MemberName)
}

func TestCreateRecord_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()
	ar, mr, dr, n := fixture()
	svc := newService(ar, mr, dr, n, time.Now())

	_, err := svc.CreateRecord(context.Background(), attendance.CreateRecordRequest{
		MemberID: memberID,
		Date:     "2025-03-03",
		Status:   "remote",
	})
	assert.ErrorIs(t, err, attendance.ErrInvalidStatus)
}

func TestCreateRecord_DuplicateDayConflicts(t *testing.T) {
	t.Parallel()
	ar, mr, dr, n := fixture()
	ar.put(attendance.Record{ID: "r1", MemberID: memberID, Date: "2025-03-03", Status: attendance.StatusPresent})
	svc := newService(ar, mr, dr, n, time.Now())

	_, err := svc.CreateRecord(context.Background(), attendance.CreateRecordRequest{
		MemberID: memberID,
		Date:     "2025-03-03",
		Status:   "present",
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}
