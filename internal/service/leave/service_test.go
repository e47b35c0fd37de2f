package leave

import (
	"context"
	"testing"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/attendance"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/leave"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/member"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	orgID    = "org-1"
	memberID = "2f6cbb14-98c1-4d7a-8e56-aa17b33dd001"
)

type fakeLeaveRepo struct {
	byID     map[string]leave.Request
	overlaps bool
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.Request, error) {
	r, ok := f.byID[id]
	if !ok {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	return r, nil
}

func (f *fakeLeaveRepo) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	f.byID[req.ID] = req
	return req, nil
}

func (f *fakeLeaveRepo) SetStatus(ctx context.Context, id string, status leave.RequestStatus, reviewerID string) error {
	r, ok := f.byID[id]
	if !ok {
		return leave.ErrRequestNotFound
	}
	r.Status = status
	r.ReviewedBy = &reviewerID
	f.byID[id] = r
	return nil
}

func (f *fakeLeaveRepo) List(ctx context.Context, organizationID string, filter leave.ListFilter) ([]leave.Request, error) {
	var out []leave.Request
	for _, r := range f.byID {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeLeaveRepo) HasOverlap(ctx context.Context, memberID, startDate, endDate string) (bool, error) {
	return f.overlaps, nil
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
	return nil, nil
}

type fakeAttendanceRepo struct {
	existing map[string]attendance.Record // keyed by member_id|date
	created  []attendance.Record
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) GetByMemberAndDate(ctx context.Context, memberID, date string) (attendance.Record, error) {
	r, ok := f.existing[memberID+"|"+date]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	f.created = append(f.created, record)
	return record, nil
}

func (f *fakeAttendanceRepo) SetCheckOut(ctx context.Context, id string, record attendance.Record) error {
	return nil
}

func (f *fakeAttendanceRepo) SetValidationStatus(ctx context.Context, id string, status attendance.ValidationStatus, notes *string) error {
	return nil
}

func (f *fakeAttendanceRepo) Find(ctx context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) Count(ctx context.Context, filter attendance.Filter) (int64, error) {
	return 0, nil
}

func (f *fakeAttendanceRepo) MemberIDsWithRecordOn(ctx context.Context, memberIDs []string, date string) ([]string, error) {
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

func fixture() (*fakeLeaveRepo, *fakeMemberRepo, *fakeAttendanceRepo, *fakeNotifier, *LeaveServiceImpl) {
	leaveRepo := &fakeLeaveRepo{byID: make(map[string]leave.Request)}
	memberRepo := &fakeMemberRepo{members: map[string]member.Member{
		memberID: {ID: memberID, OrganizationID: orgID, FullName: "Ayu", IsActive: true},
	}}
	attendanceRepo := &fakeAttendanceRepo{existing: make(map[string]attendance.Record)}
	notifier := &fakeNotifier{}
	svc := &LeaveServiceImpl{
		repo:            leaveRepo,
		memberRepo:      memberRepo,
		attendanceRepo:  attendanceRepo,
		notificationSvc: notifier,
	}
	return leaveRepo, memberRepo, attendanceRepo, notifier, svc
}

func TestCreate_PendingByDefault(t *testing.T) {
	t.Parallel()
	_, _, _, _, svc := fixture()

	got, err := svc.Create(context.Background(), leave.CreateRequestRequest{
		MemberID:  memberID,
		Type:      "annual",
		StartDate: "2025-03-10",
		EndDate:   "2025-03-12",
		Reason:    "family trip",
	})

	require.NoError(t, err)
	assert.Equal(t, string(leave.RequestPending), got.Status)
	assert.Equal(t, "Ayu", got.MemberName)
}

func TestCreate_RejectsUnknownType(t *testing.T) {
	t.Parallel()
	_, _, _, _, svc := fixture()

	_, err := svc.Create(context.Background(), leave.CreateRequestRequest{
		MemberID:  memberID,
		Type:      "sabbatical",
		StartDate: "2025-03-10",
		EndDate:   "2025-03-12",
		Reason:    "break",
	})
	assert.ErrorIs(t, err, leave.ErrUnknownLeaveType)
}

func TestCreate_RejectsReversedRange(t *testing.T) {
	t.Parallel()
	_, _, _, _, svc := fixture()

	_, err := svc.Create(context.Background(), leave.CreateRequestRequest{
		MemberID:  memberID,
		Type:      "annual",
		StartDate: "2025-03-12",
		EndDate:   "2025-03-10",
		Reason:    "typo",
	})
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestCreate_RejectsOverlappingRequest(t *testing.T) {
	t.Parallel()
	leaveRepo, _, _, _, svc := fixture()
	leaveRepo.overlaps = true

	_, err := svc.Create(context.Background(), leave.CreateRequestRequest{
		MemberID:  memberID,
		Type:      "sick",
		StartDate: "2025-03-10",
		EndDate:   "2025-03-12",
		Reason:    "flu",
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
}

func TestReview_ApproveWritesWeekdayAttendance(t *testing.T) {
	t.Parallel()
	leaveRepo, _, attendanceRepo, notifier, svc := fixture()
	// Friday 2025-03-07 through Tuesday 2025-03-11 spans a weekend.
	leaveRepo.byID["lr1"] = leave.Request{
		ID: "lr1", MemberID: memberID, Type: leave.TypeAnnual,
		StartDate: "2025-03-07", EndDate: "2025-03-11",
		Status: leave.RequestPending,
	}

	err := svc.Review(context.Background(), "lr1", "reviewer-1", leave.ReviewRequestRequest{Action: "approve"})

	require.NoError(t, err)
	require.Len(t, attendanceRepo.created, 3)
	var dates []string
	for _, r := range attendanceRepo.created {
		assert.Equal(t, attendance.StatusLeave, r.Status)
		assert.Equal(t, attendance.ValidationApproved, r.ValidationStatus)
		dates = append(dates, r.Date)
	}
	assert.Equal(t, []string{"2025-03-07", "2025-03-10", "2025-03-11"}, dates)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, notification.TypeLeaveApproved, notifier.sent[0].Type)
}

func TestReview_ApproveSkipsDaysWithExistingRecords(t *testing.T) {
	t.Parallel()
	leaveRepo, _, attendanceRepo, _, svc := fixture()
	leaveRepo.byID["lr1"] = leave.Request{
		ID: "lr1", MemberID: memberID, Type: leave.TypeSick,
		StartDate: "2025-03-10", EndDate: "2025-03-11",
		Status: leave.RequestPending,
	}
	attendanceRepo.existing[memberID+"|2025-03-10"] = attendance.Record{
		ID: "r1", MemberID: memberID, Date: "2025-03-10", Status: attendance.StatusPresent,
	}

	require.NoError(t, svc.Review(context.Background(), "lr1", "reviewer-1", leave.ReviewRequestRequest{Action: "approve"}))

	require.Len(t, attendanceRepo.created, 1)
	assert.Equal(t, "2025-03-11", attendanceRepo.created[0].Date)
}

func TestReview_RejectWritesNothing(t *testing.T) {
	t.Parallel()
	leaveRepo, _, attendanceRepo, notifier, svc := fixture()
	leaveRepo.byID["lr1"] = leave.Request{
		ID: "lr1", MemberID: memberID, Type: leave.TypeAnnual,
		StartDate: "2025-03-10", EndDate: "2025-03-11",
		Status: leave.RequestPending,
	}

	require.NoError(t, svc.Review(context.Background(), "lr1", "reviewer-1", leave.ReviewRequestRequest{Action: "reject"}))

	assert.Empty(t, attendanceRepo.created)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, notification.TypeLeaveRejected, notifier.sent[0].Type)
}

func TestReview_ProcessedRequestCannotBeReviewedAgain(t *testing.T) {
	t.Parallel()
	leaveRepo, _, _, _, svc := fixture()
	leaveRepo.byID["lr1"] = leave.Request{
		ID: "lr1", MemberID: memberID, Type: leave.TypeAnnual,
		StartDate: "2025-03-10", EndDate: "2025-03-11",
		Status: leave.RequestApproved,
	}

	err := svc.Review(context.Background(), "lr1", "reviewer-1", leave.ReviewRequestRequest{Action: "approve"})
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestReview_RejectsUnknownAction(t *testing.T) {
	t.Parallel()
	_, _, _, _, svc := fixture()

	err := svc.Review(context.Background(), "lr1", "reviewer-1", leave.ReviewRequestRequest{Action: "defer"})
	assert.ErrorIs(t, err, leave.ErrUnknownReviewAction)
}
