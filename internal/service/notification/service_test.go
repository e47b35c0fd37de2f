package notification

import (
	"context"
	"testing"
	"time"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/member"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/notification"
	"github.com/fachturrpl1/absensi-sub002/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeRepo struct {
	byID          map[string]notification.Notification
	stored        []notification.Notification
	existsForDay  bool
	markReadCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]notification.Notification)}
}

func (f *fakeRepo) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	f.byID[n.ID] = n
	f.stored = append(f.stored, n)
	return n, nil
}

func (f *fakeRepo) CreateMany(ctx context.Context, ns []notification.Notification) error {
	for _, n := range ns {
		f.byID[n.ID] = n
	}
	f.stored = append(f.stored, ns...)
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (notification.Notification, error) {
	n, ok := f.byID[id]
	if !ok {
		return notification.Notification{}, notification.ErrNotificationNotFound
	}
	return n, nil
}

func (f *fakeRepo) ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]notification.Notification, error) {
	var out []notification.Notification
	for _, n := range f.stored {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeRepo) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	for _, n := range f.stored {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) MarkRead(ctx context.Context, id string) error {
	f.markReadCalls++
	n := f.byID[id]
	n.IsRead = true
	f.byID[id] = n
	return nil
}

func (f *fakeRepo) ExistsForDay(ctx context.Context, organizationID string, t notification.Type, date string) (bool, error) {
	return f.existsForDay, nil
}

type fakeMemberRepo struct {
	activeIDs []string
}

func (f *fakeMemberRepo) GetByID(ctx context.Context, id string) (member.Member, error) {
	return member.Member{}, member.ErrMemberNotFound
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
	return f.activeIDs, nil
}

func newService(repo *fakeRepo, memberRepo *fakeMemberRepo, hub *sse.Hub) *NotificationServiceImpl {
	return &NotificationServiceImpl{
		repo:       repo,
		memberRepo: memberRepo,
		hub:        hub,
		now:        func() time.Time { return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC) },
	}
}

func TestNotify_FillsIDAndPushesToStream(t *testing.T) {
	t.Parallel()
	repo := newFakeRepo()
	hub := sse.NewHub()
	svc := newService(repo, &fakeMemberRepo{}, hub)

	ch, cleanup := hub.Subscribe("m1")
	defer cleanup()

	err := svc.Notify(context.Background(), notification.Notification{
		OrganizationID: "org-1",
		RecipientID:    "m1",
		Type:           notification.TypeAttendanceApproved,
		Title:          "Attendance approved",
	})

	require.NoError(t, err)
	require.Len(t, repo.stored, 1)
	assert.NotEmpty(t, repo.stored[0].ID)
	assert.False(t, repo.stored[0].CreatedAt.IsZero())

	select {
	case event := <-ch:
		assert.Equal(t, "notification", event.Event)
		assert.Equal(t, "m1", event.RecipientID)
	default:
		t.Fatal("expected an event on the stream")
	}
}

func TestNotifyLateSpike_FansOutToAllActiveMembers(t *testing.T) {
	t.Parallel()
	repo := newFakeRepo()
	hub := sse.NewHub()
	svc := newService(repo, &fakeMemberRepo{activeIDs: []string{"m1", "m2", "m3"}}, hub)

	ch, cleanup := hub.Subscribe("m2")
	defer cleanup()

	err := svc.NotifyLateSpike(context.Background(), "org-1", 15, 10, 50)

	require.NoError(t, err)
	require.Len(t, repo.stored, 3)
	for _, n := range repo.stored {
		assert.Equal(t, notification.TypeLateSpike, n.Type)
		assert.Equal(t, "Late check-ins are up 50% this month (15 vs 10 last month).", n.Message)
	}

	select {
	case event := <-ch:
		assert.Equal(t, "m2", event.RecipientID)
	default:
		t.Fatal("expected an event on the stream")
	}
}

func TestNotifyLateSpike_OncePerDay(t *testing.T) {
	t.Parallel()
	repo := newFakeRepo()
	repo.existsForDay = true
	svc := newService(repo, &fakeMemberRepo{activeIDs: []string{"m1"}}, sse.NewHub())

	require.NoError(t, svc.NotifyLateSpike(context.Background(), "org-1", 15, 10, 50))
	assert.Empty(t, repo.stored)
}

func TestNotifyLateSpike_EmptyRosterStoresNothing(t *testing.T) {
	t.Parallel()
	repo := newFakeRepo()
	svc := newService(repo, &fakeMemberRepo{}, sse.NewHub())

	require.NoError(t, svc.NotifyLateSpike(context.Background(), "org-1", 15, 10, 50))
	assert.Empty(t, repo.stored)
}

func TestMarkRead_RejectsOtherRecipients(t *testing.T) {
	t.Parallel()
	repo := newFakeRepo()
	repo.byID["n1"] = notification.Notification{ID: "n1", RecipientID: "m1"}
	svc := newService(repo, &fakeMemberRepo{}, sse.NewHub())

	err := svc.MarkRead(context.Background(), "m2", "n1")
	assert.ErrorIs(t, err, notification.ErrNotRecipient)
}

func TestMarkRead_AlreadyReadIsNoOp(t *testing.T) {
	t.Parallel()
	repo := newFakeRepo()
	repo.byID["n1"] = notification.Notification{ID: "n1", RecipientID: "m1", IsRead: true}
	svc := newService(repo, &fakeMemberRepo{}, sse.NewHub())

	require.NoError(t, svc.MarkRead(context.Background(), "m1", "n1"))
	assert.Zero(t, repo.markReadCalls)
}

func TestMarkRead_MarksUnread(t *testing.T) {
	t.Parallel()
	repo := newFakeRepo()
	repo.byID["n1"] = notification.Notification{ID: "n1", RecipientID: "m1"}
	svc := newService(repo, &fakeMemberRepo{}, sse.NewHub())

	require.NoError(t, svc.MarkRead(context.Background(), "m1", "n1"))
	assert.Equal(t, 1, repo.markReadCalls)
}
