package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/attendance"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/device"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/member"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/notification"
	"github.com/fachturrpl1/absensi-sub002/internal/pkg/daterange"
	"github.com/fachturrpl1/absensi-sub002/internal/pkg/validator"
	"github.com/google/uuid"
)

// lateCutoff is the organization-day time after which an "in" swipe is
// recorded as late rather than present.
const lateCutoff = 9 * time.Hour

type AttendanceServiceImpl struct {
	repo            attendance.Repository
	memberRepo      member.Repository
	deviceRepo      device.Repository
	notificationSvc notification.Service
	now             func() time.Time
}

func NewAttendanceService(
	repo attendance.Repository,
	memberRepo member.Repository,
	deviceRepo device.Repository,
	notificationSvc notification.Service,
) attendance.Service {
	return &AttendanceServiceImpl{
		repo:            repo,
		memberRepo:      memberRepo,
		deviceRepo:      deviceRepo,
		notificationSvc: notificationSvc,
		now:             time.Now,
	}
}

func formatClock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format("15:04")
	return &s
}

func toResponse(r attendance.Record, memberName string) attendance.RecordResponse {
	return attendance.RecordResponse{
		ID:               r.ID,
		MemberID:         r.MemberID,
		MemberName:       memberName,
		Date:             r.Date,
		Status:           string(r.Status),
		CheckIn:          formatClock(r.CheckIn),
		CheckOut:         formatClock(r.CheckOut),
		ValidationStatus: string(r.ValidationStatus),
		Notes:            r.Notes,
	}
}

func (s *AttendanceServiceImpl) CreateRecord(ctx context.Context, req attendance.CreateRecordRequest) (attendance.RecordResponse, error) {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(req.MemberID) {
		errs = append(errs, validator.ValidationError{Field: "member_id", Message: "is invalid"})
	}
	if _, ok := validator.IsValidDate(req.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if len(errs) > 0 {
		return attendance.RecordResponse{}, errs
	}

	status := attendance.Status(req.Status)
	valid := status == attendance.StatusLeave
	for _, known := range attendance.KnownStatuses() {
		if status == known {
			valid = true
		}
	}
	if !valid {
		return attendance.RecordResponse{}, attendance.ErrInvalidStatus
	}

	m, err := s.memberRepo.GetByID(ctx, req.MemberID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !m.IsActive {
		return attendance.RecordResponse{}, member.ErrMemberInactive
	}

	if _, err := s.repo.GetByMemberAndDate(ctx, req.MemberID, req.Date); err == nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
	} else if !errors.Is(err, attendance.ErrRecordNotFound) {
		return attendance.RecordResponse{}, fmt.Errorf("failed to check existing record: %w", err)
	}

	created, err := s.repo.Create(ctx, attendance.Record{
		ID:               uuid.NewString(),
		MemberID:         req.MemberID,
		Date:             req.Date,
		Status:           status,
		ValidationStatus: attendance.ValidationPending,
		Notes:            req.Notes,
	})
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to create record: %w", err)
	}

	return toResponse(created, m.FullName), nil
}

func (s *AttendanceServiceImpl) GetByID(ctx context.Context, id string) (attendance.RecordResponse, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	memberName := ""
	if m, err := s.memberRepo.GetByID(ctx, r.MemberID); err == nil {
		memberName = m.FullName
	}
	return toResponse(r, memberName), nil
}

// List scopes the query to the organization's active members when the
// caller does not narrow it further. An explicit empty scope matches
// nothing rather than everything.
func (s *AttendanceServiceImpl) List(ctx context.Context, organizationID string, filter attendance.Filter) ([]attendance.RecordResponse, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	if len(filter.MemberIDs) == 0 {
		memberIDs, err := s.memberRepo.ActiveIDs(ctx, organizationID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve member scope: %w", err)
		}
		if len(memberIDs) == 0 {
			return []attendance.RecordResponse{}, nil
		}
		filter.MemberIDs = memberIDs
	}

	records, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	responses := make([]attendance.RecordResponse, len(records))
	for i, r := range records {
		responses[i] = toResponse(r, "")
	}
	return responses, nil
}

func (s *AttendanceServiceImpl) Validate(ctx context.Context, id string, reviewerID string, req attendance.ValidateRecordRequest) error {
	if req.Action != "approve" && req.Action != "reject" {
		return validator.ValidationErrors{{Field: "action", Message: "must be approve or reject"}}
	}

	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if r.ValidationStatus != attendance.ValidationPending {
		return attendance.ErrAlreadyFinalized
	}

	status := attendance.ValidationApproved
	notifType := notification.TypeAttendanceApproved
	title := "Attendance approved"
	if req.Action == "reject" {
		status = attendance.ValidationRejected
		notifType = notification.TypeAttendanceRejected
		title = "Attendance rejected"
	}

	if err := s.repo.SetValidationStatus(ctx, id, status, req.Notes); err != nil {
		return fmt.Errorf("failed to update validation status: %w", err)
	}

	// Best effort: a lost notification never rolls back the review.
	m, err := s.memberRepo.GetByID(ctx, r.MemberID)
	if err != nil {
		slog.Error("Failed to resolve member for notification", "member_id", r.MemberID, "error", err)
		return nil
	}
	notifErr := s.notificationSvc.Notify(ctx, notification.Notification{
		OrganizationID: m.OrganizationID,
		RecipientID:    r.MemberID,
		Type:           notifType,
		Title:          title,
		Message:        fmt.Sprintf("Your attendance record for %s was %sd.", r.Date, req.Action),
	})
	if notifErr != nil {
		slog.Error("Failed to notify member", "member_id", r.MemberID, "error", notifErr)
	}
	return nil
}

func (s *AttendanceServiceImpl) CheckInByCard(ctx context.Context, organizationID string, req attendance.CardCheckInRequest) (attendance.RecordResponse, error) {
	swipedAt := s.now().UTC()
	if req.SwipedAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.SwipedAt)
		if err != nil {
			return attendance.RecordResponse{}, validator.ValidationErrors{{Field: "swiped_at", Message: "must be RFC3339"}}
		}
		swipedAt = parsed.UTC()
	}

	direction := req.Direction
	if direction == "" {
		direction = "in"
	}
	if direction != "in" && direction != "out" {
		return attendance.RecordResponse{}, validator.ValidationErrors{{Field: "direction", Message: "must be in or out"}}
	}

	card, err := s.deviceRepo.GetCardByUID(ctx, req.CardUID)
	if err != nil {
		return attendance.RecordResponse{}, attendance.ErrUnknownCard
	}
	if !card.IsActive {
		return attendance.RecordResponse{}, attendance.ErrUnknownCard
	}

	m, err := s.memberRepo.GetByID(ctx, card.MemberID)
	if err != nil || !m.IsActive || m.OrganizationID != organizationID {
		return attendance.RecordResponse{}, attendance.ErrUnknownCard
	}

	date := daterange.Format(swipedAt)

	if direction == "out" {
		existing, err := s.repo.GetByMemberAndDate(ctx, m.ID, date)
		if err != nil {
			if errors.Is(err, attendance.ErrRecordNotFound) {
				return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
			}
			return attendance.RecordResponse{}, fmt.Errorf("failed to load record: %w", err)
		}
		if existing.CheckIn == nil {
			return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
		}
		existing.CheckOut = &swipedAt
		if err := s.repo.SetCheckOut(ctx, existing.ID, existing); err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to set check-out: %w", err)
		}
		return toResponse(existing, m.FullName), nil
	}

	if _, err := s.repo.GetByMemberAndDate(ctx, m.ID, date); err == nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
	} else if !errors.Is(err, attendance.ErrRecordNotFound) {
		return attendance.RecordResponse{}, fmt.Errorf("failed to check existing record: %w", err)
	}

	status := attendance.StatusPresent
	midnight := time.Date(swipedAt.Year(), swipedAt.Month(), swipedAt.Day(), 0, 0, 0, 0, time.UTC)
	if swipedAt.Sub(midnight) > lateCutoff {
		status = attendance.StatusLate
	}

	created, err := s.repo.Create(ctx, attendance.Record{
		ID:               uuid.NewString(),
		MemberID:         m.ID,
		Date:             date,
		Status:           status,
		CheckIn:          &swipedAt,
		ValidationStatus: attendance.ValidationApproved,
	})
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to create record: %w", err)
	}
	return toResponse(created, m.FullName), nil
}
