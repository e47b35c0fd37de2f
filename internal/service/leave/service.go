package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/attendance"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/leave"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/member"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/notification"
	"github.com/fachturrpl1/absensi-sub002/internal/pkg/daterange"
	"github.com/fachturrpl1/absensi-sub002/internal/pkg/validator"
	"github.com/google/uuid"
)

var leaveTypes = []string{
	string(leave.TypeAnnual),
	string(leave.TypeSick),
	string(leave.TypePersonal),
	string(leave.TypeUnpaid),
}

type LeaveServiceImpl struct {
	repo            leave.Repository
	memberRepo      member.Repository
	attendanceRepo  attendance.Repository
	notificationSvc notification.Service
}

func NewLeaveService(
	repo leave.Repository,
	memberRepo member.Repository,
	attendanceRepo attendance.Repository,
	notificationSvc notification.Service,
) leave.Service {
	return &LeaveServiceImpl{
		repo:            repo,
		memberRepo:      memberRepo,
		attendanceRepo:  attendanceRepo,
		notificationSvc: notificationSvc,
	}
}

func toResponse(r leave.Request, memberName string) leave.RequestResponse {
	return leave.RequestResponse{
		ID:         r.ID,
		MemberID:   r.MemberID,
		MemberName: memberName,
		Type:       string(r.Type),
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Reason:     r.Reason,
		Status:     string(r.Status),
		ReviewedBy: r.ReviewedBy,
	}
}

func (s *LeaveServiceImpl) Create(ctx context.Context, req leave.CreateRequestRequest) (leave.RequestResponse, error) {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(req.MemberID) {
		errs = append(errs, validator.ValidationError{Field: "member_id", Message: "is invalid"})
	}
	if _, ok := validator.IsValidDate(req.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	if _, ok := validator.IsValidDate(req.EndDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(req.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}
	if len(errs) > 0 {
		return leave.RequestResponse{}, errs
	}
	if !validator.IsInSlice(req.Type, leaveTypes) {
		return leave.RequestResponse{}, leave.ErrUnknownLeaveType
	}
	if !validator.IsValidDateOrder(req.StartDate, req.EndDate) {
		return leave.RequestResponse{}, leave.ErrInvalidDateRange
	}

	m, err := s.memberRepo.GetByID(ctx, req.MemberID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if !m.IsActive {
		return leave.RequestResponse{}, member.ErrMemberInactive
	}

	overlap, err := s.repo.HasOverlap(ctx, req.MemberID, req.StartDate, req.EndDate)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to check overlap: %w", err)
	}
	if overlap {
		return leave.RequestResponse{}, leave.ErrOverlappingLeave
	}

	created, err := s.repo.Create(ctx, leave.Request{
		ID:        uuid.NewString(),
		MemberID:  req.MemberID,
		Type:      leave.Type(req.Type),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
		Status:    leave.RequestPending,
	})
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return toResponse(created, m.FullName), nil
}

func (s *LeaveServiceImpl) GetByID(ctx context.Context, id string) (leave.RequestResponse, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	memberName := ""
	if m, err := s.memberRepo.GetByID(ctx, r.MemberID); err == nil {
		memberName = m.FullName
	}
	return toResponse(r, memberName), nil
}

func (s *LeaveServiceImpl) List(ctx context.Context, organizationID string, filter leave.ListFilter) ([]leave.RequestResponse, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	requests, err := s.repo.List(ctx, organizationID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.RequestResponse, len(requests))
	for i, r := range requests {
		responses[i] = toResponse(r, "")
	}
	return responses, nil
}

func (s *LeaveServiceImpl) Review(ctx context.Context, id string, reviewerID string, req leave.ReviewRequestRequest) error {
	if req.Action != "approve" && req.Action != "reject" {
		return leave.ErrUnknownReviewAction
	}

	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if r.Status != leave.RequestPending {
		return leave.ErrAlreadyProcessed
	}

	status := leave.RequestApproved
	notifType := notification.TypeLeaveApproved
	title := "Leave request approved"
	if req.Action == "reject" {
		status = leave.RequestRejected
		notifType = notification.TypeLeaveRejected
		title = "Leave request rejected"
	}

	if err := s.repo.SetStatus(ctx, id, status, reviewerID); err != nil {
		return fmt.Errorf("failed to update leave status: %w", err)
	}

	if status == leave.RequestApproved {
		s.writeThroughAttendance(ctx, r)
	}

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
		Message:        fmt.Sprintf("Your %s leave from %s to %s was %sd.", r.Type, r.StartDate, r.EndDate, req.Action),
	})
	if notifErr != nil {
		slog.Error("Failed to notify member", "member_id", r.MemberID, "error", notifErr)
	}
	return nil
}

// writeThroughAttendance records every weekday of an approved range as a
// leave-status attendance record. Days that already have a record are left
// alone; the auto-absent job then skips them too. Best effort, partial
// writes are acceptable.
func (s *LeaveServiceImpl) writeThroughAttendance(ctx context.Context, r leave.Request) {
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return
	}
	end, err := time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		return
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		date := daterange.Format(day)

		if _, err := s.attendanceRepo.GetByMemberAndDate(ctx, r.MemberID, date); err == nil {
			continue
		} else if !errors.Is(err, attendance.ErrRecordNotFound) {
			slog.Error("Failed to check existing record", "member_id", r.MemberID, "date", date, "error", err)
			continue
		}

		_, err := s.attendanceRepo.Create(ctx, attendance.Record{
			ID:               uuid.NewString(),
			MemberID:         r.MemberID,
			Date:             date,
			Status:           attendance.StatusLeave,
			ValidationStatus: attendance.ValidationApproved,
		})
		if err != nil {
			slog.Error("Failed to write leave day", "member_id", r.MemberID, "date", date, "error", err)
		}
	}
}
