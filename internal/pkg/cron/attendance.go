package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/attendance"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/dashboard"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/member"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/notification"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/organization"
	"github.com/fachturrpl1/absensi-sub002/internal/pkg/daterange"
	"github.com/google/uuid"
)

// AttendanceJobs holds the nightly attendance housekeeping jobs.
type AttendanceJobs struct {
	organizationRepo organization.Repository
	memberRepo       member.Repository
	attendanceRepo   attendance.Repository
	dashboardRepo    dashboard.Repository
	notificationSvc  notification.Service
}

func NewAttendanceJobs(
	organizationRepo organization.Repository,
	memberRepo member.Repository,
	attendanceRepo attendance.Repository,
	dashboardRepo dashboard.Repository,
	notificationSvc notification.Service,
) *AttendanceJobs {
	return &AttendanceJobs{
		organizationRepo: organizationRepo,
		memberRepo:       memberRepo,
		attendanceRepo:   attendanceRepo,
		dashboardRepo:    dashboardRepo,
		notificationSvc:  notificationSvc,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_members", 1*time.Hour, j.MarkAbsentMembers)
	scheduler.AddJob("late_spike_digest", 1*time.Hour, j.LateSpikeDigest)
}

// MarkAbsentMembers inserts an absent record for every active member without
// any record for today. Idempotent: re-runs skip members that already have a
// row for the day.
func (j *AttendanceJobs) MarkAbsentMembers(ctx context.Context) error {
	now := time.Now().UTC()

	// Only run after the daily cutoff (18:00-18:59 UTC)
	if now.Hour() != 18 {
		return nil
	}
	// Weekends are not working days under the 5/7 approximation
	if now.Weekday() == time.Saturday || now.Weekday() == time.Sunday {
		return nil
	}

	today := daterange.Format(now)
	slog.Info("Cron: marking absent members", "date", today)

	orgs, err := j.organizationRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list organizations: %w", err)
	}

	for _, org := range orgs {
		memberIDs, err := j.memberRepo.ActiveIDs(ctx, org.ID)
		if err != nil {
			slog.Error("Cron: failed to resolve active members", "organization_id", org.ID, "error", err)
			continue
		}
		if len(memberIDs) == 0 {
			continue
		}

		recorded, err := j.attendanceRepo.MemberIDsWithRecordOn(ctx, memberIDs, today)
		if err != nil {
			slog.Error("Cron: failed to check existing records", "organization_id", org.ID, "error", err)
			continue
		}

		seen := make(map[string]struct{}, len(recorded))
		for _, id := range recorded {
			seen[id] = struct{}{}
		}

		marked := 0
		for _, memberID := range memberIDs {
			if _, ok := seen[memberID]; ok {
				continue
			}
			_, err := j.attendanceRepo.Create(ctx, attendance.Record{
				ID:               uuid.NewString(),
				MemberID:         memberID,
				Date:             today,
				Status:           attendance.StatusAbsent,
				ValidationStatus: attendance.ValidationApproved,
			})
			if err != nil {
				slog.Error("Cron: failed to mark member absent", "member_id", memberID, "error", err)
				continue
			}
			marked++
		}
		if marked > 0 {
			slog.Info("Cron: marked members absent", "organization_id", org.ID, "count", marked)
		}
	}

	return nil
}

// lateSpikeThreshold is the month-over-month percent change in late arrivals
// that triggers an organization-wide alert.
const lateSpikeThreshold = 50

// LateSpikeDigest compares this month's late count against last month's and
// publishes one alert per organization per day when the increase crosses the
// threshold.
func (j *AttendanceJobs) LateSpikeDigest(ctx context.Context) error {
	now := time.Now().UTC()

	// Morning digest window (06:00-06:59 UTC)
	if now.Hour() != 6 {
		return nil
	}

	orgs, err := j.organizationRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list organizations: %w", err)
	}

	current := daterange.Month(now, 0)
	previous := daterange.Month(now, 1)

	for _, org := range orgs {
		memberIDs, err := j.dashboardRepo.ActiveMemberIDs(ctx, org.ID)
		if err != nil || len(memberIDs) == 0 {
			continue
		}

		currentLate, err := j.dashboardRepo.CountAttendance(ctx, attendance.Filter{
			MemberIDs: memberIDs,
			DateFrom:  current.Start,
			DateTo:    current.End,
			Statuses:  []attendance.Status{attendance.StatusLate},
		})
		if err != nil {
			slog.Error("Cron: late spike count failed", "organization_id", org.ID, "error", err)
			continue
		}

		previousLate, err := j.dashboardRepo.CountAttendance(ctx, attendance.Filter{
			MemberIDs: memberIDs,
			DateFrom:  previous.Start,
			DateTo:    previous.End,
			Statuses:  []attendance.Status{attendance.StatusLate},
		})
		if err != nil {
			slog.Error("Cron: late spike count failed", "organization_id", org.ID, "error", err)
			continue
		}

		change := dashboard.PercentChange(currentLate, previousLate)
		if change < lateSpikeThreshold {
			continue
		}

		if err := j.notificationSvc.NotifyLateSpike(ctx, org.ID, currentLate, previousLate, change); err != nil {
			slog.Error("Cron: failed to publish late spike alert", "organization_id", org.ID, "error", err)
		}
	}

	return nil
}
