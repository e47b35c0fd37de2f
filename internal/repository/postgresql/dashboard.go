package postgresql

import (
	"context"
	"fmt"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/attendance"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/dashboard"
	"github.com/fachturrpl1/absensi-sub002/internal/pkg/database"
)

type dashboardRepository struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.Repository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) ActiveMemberIDs(ctx context.Context, organizationID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id FROM members
		WHERE organization_id = $1 AND is_active = TRUE AND deleted_at IS NULL
	`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active member ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan member id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *dashboardRepository) ActiveMembersWithGroups(ctx context.Context, organizationID string) ([]dashboard.MemberGroupRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT m.id, m.group_id, g.name
		FROM members m
		LEFT JOIN groups g ON g.id = m.group_id AND g.is_active = TRUE
		WHERE m.organization_id = $1 AND m.is_active = TRUE AND m.deleted_at IS NULL
		ORDER BY m.created_at
	`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members with groups: %w", err)
	}
	defer rows.Close()

	var members []dashboard.MemberGroupRow
	for rows.Next() {
		var row dashboard.MemberGroupRow
		if err := rows.Scan(&row.MemberID, &row.GroupID, &row.GroupName); err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		members = append(members, row)
	}
	return members, rows.Err()
}

func (r *dashboardRepository) CountMembers(ctx context.Context, organizationID string, activeOnly *bool) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*) FROM members
		WHERE organization_id = $1 AND deleted_at IS NULL
		AND ($2::boolean IS NULL OR is_active = $2)
	`

	var count int64
	if err := q.QueryRow(ctx, query, organizationID, activeOnly).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return count, nil
}

func (r *dashboardRepository) CountMembersHiredBy(ctx context.Context, organizationID string, date string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*) FROM members
		WHERE organization_id = $1 AND is_active = TRUE AND deleted_at IS NULL
		AND hire_date <= $2::date
	`

	var count int64
	if err := q.QueryRow(ctx, query, organizationID, date).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count members by hire date: %w", err)
	}
	return count, nil
}

func (r *dashboardRepository) MemberEmploymentStatuses(ctx context.Context, organizationID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(employment_status, '')
		FROM members
		WHERE organization_id = $1 AND is_active = TRUE AND deleted_at IS NULL
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employment statuses: %w", err)
	}
	defer rows.Close()

	var statuses []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan employment status: %w", err)
		}
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}

// CountAttendance shares the filter semantics of the attendance repository:
// an empty member scope matches nothing.
func (r *dashboardRepository) CountAttendance(ctx context.Context, filter attendance.Filter) (int64, error) {
	if len(filter.MemberIDs) == 0 {
		return 0, nil
	}

	q := GetQuerier(ctx, r.db)
	where, args := buildFilter(filter)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendance_records WHERE `+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

func (r *dashboardRepository) FindAttendance(ctx context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	if len(filter.MemberIDs) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)
	where, args := buildFilter(filter)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE ` + where + ` ORDER BY date`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *dashboardRepository) CountActiveGroups(ctx context.Context, organizationID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM groups WHERE organization_id = $1 AND is_active = TRUE`,
		organizationID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count groups: %w", err)
	}
	return count, nil
}

func (r *dashboardRepository) CountActiveCards(ctx context.Context, memberIDs []string) (int64, error) {
	if len(memberIDs) == 0 {
		return 0, nil
	}

	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM cards WHERE member_id = ANY($1) AND is_active = TRUE`,
		memberIDs,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}
	return count, nil
}
