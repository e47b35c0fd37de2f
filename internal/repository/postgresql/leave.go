package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/leave"
	"github.com/fachturrpl1/absensi-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.Repository {
	return &leaveRepository{db: db}
}

const leaveColumns = `
	id, member_id, type, start_date, end_date, reason, status,
	reviewed_by, reviewed_at, created_at, updated_at
`

func scanLeave(row pgx.Row) (leave.Request, error) {
	var req leave.Request
	err := row.Scan(
		&req.ID, &req.MemberID, &req.Type, &req.StartDate, &req.EndDate,
		&req.Reason, &req.Status, &req.ReviewedBy, &req.ReviewedAt,
		&req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

func (r *leaveRepository) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE id = $1`

	req, err := scanLeave(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return req, nil
}

func (r *leaveRepository) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (id, member_id, type, start_date, end_date,
			reason, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING ` + leaveColumns

	created, err := scanLeave(q.QueryRow(ctx, query,
		req.ID, req.MemberID, string(req.Type), req.StartDate, req.EndDate,
		req.Reason, string(req.Status),
	))
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

func (r *leaveRepository) SetStatus(ctx context.Context, id string, status leave.RequestStatus, reviewerID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, reviewed_by = $3, reviewed_at = NOW(), updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, string(status), reviewerID)
	if err != nil {
		return fmt.Errorf("failed to update leave status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}
	return nil
}

func (r *leaveRepository) List(ctx context.Context, organizationID string, filter leave.ListFilter) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests lr
		WHERE lr.member_id IN (
			SELECT id FROM members WHERE organization_id = $1 AND deleted_at IS NULL
		)
		AND ($2::uuid IS NULL OR lr.member_id = $2)
		AND ($3::text IS NULL OR lr.status = $3)
		ORDER BY lr.created_at DESC
		LIMIT $4 OFFSET $5
	`

	var status *string
	if filter.Status != nil {
		s := string(*filter.Status)
		status = &s
	}

	rows, err := q.Query(ctx, query, organizationID, filter.MemberID, status, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		req, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *leaveRepository) HasOverlap(ctx context.Context, memberID, startDate, endDate string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE member_id = $1
			AND status IN ('pending', 'approved')
			AND start_date <= $3
			AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, memberID, startDate, endDate).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check leave overlap: %w", err)
	}
	return exists, nil
}
