package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/attendance"
	"github.com/fachturrpl1/absensi-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, member_id, date, status, check_in, check_out, validation_status,
	notes, created_at, updated_at
`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.MemberID, &rec.Date, &rec.Status, &rec.CheckIn, &rec.CheckOut,
		&rec.ValidationStatus, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// buildFilter translates an attendance.Filter into a WHERE clause. The
// member scope is always present; callers guard the empty-scope case before
// reaching here.
func buildFilter(filter attendance.Filter) (string, []interface{}) {
	conditions := []string{"member_id = ANY($1)"}
	args := []interface{}{filter.MemberIDs}

	if filter.DateFrom != "" {
		args = append(args, filter.DateFrom)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filter.DateTo != "" {
		args = append(args, filter.DateTo)
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, statuses)
		conditions = append(conditions, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if filter.ValidationStatus != nil {
		args = append(args, string(*filter.ValidationStatus))
		conditions = append(conditions, fmt.Sprintf("validation_status = $%d", len(args)))
	}

	return strings.Join(conditions, " AND "), args
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE id = $1`

	rec, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get record: %w", err)
	}
	return rec, nil
}

func (r *attendanceRepository) GetByMemberAndDate(ctx context.Context, memberID, date string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE member_id = $1 AND date = $2`

	rec, err := scanRecord(q.QueryRow(ctx, query, memberID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get record: %w", err)
	}
	return rec, nil
}

func (r *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (id, member_id, date, status, check_in,
			check_out, validation_status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + attendanceColumns

	created, err := scanRecord(q.QueryRow(ctx, query,
		record.ID, record.MemberID, record.Date, string(record.Status),
		record.CheckIn, record.CheckOut, string(record.ValidationStatus), record.Notes,
	))
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create record: %w", err)
	}
	return created, nil
}

func (r *attendanceRepository) SetCheckOut(ctx context.Context, id string, record attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET check_out = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, record.CheckOut)
	if err != nil {
		return fmt.Errorf("failed to set check-out: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

func (r *attendanceRepository) SetValidationStatus(ctx context.Context, id string, status attendance.ValidationStatus, notes *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET validation_status = $2,
			notes = COALESCE($3, notes),
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, string(status), notes)
	if err != nil {
		return fmt.Errorf("failed to set validation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

func (r *attendanceRepository) Find(ctx context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	if len(filter.MemberIDs) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)
	where, args := buildFilter(filter)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE ` + where + ` ORDER BY date DESC, created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

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

func (r *attendanceRepository) Count(ctx context.Context, filter attendance.Filter) (int64, error) {
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

func (r *attendanceRepository) MemberIDsWithRecordOn(ctx context.Context, memberIDs []string, date string) ([]string, error) {
	if len(memberIDs) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT member_id
		FROM attendance_records
		WHERE member_id = ANY($1) AND date = $2
	`

	rows, err := q.Query(ctx, query, memberIDs, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list recorded members: %w", err)
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
