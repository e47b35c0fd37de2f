package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/member"
	"github.com/fachturrpl1/absensi-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type memberRepository struct {
	db *database.DB
}

func NewMemberRepository(db *database.DB) member.Repository {
	return &memberRepository{db: db}
}

const memberColumns = `
	id, organization_id, user_id, group_id, full_name, email, position,
	employment_status, hire_date, is_active, created_at, updated_at, deleted_at
`

func scanMember(row pgx.Row) (member.Member, error) {
	var m member.Member
	err := row.Scan(
		&m.ID, &m.OrganizationID, &m.UserID, &m.GroupID, &m.FullName, &m.Email,
		&m.Position, &m.EmploymentStatus, &m.HireDate, &m.IsActive,
		&m.CreatedAt, &m.UpdatedAt, &m.DeletedAt,
	)
	return m, err
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (member.Member, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1 AND deleted_at IS NULL`

	m, err := scanMember(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return member.Member{}, member.ErrMemberNotFound
		}
		return member.Member{}, fmt.Errorf("failed to get member: %w", err)
	}
	return m, nil
}

func (r *memberRepository) Create(ctx context.Context, m member.Member) (member.Member, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO members (id, organization_id, user_id, group_id, full_name, email,
			position, employment_status, hire_date, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING ` + memberColumns

	created, err := scanMember(q.QueryRow(ctx, query,
		m.ID, m.OrganizationID, m.UserID, m.GroupID, m.FullName, m.Email,
		m.Position, string(m.EmploymentStatus), m.HireDate, m.IsActive,
	))
	if err != nil {
		return member.Member{}, fmt.Errorf("failed to create member: %w", err)
	}
	return created, nil
}

func (r *memberRepository) Update(ctx context.Context, id string, req member.UpdateMemberRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE members
		SET full_name = COALESCE($2, full_name),
			email = COALESCE($3, email),
			group_id = COALESCE($4, group_id),
			position = COALESCE($5, position),
			employment_status = COALESCE($6, employment_status),
			is_active = COALESCE($7, is_active),
			updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, id, req.FullName, req.Email, req.GroupID,
		req.Position, req.EmploymentStatus, req.IsActive)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return member.ErrMemberNotFound
	}
	return nil
}

func (r *memberRepository) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE members
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return member.ErrMemberNotFound
	}
	return nil
}

func (r *memberRepository) ExistsByEmail(ctx context.Context, organizationID, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM members
			WHERE organization_id = $1 AND email = $2 AND deleted_at IS NULL
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, organizationID, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

func (r *memberRepository) List(ctx context.Context, organizationID string, filter member.ListFilter) ([]member.Member, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + memberColumns + `
		FROM members
		WHERE organization_id = $1 AND deleted_at IS NULL
		AND ($2::uuid IS NULL OR group_id = $2)
		AND ($3::boolean = FALSE OR is_active = TRUE)
		ORDER BY full_name
		LIMIT $4 OFFSET $5
	`

	rows, err := q.Query(ctx, query, organizationID, filter.GroupID, filter.ActiveOnly, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []member.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *memberRepository) ActiveIDs(ctx context.Context, organizationID string) ([]string, error) {
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
