package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/group"
	"github.com/fachturrpl1/absensi-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type groupRepository struct {
	db *database.DB
}

func NewGroupRepository(db *database.DB) group.Repository {
	return &groupRepository{db: db}
}

func (r *groupRepository) GetByID(ctx context.Context, id string) (group.Group, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, name, description, is_active, created_at, updated_at
		FROM groups
		WHERE id = $1
	`

	var g group.Group
	err := q.QueryRow(ctx, query, id).Scan(&g.ID, &g.OrganizationID, &g.Name,
		&g.Description, &g.IsActive, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return group.Group{}, group.ErrGroupNotFound
		}
		return group.Group{}, fmt.Errorf("failed to get group: %w", err)
	}
	return g, nil
}

func (r *groupRepository) Create(ctx context.Context, g group.Group) (group.Group, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO groups (id, organization_id, name, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, organization_id, name, description, is_active, created_at, updated_at
	`

	var created group.Group
	err := q.QueryRow(ctx, query, g.ID, g.OrganizationID, g.Name, g.Description, g.IsActive).
		Scan(&created.ID, &created.OrganizationID, &created.Name, &created.Description,
			&created.IsActive, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return group.Group{}, fmt.Errorf("failed to create group: %w", err)
	}
	return created, nil
}

func (r *groupRepository) Update(ctx context.Context, id string, req group.UpdateGroupRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE groups
		SET name = COALESCE($2, name),
			description = COALESCE($3, description),
			is_active = COALESCE($4, is_active),
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, req.Name, req.Description, req.IsActive)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return group.ErrGroupNotFound
	}
	return nil
}

func (r *groupRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return group.ErrGroupNotFound
	}
	return nil
}

func (r *groupRepository) ExistsByName(ctx context.Context, organizationID, name string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM groups
			WHERE organization_id = $1 AND LOWER(name) = LOWER($2)
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, organizationID, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check group name: %w", err)
	}
	return exists, nil
}

func (r *groupRepository) List(ctx context.Context, organizationID string) ([]group.Group, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, name, description, is_active, created_at, updated_at
		FROM groups
		WHERE organization_id = $1
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []group.Group
	for rows.Next() {
		var g group.Group
		if err := rows.Scan(&g.ID, &g.OrganizationID, &g.Name, &g.Description,
			&g.IsActive, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *groupRepository) ActiveMemberCount(ctx context.Context, groupID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*) FROM members
		WHERE group_id = $1 AND is_active = TRUE AND deleted_at IS NULL
	`

	var count int64
	if err := q.QueryRow(ctx, query, groupID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count group members: %w", err)
	}
	return count, nil
}
