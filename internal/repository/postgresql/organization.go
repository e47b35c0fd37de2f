package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/organization"
	"github.com/fachturrpl1/absensi-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type organizationRepository struct {
	db *database.DB
}

func NewOrganizationRepository(db *database.DB) organization.Repository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) GetByID(ctx context.Context, id string) (organization.Organization, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, slug, timezone, created_at, updated_at
		FROM organizations
		WHERE id = $1
	`

	var o organization.Organization
	err := q.QueryRow(ctx, query, id).Scan(&o.ID, &o.Name, &o.Slug, &o.Timezone, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return organization.Organization{}, organization.ErrOrganizationNotFound
		}
		return organization.Organization{}, fmt.Errorf("failed to get organization: %w", err)
	}
	return o, nil
}

func (r *organizationRepository) List(ctx context.Context) ([]organization.Organization, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, slug, timezone, created_at, updated_at
		FROM organizations
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	var orgs []organization.Organization
	for rows.Next() {
		var o organization.Organization
		if err := rows.Scan(&o.ID, &o.Name, &o.Slug, &o.Timezone, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}

func (r *organizationRepository) OrganizationIDByUser(ctx context.Context, userID string) (string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT m.organization_id
		FROM members m
		WHERE m.user_id = $1 AND m.deleted_at IS NULL
		LIMIT 1
	`

	var organizationID string
	err := q.QueryRow(ctx, query, userID).Scan(&organizationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", organization.ErrUnauthorized
		}
		return "", fmt.Errorf("failed to resolve organization membership: %w", err)
	}
	return organizationID, nil
}
