package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/device"
	"github.com/fachturrpl1/absensi-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type deviceRepository struct {
	db *database.DB
}

func NewDeviceRepository(db *database.DB) device.Repository {
	return &deviceRepository{db: db}
}

const deviceColumns = `
	id, organization_id, name, location, secret_hash, is_active,
	last_seen_at, created_at, updated_at
`

func scanDevice(row pgx.Row) (device.Device, error) {
	var d device.Device
	err := row.Scan(
		&d.ID, &d.OrganizationID, &d.Name, &d.Location, &d.SecretHash,
		&d.IsActive, &d.LastSeenAt, &d.CreatedAt, &d.UpdatedAt,
	)
	return d, err
}

func (r *deviceRepository) GetByID(ctx context.Context, id string) (device.Device, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + deviceColumns + ` FROM devices WHERE id = $1`

	d, err := scanDevice(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return device.Device{}, device.ErrDeviceNotFound
		}
		return device.Device{}, fmt.Errorf("failed to get device: %w", err)
	}
	return d, nil
}

func (r *deviceRepository) Create(ctx context.Context, d device.Device) (device.Device, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO devices (id, organization_id, name, location, secret_hash, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + deviceColumns

	created, err := scanDevice(q.QueryRow(ctx, query,
		d.ID, d.OrganizationID, d.Name, d.Location, d.SecretHash, d.IsActive,
	))
	if err != nil {
		return device.Device{}, fmt.Errorf("failed to create device: %w", err)
	}
	return created, nil
}

func (r *deviceRepository) List(ctx context.Context, organizationID string) ([]device.Device, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + deviceColumns + ` FROM devices WHERE organization_id = $1 ORDER BY name`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	defer rows.Close()

	var devices []device.Device
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan device: %w", err)
		}
		devices = append(devices, d)
	}
	return devices, rows.Err()
}

func (r *deviceRepository) TouchLastSeen(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `UPDATE devices SET last_seen_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to touch device: %w", err)
	}
	return nil
}

func (r *deviceRepository) AssignCard(ctx context.Context, c device.Card) (device.Card, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO cards (id, member_id, card_uid, is_active, issued_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, member_id, card_uid, is_active, issued_at, revoked_at
	`

	var created device.Card
	err := q.QueryRow(ctx, query, c.ID, c.MemberID, c.CardUID, c.IsActive).
		Scan(&created.ID, &created.MemberID, &created.CardUID, &created.IsActive,
			&created.IssuedAt, &created.RevokedAt)
	if err != nil {
		return device.Card{}, fmt.Errorf("failed to assign card: %w", err)
	}
	return created, nil
}

func (r *deviceRepository) RevokeCard(ctx context.Context, cardID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE cards
		SET is_active = FALSE, revoked_at = NOW()
		WHERE id = $1 AND is_active = TRUE
	`

	tag, err := q.Exec(ctx, query, cardID)
	if err != nil {
		return fmt.Errorf("failed to revoke card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return device.ErrCardNotFound
	}
	return nil
}

func (r *deviceRepository) GetCardByUID(ctx context.Context, cardUID string) (device.Card, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, member_id, card_uid, is_active, issued_at, revoked_at
		FROM cards
		WHERE card_uid = $1
	`

	var c device.Card
	err := q.QueryRow(ctx, query, cardUID).
		Scan(&c.ID, &c.MemberID, &c.CardUID, &c.IsActive, &c.IssuedAt, &c.RevokedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return device.Card{}, device.ErrCardNotFound
		}
		return device.Card{}, fmt.Errorf("failed to get card: %w", err)
	}
	return c, nil
}

func (r *deviceRepository) CardExists(ctx context.Context, cardUID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM cards WHERE card_uid = $1 AND is_active = TRUE)`,
		cardUID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check card uid: %w", err)
	}
	return exists, nil
}

func (r *deviceRepository) ListCardsByMember(ctx context.Context, memberID string) ([]device.Card, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, member_id, card_uid, is_active, issued_at, revoked_at
		FROM cards
		WHERE member_id = $1
		ORDER BY issued_at DESC
	`

	rows, err := q.Query(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	var cards []device.Card
	for rows.Next() {
		var c device.Card
		if err := rows.Scan(&c.ID, &c.MemberID, &c.CardUID, &c.IsActive, &c.IssuedAt, &c.RevokedAt); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}
