package device

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/device"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/member"
	"github.com/fachturrpl1/absensi-sub002/internal/pkg/validator"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type DeviceServiceImpl struct {
	repo       device.Repository
	memberRepo member.Repository
}

func NewDeviceService(repo device.Repository, memberRepo member.Repository) device.Service {
	return &DeviceServiceImpl{repo: repo, memberRepo: memberRepo}
}

func generateSecret() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func toDeviceResponse(d device.Device) device.DeviceResponse {
	var lastSeen *string
	if d.LastSeenAt != nil {
		s := d.LastSeenAt.UTC().Format(time.RFC3339)
		lastSeen = &s
	}
	return device.DeviceResponse{
		ID:         d.ID,
		Name:       d.Name,
		Location:   d.Location,
		IsActive:   d.IsActive,
		LastSeenAt: lastSeen,
	}
}

func toCardResponse(c device.Card) device.CardResponse {
	return device.CardResponse{
		ID:       c.ID,
		MemberID: c.MemberID,
		CardUID:  c.CardUID,
		IsActive: c.IsActive,
	}
}

func (s *DeviceServiceImpl) Register(ctx context.Context, organizationID string, req device.RegisterDeviceRequest) (device.RegisterDeviceResponse, error) {
	if validator.IsEmpty(req.Name) {
		return device.RegisterDeviceResponse{}, validator.ValidationErrors{{Field: "name", Message: "is required"}}
	}

	secret, err := generateSecret()
	if err != nil {
		return device.RegisterDeviceResponse{}, fmt.Errorf("failed to generate secret: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return device.RegisterDeviceResponse{}, fmt.Errorf("failed to hash secret: %w", err)
	}

	created, err := s.repo.Create(ctx, device.Device{
		ID:             uuid.NewString(),
		OrganizationID: organizationID,
		Name:           req.Name,
		Location:       req.Location,
		SecretHash:     string(hash),
		IsActive:       true,
	})
	if err != nil {
		return device.RegisterDeviceResponse{}, fmt.Errorf("failed to create device: %w", err)
	}

	return device.RegisterDeviceResponse{
		ID:     created.ID,
		Name:   created.Name,
		Secret: secret,
	}, nil
}

func (s *DeviceServiceImpl) List(ctx context.Context, organizationID string) ([]device.DeviceResponse, error) {
	devices, err := s.repo.List(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	responses := make([]device.DeviceResponse, len(devices))
	for i, d := range devices {
		responses[i] = toDeviceResponse(d)
	}
	return responses, nil
}

func (s *DeviceServiceImpl) Authenticate(ctx context.Context, deviceID, secret string) (string, error) {
	d, err := s.repo.GetByID(ctx, deviceID)
	if err != nil {
		return "", err
	}
	if !d.IsActive {
		return "", device.ErrDeviceInactive
	}
	if err := bcrypt.CompareHashAndPassword([]byte(d.SecretHash), []byte(secret)); err != nil {
		return "", device.ErrInvalidSecret
	}

	if err := s.repo.TouchLastSeen(ctx, d.ID); err != nil {
		// A failed heartbeat update never blocks the swipe itself.
		return d.OrganizationID, nil
	}
	return d.OrganizationID, nil
}

func (s *DeviceServiceImpl) AssignCard(ctx context.Context, req device.AssignCardRequest) (device.CardResponse, error) {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(req.MemberID) {
		errs = append(errs, validator.ValidationError{Field: "member_id", Message: "is invalid"})
	}
	if validator.IsEmpty(req.CardUID) {
		errs = append(errs, validator.ValidationError{Field: "card_uid", Message: "is required"})
	}
	if len(errs) > 0 {
		return device.CardResponse{}, errs
	}

	m, err := s.memberRepo.GetByID(ctx, req.MemberID)
	if err != nil {
		return device.CardResponse{}, err
	}
	if !m.IsActive {
		return device.CardResponse{}, member.ErrMemberInactive
	}

	exists, err := s.repo.CardExists(ctx, req.CardUID)
	if err != nil {
		return device.CardResponse{}, fmt.Errorf("failed to check card uid: %w", err)
	}
	if exists {
		return device.CardResponse{}, device.ErrCardAlreadyExists
	}

	created, err := s.repo.AssignCard(ctx, device.Card{
		ID:       uuid.NewString(),
		MemberID: req.MemberID,
		CardUID:  req.CardUID,
		IsActive: true,
	})
	if err != nil {
		return device.CardResponse{}, fmt.Errorf("failed to assign card: %w", err)
	}
	return toCardResponse(created), nil
}

func (s *DeviceServiceImpl) RevokeCard(ctx context.Context, cardID string) error {
	return s.repo.RevokeCard(ctx, cardID)
}

func (s *DeviceServiceImpl) ListCardsByMember(ctx context.Context, memberID string) ([]device.CardResponse, error) {
	cards, err := s.repo.ListCardsByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	responses := make([]device.CardResponse, len(cards))
	for i, c := range cards {
		responses[i] = toCardResponse(c)
	}
	return responses, nil
}
