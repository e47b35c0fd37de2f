package device

import "context"

type Service interface {
	// Register creates a device and returns its plaintext secret exactly
	// once. Only the bcrypt hash is stored.
	Register(ctx context.Context, organizationID string, req RegisterDeviceRequest) (RegisterDeviceResponse, error)

	List(ctx context.Context, organizationID string) ([]DeviceResponse, error)

	// Authenticate verifies a device ID/secret pair and returns the
	// device's organization. Records the device as seen.
	Authenticate(ctx context.Context, deviceID, secret string) (organizationID string, err error)

	AssignCard(ctx context.Context, req AssignCardRequest) (CardResponse, error)
	RevokeCard(ctx context.Context, cardID string) error
	ListCardsByMember(ctx context.Context, memberID string) ([]CardResponse, error)
}
