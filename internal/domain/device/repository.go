package device

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Device, error)
	Create(ctx context.Context, d Device) (Device, error)
	List(ctx context.Context, organizationID string) ([]Device, error)
	TouchLastSeen(ctx context.Context, id string) error

	AssignCard(ctx context.Context, c Card) (Card, error)
	RevokeCard(ctx context.Context, cardID string) error
	GetCardByUID(ctx context.Context, cardUID string) (Card, error)
	CardExists(ctx context.Context, cardUID string) (bool, error)
	ListCardsByMember(ctx context.Context, memberID string) ([]Card, error)
}
