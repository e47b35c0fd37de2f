package group

import "context"

type Service interface {
	Create(ctx context.Context, organizationID string, req CreateGroupRequest) (GroupResponse, error)
	GetByID(ctx context.Context, id string) (GroupResponse, error)
	Update(ctx context.Context, id string, req UpdateGroupRequest) error

	// Delete fails with ErrGroupNotEmpty while the group still has active
	// members.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, organizationID string) ([]GroupResponse, error)
}
