package group

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Group, error)
	Create(ctx context.Context, g Group) (Group, error)
	Update(ctx context.Context, id string, req UpdateGroupRequest) error
	Delete(ctx context.Context, id string) error
	ExistsByName(ctx context.Context, organizationID, name string) (bool, error)
	List(ctx context.Context, organizationID string) ([]Group, error)
	ActiveMemberCount(ctx context.Context, groupID string) (int64, error)
}
