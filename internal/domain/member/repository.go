package member

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Member, error)
	Create(ctx context.Context, m Member) (Member, error)
	Update(ctx context.Context, id string, req UpdateMemberRequest) error
	Deactivate(ctx context.Context, id string) error
	ExistsByEmail(ctx context.Context, organizationID, email string) (bool, error)

	List(ctx context.Context, organizationID string, filter ListFilter) ([]Member, error)

	// ActiveIDs returns the IDs of the organization's currently active
	// members. Aggregation scopes every attendance query to this set.
	ActiveIDs(ctx context.Context, organizationID string) ([]string, error)
}
