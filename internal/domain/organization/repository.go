package organization

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Organization, error)
	List(ctx context.Context) ([]Organization, error)

	// OrganizationIDByUser maps an authenticated user to their (at most one)
	// organization membership. Returns ErrUnauthorized when none exists.
	OrganizationIDByUser(ctx context.Context, userID string) (string, error)
}
