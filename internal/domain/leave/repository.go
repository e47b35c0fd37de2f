package leave

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Request, error)
	Create(ctx context.Context, req Request) (Request, error)
	SetStatus(ctx context.Context, id string, status RequestStatus, reviewerID string) error
	List(ctx context.Context, organizationID string, filter ListFilter) ([]Request, error)

	// HasOverlap reports whether the member already has a pending or
	// approved request intersecting [startDate, endDate].
	HasOverlap(ctx context.Context, memberID, startDate, endDate string) (bool, error)
}
