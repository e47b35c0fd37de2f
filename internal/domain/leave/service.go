package leave

import "context"

type Service interface {
	// Create stores a pending request. On approval the range is written
	// through to attendance as leave-status records.
	Create(ctx context.Context, req CreateRequestRequest) (RequestResponse, error)

	GetByID(ctx context.Context, id string) (RequestResponse, error)
	List(ctx context.Context, organizationID string, filter ListFilter) ([]RequestResponse, error)
	Review(ctx context.Context, id string, reviewerID string, req ReviewRequestRequest) error
}
