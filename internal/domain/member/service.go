package member

import "context"

type Service interface {
	Create(ctx context.Context, organizationID string, req CreateMemberRequest) (MemberResponse, error)
	GetByID(ctx context.Context, id string) (MemberResponse, error)
	Update(ctx context.Context, id string, req UpdateMemberRequest) error
	Deactivate(ctx context.Context, id string) error
	List(ctx context.Context, organizationID string, filter ListFilter) ([]MemberResponse, error)
}
