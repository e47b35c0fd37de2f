package group

import (
	"context"
	"fmt"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/group"
	"github.com/fachturrpl1/absensi-sub002/internal/pkg/validator"
	"github.com/google/uuid"
)

type GroupServiceImpl struct {
	repo group.Repository
}

func NewGroupService(repo group.Repository) group.Service {
	return &GroupServiceImpl{repo: repo}
}

func (s *GroupServiceImpl) Create(ctx context.Context, organizationID string, req group.CreateGroupRequest) (group.GroupResponse, error) {
	if validator.IsEmpty(req.Name) {
		return group.GroupResponse{}, validator.ValidationErrors{{Field: "name", Message: "is required"}}
	}

	exists, err := s.repo.ExistsByName(ctx, organizationID, req.Name)
	if err != nil {
		return group.GroupResponse{}, fmt.Errorf("failed to check group name: %w", err)
	}
	if exists {
		return group.GroupResponse{}, group.ErrNameExists
	}

	created, err := s.repo.Create(ctx, group.Group{
		ID:             uuid.NewString(),
		OrganizationID: organizationID,
		Name:           req.Name,
		Description:    req.Description,
		IsActive:       true,
	})
	if err != nil {
		return group.GroupResponse{}, fmt.Errorf("failed to create group: %w", err)
	}

	return group.GroupResponse{
		ID:          created.ID,
		Name:        created.Name,
		Description: created.Description,
		IsActive:    created.IsActive,
	}, nil
}

func (s *GroupServiceImpl) GetByID(ctx context.Context, id string) (group.GroupResponse, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return group.GroupResponse{}, err
	}

	count, err := s.repo.ActiveMemberCount(ctx, id)
	if err != nil {
		return group.GroupResponse{}, fmt.Errorf("failed to count group members: %w", err)
	}

	return group.GroupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		IsActive:    g.IsActive,
		MemberCount: count,
	}, nil
}

func (s *GroupServiceImpl) Update(ctx context.Context, id string, req group.UpdateGroupRequest) error {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if req.Name != nil && *req.Name != g.Name {
		exists, err := s.repo.ExistsByName(ctx, g.OrganizationID, *req.Name)
		if err != nil {
			return fmt.Errorf("failed to check group name: %w", err)
		}
		if exists {
			return group.ErrNameExists
		}
	}
	return s.repo.Update(ctx, id, req)
}

func (s *GroupServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.ActiveMemberCount(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count group members: %w", err)
	}
	if count > 0 {
		return group.ErrGroupNotEmpty
	}
	return s.repo.Delete(ctx, id)
}

func (s *GroupServiceImpl) List(ctx context.Context, organizationID string) ([]group.GroupResponse, error) {
	groups, err := s.repo.List(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	responses := make([]group.GroupResponse, len(groups))
	for i, g := range groups {
		count, err := s.repo.ActiveMemberCount(ctx, g.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count group members: %w", err)
		}
		responses[i] = group.GroupResponse{
			ID:          g.ID,
			Name:        g.Name,
			Description: g.Description,
			IsActive:    g.IsActive,
			MemberCount: count,
		}
	}
	return responses, nil
}
