package member

import (
	"context"
	"fmt"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/group"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/member"
	"github.com/fachturrpl1/absensi-sub002/internal/pkg/validator"
	"github.com/google/uuid"
)

var employmentStatuses = []string{
	string(member.EmploymentFullTime),
	string(member.EmploymentPartTime),
	string(member.EmploymentContract),
	string(member.EmploymentInternship),
}

type MemberServiceImpl struct {
	repo      member.Repository
	groupRepo group.Repository
}

func NewMemberService(repo member.Repository, groupRepo group.Repository) member.Service {
	return &MemberServiceImpl{repo: repo, groupRepo: groupRepo}
}

func toResponse(m member.Member, groupName *string) member.MemberResponse {
	return member.MemberResponse{
		ID:               m.ID,
		FullName:         m.FullName,
		Email:            m.Email,
		GroupID:          m.GroupID,
		GroupName:        groupName,
		Position:         m.Position,
		EmploymentStatus: string(m.EmploymentStatus),
		HireDate:         m.HireDate.Format("2006-01-02"),
		IsActive:         m.IsActive,
	}
}

func (s *MemberServiceImpl) Create(ctx context.Context, organizationID string, req member.CreateMemberRequest) (member.MemberResponse, error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(req.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if !validator.IsValidEmail(req.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "is invalid"})
	}
	if !validator.IsInSlice(req.EmploymentStatus, employmentStatuses) {
		errs = append(errs, validator.ValidationError{Field: "employment_status", Message: "is invalid"})
	}
	hireDate, ok := validator.IsValidDate(req.HireDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be YYYY-MM-DD"})
	}
	if len(errs) > 0 {
		return member.MemberResponse{}, errs
	}

	exists, err := s.repo.ExistsByEmail(ctx, organizationID, req.Email)
	if err != nil {
		return member.MemberResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return member.MemberResponse{}, member.ErrEmailExists
	}

	var groupName *string
	if req.GroupID != nil {
		g, err := s.groupRepo.GetByID(ctx, *req.GroupID)
		if err != nil {
			return member.MemberResponse{}, group.ErrGroupNotFound
		}
		groupName = &g.Name
	}

	created, err := s.repo.Create(ctx, member.Member{
		ID:               uuid.NewString(),
		OrganizationID:   organizationID,
		GroupID:          req.GroupID,
		FullName:         req.FullName,
		Email:            req.Email,
		Position:         req.Position,
		EmploymentStatus: member.EmploymentStatus(req.EmploymentStatus),
		HireDate:         hireDate,
		IsActive:         true,
	})
	if err != nil {
		return member.MemberResponse{}, fmt.Errorf("failed to create member: %w", err)
	}

	return toResponse(created, groupName), nil
}

func (s *MemberServiceImpl) GetByID(ctx context.Context, id string) (member.MemberResponse, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return member.MemberResponse{}, err
	}

	var groupName *string
	if m.GroupID != nil {
		if g, err := s.groupRepo.GetByID(ctx, *m.GroupID); err == nil {
			groupName = &g.Name
		}
	}
	return toResponse(m, groupName), nil
}

func (s *MemberServiceImpl) Update(ctx context.Context, id string, req member.UpdateMemberRequest) error {
	var errs validator.ValidationErrors
	if req.Email != nil && !validator.IsValidEmail(*req.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "is invalid"})
	}
	if req.EmploymentStatus != nil && !validator.IsInSlice(*req.EmploymentStatus, employmentStatuses) {
		errs = append(errs, validator.ValidationError{Field: "employment_status", Message: "is invalid"})
	}
	if len(errs) > 0 {
		return errs
	}
	if req.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *req.GroupID); err != nil {
			return group.ErrGroupNotFound
		}
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, req)
}

func (s *MemberServiceImpl) Deactivate(ctx context.Context, id string) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !m.IsActive {
		return member.ErrMemberInactive
	}
	return s.repo.Deactivate(ctx, id)
}

func (s *MemberServiceImpl) List(ctx context.Context, organizationID string, filter member.ListFilter) ([]member.MemberResponse, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	members, err := s.repo.List(ctx, organizationID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	// Resolve group names once per distinct group, not per member.
	names := make(map[string]*string)
	responses := make([]member.MemberResponse, len(members))
	for i, m := range members {
		var groupName *string
		if m.GroupID != nil {
			cached, ok := names[*m.GroupID]
			if !ok {
				if g, err := s.groupRepo.GetByID(ctx, *m.GroupID); err == nil {
					cached = &g.Name
				}
				names[*m.GroupID] = cached
			}
			groupName = cached
		}
		responses[i] = toResponse(m, groupName)
	}
	return responses, nil
}
