package member

type CreateMemberRequest struct {
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	GroupID          *string `json:"group_id,omitempty"`
	Position         *string `json:"position,omitempty"`
	EmploymentStatus string  `json:"employment_status"`
	HireDate         string  `json:"hire_date"` // YYYY-MM-DD
}

type UpdateMemberRequest struct {
	FullName         *string `json:"full_name,omitempty"`
	Email            *string `json:"email,omitempty"`
	GroupID          *string `json:"group_id,omitempty"`
	Position         *string `json:"position,omitempty"`
	EmploymentStatus *string `json:"employment_status,omitempty"`
	IsActive         *bool   `json:"is_active,omitempty"`
}

type MemberResponse struct {
	ID               string  `json:"id"`
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	GroupID          *string `json:"group_id,omitempty"`
	GroupName        *string `json:"group_name,omitempty"`
	Position         *string `json:"position,omitempty"`
	EmploymentStatus string  `json:"employment_status"`
	HireDate         string  `json:"hire_date"`
	IsActive         bool    `json:"is_active"`
}

type ListFilter struct {
	GroupID    *string
	ActiveOnly bool
	Limit      int
	Offset     int
}
