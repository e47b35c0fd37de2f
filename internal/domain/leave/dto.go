package leave

type CreateRequestRequest struct {
	MemberID  string `json:"member_id"`
	Type      string `json:"type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

type ReviewRequestRequest struct {
	Action string `json:"action"` // "approve" or "reject"
}

type RequestResponse struct {
	ID         string  `json:"id"`
	MemberID   string  `json:"member_id"`
	MemberName string  `json:"member_name,omitempty"`
	Type       string  `json:"type"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Reason     string  `json:"reason"`
	Status     string  `json:"status"`
	ReviewedBy *string `json:"reviewed_by,omitempty"`
}

type ListFilter struct {
	MemberID *string
	Status   *RequestStatus
	Limit    int
	Offset   int
}
