package attendance

// Filter narrows attendance queries. Zero-valued fields are ignored.
// MemberIDs is mandatory for record queries issued by the aggregation layer:
// the caller resolves the organization's member set first so records never
// cross a tenant boundary.
type Filter struct {
	MemberIDs        []string
	DateFrom         string // inclusive, YYYY-MM-DD
	DateTo           string // inclusive, YYYY-MM-DD
	Statuses         []Status
	ValidationStatus *ValidationStatus
	Limit            int
	Offset           int
}

type CreateRecordRequest struct {
	MemberID string  `json:"member_id"`
	Date     string  `json:"date"`
	Status   string  `json:"status"`
	Notes    *string `json:"notes,omitempty"`
}

type ValidateRecordRequest struct {
	Action string  `json:"action"` // "approve" or "reject"
	Notes  *string `json:"notes,omitempty"`
}

// CardCheckInRequest is the payload an attendance device posts when a card
// is swiped.
type CardCheckInRequest struct {
	CardUID   string `json:"card_uid"`
	SwipedAt  string `json:"swiped_at,omitempty"` // RFC3339, defaults to now
	Direction string `json:"direction,omitempty"` // "in" (default) or "out"
}

type RecordResponse struct {
	ID               string  `json:"id"`
	MemberID         string  `json:"member_id"`
	MemberName       string  `json:"member_name,omitempty"`
	Date             string  `json:"date"`
	Status           string  `json:"status"`
	CheckIn          *string `json:"check_in,omitempty"`  // HH:MM
	CheckOut         *string `json:"check_out,omitempty"` // HH:MM
	ValidationStatus string  `json:"validation_status"`
	Notes            *string `json:"notes,omitempty"`
}
