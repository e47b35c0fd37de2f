package device

type RegisterDeviceRequest struct {
	Name     string  `json:"name"`
	Location *string `json:"location,omitempty"`
}

// RegisterDeviceResponse carries the plaintext secret exactly once, at
// registration time.
type RegisterDeviceResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Secret string `json:"secret"`
}

type DeviceResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Location   *string `json:"location,omitempty"`
	IsActive   bool    `json:"is_active"`
	LastSeenAt *string `json:"last_seen_at,omitempty"`
}

type AssignCardRequest struct {
	MemberID string `json:"member_id"`
	CardUID  string `json:"card_uid"`
}

type CardResponse struct {
	ID       string `json:"id"`
	MemberID string `json:"member_id"`
	CardUID  string `json:"card_uid"`
	IsActive bool   `json:"is_active"`
}
