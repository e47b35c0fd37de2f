package device

import "time"

// Device is a physical attendance terminal (RFID reader) registered to one
// organization. It authenticates with an ID/secret pair; only the bcrypt
// hash of the secret is stored.
type Device struct {
	ID             string
	OrganizationID string
	Name           string
	Location       *string
	SecretHash     string
	IsActive       bool
	LastSeenAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Card is an RFID card assigned to a member. A member can hold several
// cards; the dashboard counts the active ones.
type Card struct {
	ID        string
	MemberID  string
	CardUID   string
	IsActive  bool
	IssuedAt  time.Time
	RevokedAt *time.Time
}
