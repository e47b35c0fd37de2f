package organization

import "time"

// Organization is the tenant boundary; every query is scoped by its ID.
type Organization struct {
	ID        string
	Name      string
	Slug      string
	Timezone  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
