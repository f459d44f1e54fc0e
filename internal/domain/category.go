package domain

// EventCategory is immutable reference data seeded at startup.
type EventCategory struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}
