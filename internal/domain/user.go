package domain

import "time"

// Role is always re-read from storage for the acting user before any
// role-gated mutation. Values carried in tokens or request bodies are
// never trusted.
type Role string

const (
	RoleStandardUser  Role = "STANDARD_USER"
	RoleEventAdmin    Role = "EVENT_ADMIN"
	RoleUltimateAdmin Role = "ULTIMATE_ADMIN"
)

func (r Role) CanHostEvents() bool {
	return r == RoleEventAdmin || r == RoleUltimateAdmin
}

func (r Role) IsUltimateAdmin() bool {
	return r == RoleUltimateAdmin
}

type User struct {
	ID          uint      `json:"id"`
	Email       string    `json:"email"`
	Password    string    `json:"-"`
	FullName    string    `json:"full_name"`
	Role        Role      `json:"role"`
	IsStudent   bool      `json:"is_student"`
	CollegeName string    `json:"college_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
