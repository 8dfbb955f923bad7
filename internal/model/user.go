package model

// Roles recognized by the dashboard. Route gating on these is a client-side
// convenience, not a security boundary.
const (
	RoleUser       = "user"
	RoleTechnician = "technician"
	RoleAdmin      = "admin"
)

// User is an authenticated identity's profile.
type User struct {
	ID     string `gorm:"primaryKey;size:64" json:"id"`
	Name   string `gorm:"size:128;not null" json:"name"`
	Email  string `gorm:"uniqueIndex;size:128;not null" json:"email"`
	Role   string `gorm:"size:16;not null" json:"role"`
	Avatar string `gorm:"size:256" json:"avatar,omitempty"`
}

// UserRef is a denormalized {id, name} snapshot of a user embedded in other
// records. It is copied at write time and never re-synced.
type UserRef struct {
	ID   string `gorm:"size:64" json:"id"`
	Name string `gorm:"size:128" json:"name"`
}

// Session pairs a bearer token with the identity it authenticates.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
