package domain

import "time"

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleUser  Role = "user"
	RoleCoach Role = "coach"
	RoleAdmin Role = "admin"
)

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleCoach || r == RoleAdmin
}

// User represents an account in the tracker. The Role field drives every
// access-control decision (see policy.go).
type User struct {
	ID           int64     `bson:"_id" json:"id"`
	Username     string    `bson:"username" json:"username"` // Unique, case-sensitive, never renamed
	PasswordHash string    `bson:"passwordHash" json:"-"`    // Never expose this via JSON
	Role         Role      `bson:"role" json:"role"`
	FullName     string    `bson:"fullName,omitempty" json:"fullName,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// DisplayName returns the full name when set, otherwise the username.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsCoach() bool {
	return u.Role == RoleCoach
}

// Actor is the acting identity for a core operation. Services take it as an
// explicit parameter on every call; the core never reads identity from
// ambient state.
type Actor struct {
	UserID int64
	Role   Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
