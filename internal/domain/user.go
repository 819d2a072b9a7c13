package domain

import (
	"strings"
	"time"
)

// User is read from the identity store. Sprintdesk never issues
// credentials; it only needs names, roles and activity.
type User struct {
	ID        string
	Username  string
	FirstName string
	LastName  string
	Role      Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName returns "First Last", whichever half exists, or the username.
func (u *User) DisplayName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full != "" {
		return full
	}
	return u.Username
}
