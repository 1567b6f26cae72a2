package models

// RoleName is an enumerated role tag assigned by the backend.
type RoleName string

const (
	RoleOwner RoleName = "owner"
	RoleBuyer RoleName = "buyer"
)

// Role mirrors one entry of the backend's role list for a user.
type Role struct {
	ID   int64    `json:"id"`
	Name RoleName `json:"name"`
}

// User is the identity resolved from the backend's current-user endpoint.
// The role set determines which restricted views the user may enter.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Roles []Role `json:"roles"`
}

// HasRole reports whether the user carries the named role. Matching is
// exact, there is no role hierarchy.
func (u *User) HasRole(name RoleName) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}
