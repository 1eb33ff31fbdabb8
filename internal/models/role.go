package model

// Role is the closed set of account roles. The role picks the top-level
// view; row access itself is scoped in the repositories.
type Role string

const (
	RoleMember Role = "member"
	RoleHR     Role = "hr"
)

func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleHR:
		return true
	}
	return false
}
