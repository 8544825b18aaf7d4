package session

import "encoding/json"

// Role is the coarse permission class the backend assigns to an account. It
// decides which dashboard variant renders and which API paths are used.
type Role int

const (
	RoleUnknown Role = iota
	RoleStudent
	RoleInstructor
	RoleAdmin
)

const (
	roleUnknownStr    = "unknown"
	roleStudentStr    = "student"
	roleInstructorStr = "instructor"
	roleAdminStr      = "admin"
)

// ParseRole maps a backend role string onto the closed Role set. Anything it
// does not recognize is RoleUnknown.
func ParseRole(s string) Role {
	switch s {
	case roleStudentStr:
		return RoleStudent
	case roleInstructorStr:
		return RoleInstructor
	case roleAdminStr:
		return RoleAdmin
	default:
		return RoleUnknown
	}
}

func (r Role) String() string {
	switch r {
	case RoleStudent:
		return roleStudentStr
	case RoleInstructor:
		return roleInstructorStr
	case RoleAdmin:
		return roleAdminStr
	default:
		return roleUnknownStr
	}
}

// PathPrefix is the API path segment for role-scoped resources
// (e.g. /student/modules/{id}/files vs /instructor/modules/{id}/files).
func (r Role) PathPrefix() string {
	return r.String()
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = ParseRole(s)
	return nil
}
