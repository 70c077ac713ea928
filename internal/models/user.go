package models

type UserRole string

const (
	RoleLecturer UserRole = "lecturer"
	RoleStudent  UserRole = "student"
)

// User is the session identity the stores key their data and filters on.
// Department and Level are empty for roles they do not apply to.
type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email,omitempty"`
	Role       UserRole   `json:"role"`
	Department string     `json:"department,omitempty"`
	Level      ClassLevel `json:"level,omitempty"`
}

// IsLecturer reports whether notifications for lecturer-only events apply.
func (u User) IsLecturer() bool {
	return u.Role == RoleLecturer
}
