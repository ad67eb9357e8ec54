package domain

import "time"

// Role represents a user role in the clinic
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// User represents a clinic user: patient, doctor or administrator
type User struct {
	ID    int64
	Name  string
	Email string
	Role  Role

	// Specialty is set for doctors only; a doctor without a specialty is
	// not eligible for rotation assignment
	Specialty *string

	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsDoctor returns true if the user is a doctor
func (u *User) IsDoctor() bool {
	return u.Role == RoleDoctor
}

// IsAdmin returns true if the user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// EligibleForRotation returns true if the doctor can take generated slots:
// an active doctor with a non-empty specialty
func (u *User) EligibleForRotation() bool {
	return u.Role == RoleDoctor && u.Active && u.Specialty != nil && *u.Specialty != ""
}

// ParseRole converts a string to Role, reporting whether the value is
// one of the known roles
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RolePatient, RoleDoctor, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}
