package domain

import "time"

// Role enumerates access levels a subject can hold.
type Role string

const (
	RoleAdministrator Role = "ADMINISTRATOR"
	RoleMonitor       Role = "MONITOR"
	RoleEndUser       Role = "END_USER"
)

// ParseRole normalizes a caller-supplied role value. Legacy Portuguese
// values from the previous admin panel are accepted as aliases.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleAdministrator, RoleMonitor, RoleEndUser:
		return Role(raw), true
	}
	switch raw {
	case "ADMINISTRADOR", "admin", "administrator":
		return RoleAdministrator, true
	case "monitor":
		return RoleMonitor, true
	case "USUARIO", "user", "end_user":
		return RoleEndUser, true
	}
	return "", false
}

// Subject is the domain model for a provisioned person. CredentialHash is
// write-only: it is never serialized back to callers.
type Subject struct {
	ID                 string
	Name               string
	Email              string
	CredentialHash     string
	Course             *string
	Specialty          *string
	AcademicBackground *string
	BirthDate          *time.Time
	Role               Role
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// AccessGrant couples a subject to exactly one role. Its lifecycle is bound
// to the subject's: created in the same transaction, deleted in the same
// transaction.
type AccessGrant struct {
	ID        string
	SubjectID string
	Role      Role
	CreatedAt time.Time
}
