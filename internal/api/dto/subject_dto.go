package dto

import (
	"time"

	"github.com/spec-kit/mentorship-service/internal/domain"
)

// SubjectCreateRequest payload for provisioning a subject with its role.
type SubjectCreateRequest struct {
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	Password           string  `json:"password"`
	Role               string  `json:"role"`
	Course             *string `json:"course,omitempty"`
	Specialty          *string `json:"specialty,omitempty"`
	AcademicBackground *string `json:"academic_background,omitempty"`
	BirthDate          *string `json:"birth_date,omitempty"`
}

// SubjectUpdateRequest payload for partial updates. Absent fields are left
// unchanged; an empty password also means "unchanged".
type SubjectUpdateRequest struct {
	Name               *string `json:"name,omitempty"`
	Email              *string `json:"email,omitempty"`
	Password           *string `json:"password,omitempty"`
	Course             *string `json:"course,omitempty"`
	Specialty          *string `json:"specialty,omitempty"`
	AcademicBackground *string `json:"academic_background,omitempty"`
	BirthDate          *string `json:"birth_date,omitempty"`
}

// SubjectResponse is the caller-facing subject representation. It never
// carries the credential hash.
type SubjectResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Role               string    `json:"role"`
	Course             *string   `json:"course,omitempty"`
	Specialty          *string   `json:"specialty,omitempty"`
	AcademicBackground *string   `json:"academic_background,omitempty"`
	BirthDate          *string   `json:"birth_date,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewSubjectResponse maps a domain subject onto the response shape.
func NewSubjectResponse(subject *domain.Subject) SubjectResponse {
	resp := SubjectResponse{
		ID:                 subject.ID,
		Name:               subject.Name,
		Email:              subject.Email,
		Role:               string(subject.Role),
		Course:             subject.Course,
		Specialty:          subject.Specialty,
		AcademicBackground: subject.AcademicBackground,
		CreatedAt:          subject.CreatedAt,
		UpdatedAt:          subject.UpdatedAt,
	}
	if subject.BirthDate != nil {
		formatted := subject.BirthDate.Format("2006-01-02")
		resp.BirthDate = &formatted
	}
	return resp
}

// DeleteResponse reports the outcome of a subject deletion.
type DeleteResponse struct {
	Deleted  bool  `json:"deleted"`
	Affected int64 `json:"affected"`
}
