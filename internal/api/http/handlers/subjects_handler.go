package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mentorship-service/internal/api/dto"
	"github.com/spec-kit/mentorship-service/internal/domain"
	"github.com/spec-kit/mentorship-service/internal/service"
	util "github.com/spec-kit/mentorship-service/pkg/util"
)

// SubjectsHandler exposes identity provisioning endpoints.
type SubjectsHandler struct {
	provisioning *service.ProvisioningService
}

// NewSubjectsHandler constructs handler.
func NewSubjectsHandler(provisioning *service.ProvisioningService) *SubjectsHandler {
	return &SubjectsHandler{provisioning: provisioning}
}

// Create handles POST /subjects.
func (h *SubjectsHandler) Create(c *fiber.Ctx) error {
	var req dto.SubjectCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		return util.NewValidationError("name, email, password and role are required", nil)
	}

	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return util.NewValidationError("invalid role", map[string]any{"role": req.Role})
	}

	input := service.SubjectCreateInput{
		Name:               req.Name,
		Email:              req.Email,
		Credential:         req.Password,
		Role:               role,
		Course:             req.Course,
		Specialty:          req.Specialty,
		AcademicBackground: req.AcademicBackground,
	}
	if req.BirthDate != nil && *req.BirthDate != "" {
		birthDate, err := dto.ParseDate(*req.BirthDate)
		if err != nil {
			return util.NewValidationError(err.Error(), nil)
		}
		input.BirthDate = &birthDate
	}

	subject, err := h.provisioning.CreateSubject(c.UserContext(), input)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.NewSubjectResponse(subject),
	})
}

// Get handles GET /subjects/:id.
func (h *SubjectsHandler) Get(c *fiber.Ctx) error {
	subject, err := h.provisioning.GetSubject(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSubjectResponse(subject)})
}

// List handles GET /subjects.
func (h *SubjectsHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	subjects, err := h.provisioning.ListSubjects(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}

	result := make([]dto.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		result = append(result, dto.NewSubjectResponse(&subjects[i]))
	}
	return c.JSON(fiber.Map{"data": result})
}

// Update handles PUT /subjects/:id.
func (h *SubjectsHandler) Update(c *fiber.Ctx) error {
	var req dto.SubjectUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	input := service.SubjectUpdateInput{
		Name:               req.Name,
		Email:              req.Email,
		Credential:         req.Password,
		Course:             req.Course,
		Specialty:          req.Specialty,
		AcademicBackground: req.AcademicBackground,
	}
	if req.BirthDate != nil && *req.BirthDate != "" {
		birthDate, err := dto.ParseDate(*req.BirthDate)
		if err != nil {
			return util.NewValidationError(err.Error(), nil)
		}
		input.BirthDate = &birthDate
	}

	subject, err := h.provisioning.UpdateSubject(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSubjectResponse(subject)})
}

// Delete handles DELETE /subjects/:id.
func (h *SubjectsHandler) Delete(c *fiber.Ctx) error {
	affected, err := h.provisioning.DeleteSubject(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DeleteResponse{Deleted: true, Affected: affected}})
}
