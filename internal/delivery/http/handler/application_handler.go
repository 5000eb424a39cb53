package handler

import (
	"errors"
	"strings"

	"farm-policy/internal/delivery/http/dto"
	"farm-policy/internal/delivery/http/middleware"
	"farm-policy/internal/domain/application"
	"farm-policy/internal/pkg/response"
	ucapplication "farm-policy/internal/usecase/application"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	uc ucapplication.Usecase
}

func NewApplicationHandler(uc ucapplication.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/applications", h.List)
	r.Post("/applications", h.Save)
	r.Get("/applications/:id/pdf", h.PDF)
	r.Get("/policies/:id/application/draft", h.Draft)
}

func (h *ApplicationHandler) List(c fiber.Ctx) error {
	uid, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.Context(), uid)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.OK(c, out)
}

func (h *ApplicationHandler) Draft(c fiber.Ctx) error {
	uid, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	pid, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	d, err := h.uc.NewDraft(c.Context(), uid, pid)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.OK(c, d)
}

func (h *ApplicationHandler) Save(c fiber.Ctx) error {
	uid, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	var req dto.SaveApplicationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	pid, err := uuid.Parse(strings.TrimSpace(req.PolicyID))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid policy_id", nil, err)
	}

	saved, err := h.uc.Save(c.Context(), uid, ucapplication.SaveInput{
		PolicyID: pid,
		FormData: application.FormData(req.FormData),
		Status:   req.Status,
	})
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Created(c, saved)
}

func (h *ApplicationHandler) PDF(c fiber.Ctx) error {
	uid, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	body, err := h.uc.RenderPDF(c.Context(), uid, id)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.PDF(c, "application-"+id.String()+".pdf", body)
}

func mapApplicationUsecaseError(err error) error {
	var missing *ucapplication.MissingFieldsError
	switch {
	case errors.As(err, &missing):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Required fields are missing",
			map[string]any{"missing_fields": missing.Labels}, err)
	case errors.Is(err, ucapplication.ErrPolicyNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Policy not found", nil, err)
	case errors.Is(err, ucapplication.ErrTemplateNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Form template not found", nil, err)
	case errors.Is(err, ucapplication.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, ucapplication.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	default:
		return middleware.Internal(err)
	}
}
