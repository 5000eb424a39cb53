package handler

import (
	"errors"

	"farm-policy/internal/delivery/http/middleware"
	"farm-policy/internal/pkg/response"
	ucpolicy "farm-policy/internal/usecase/policy"

	"github.com/gofiber/fiber/v3"
)

type PolicyHandler struct {
	uc ucpolicy.Usecase
}

func NewPolicyHandler(uc ucpolicy.Usecase) *PolicyHandler {
	return &PolicyHandler{uc: uc}
}

func (h *PolicyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/categories", h.ListCategories)
	r.Get("/policies", h.ListPolicies)
	r.Get("/policies/:id", h.GetPolicy)
	r.Get("/policies/:id/form", h.GetFormTemplate)
}

func (h *PolicyHandler) ListCategories(c fiber.Ctx) error {
	out, err := h.uc.ListCategories(c.Context())
	if err != nil {
		return mapPolicyUsecaseError(err)
	}
	return response.OK(c, out)
}

func (h *PolicyHandler) ListPolicies(c fiber.Ctx) error {
	f, err := policyFilter(c)
	if err != nil {
		return err
	}
	out, err := h.uc.ListPolicies(c.Context(), f)
	if err != nil {
		return mapPolicyUsecaseError(err)
	}
	return response.OK(c, out)
}

func (h *PolicyHandler) GetPolicy(c fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.uc.GetPolicy(c.Context(), id)
	if err != nil {
		return mapPolicyUsecaseError(err)
	}
	return response.OK(c, p)
}

func (h *PolicyHandler) GetFormTemplate(c fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	tpl, err := h.uc.GetFormTemplate(c.Context(), id)
	if err != nil {
		return mapPolicyUsecaseError(err)
	}
	return response.OK(c, tpl)
}

func mapPolicyUsecaseError(err error) error {
	switch {
	case errors.Is(err, ucpolicy.ErrPolicyNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Policy not found", nil, err)
	case errors.Is(err, ucpolicy.ErrTemplateNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Form template not found", nil, err)
	default:
		return middleware.Internal(err)
	}
}
