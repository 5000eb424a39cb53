package handler

import (
	"errors"

	"farm-policy/internal/delivery/http/dto"
	"farm-policy/internal/delivery/http/middleware"
	"farm-policy/internal/domain/profile"
	"farm-policy/internal/pkg/response"
	ucprofile "farm-policy/internal/usecase/profile"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	uc ucprofile.Usecase
}

func NewProfileHandler(uc ucprofile.Usecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/profile", h.Get)
	r.Put("/profile", h.Upsert)
	r.Get("/profile/farming-types", h.FarmingTypes)
}

func (h *ProfileHandler) Get(c fiber.Ctx) error {
	uid, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	p, err := h.uc.GetProfile(c.Context(), uid)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.OK(c, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) Upsert(c fiber.Ctx) error {
	uid, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	var req dto.ProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.UpsertProfile(c.Context(), uid, req.Input())
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.OK(c, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) FarmingTypes(c fiber.Ctx) error {
	return response.OK(c, profile.FarmingTypes)
}

func mapProfileUsecaseError(err error) error {
	switch {
	case errors.Is(err, ucprofile.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, ucprofile.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	default:
		return middleware.Internal(err)
	}
}
