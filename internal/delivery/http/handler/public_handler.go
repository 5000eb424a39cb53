package handler

import (
	"errors"
	"strings"

	"farm-policy/internal/delivery/http/middleware"
	"farm-policy/internal/infrastructure/publicdata"
	ucpublic "farm-policy/internal/usecase/publicdata"

	"github.com/gofiber/fiber/v3"
)

// PublicHandler proxies the government open data APIs. Responses are the
// proxy envelope itself, not the API envelope, so the frontend can consume
// the fallback samples the same way as live data.
type PublicHandler struct {
	uc ucpublic.Usecase
}

func NewPublicHandler(uc ucpublic.Usecase) *PublicHandler {
	return &PublicHandler{uc: uc}
}

func (h *PublicHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/:source", h.Fetch)
}

func (h *PublicHandler) Fetch(c fiber.Ctx) error {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return err
	}
	perPage, err := queryInt(c, "perPage", 10)
	if err != nil {
		return err
	}

	source := strings.ToLower(strings.TrimSpace(c.Params("source")))
	resp, err := h.uc.Fetch(c.Context(), source, publicdata.Query{
		Type:    strings.TrimSpace(c.Query("type")),
		Page:    page,
		PerPage: perPage,
		Keyword: strings.TrimSpace(c.Query("keyword")),
	})
	if err != nil {
		return mapPublicUsecaseError(err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func mapPublicUsecaseError(err error) error {
	var unsupported *publicdata.UnsupportedTypeError
	switch {
	case errors.As(err, &unsupported):
		return middleware.NewAppError(fiber.StatusBadRequest, unsupported.Error(),
			map[string]any{"valid_types": unsupported.Valid}, err)
	case errors.Is(err, ucpublic.ErrUnknownSource):
		return middleware.NewAppError(fiber.StatusNotFound, "Unknown public data source", nil, err)
	default:
		return middleware.Internal(err)
	}
}
