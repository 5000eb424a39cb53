package handler

import (
	"errors"

	"farm-policy/internal/delivery/http/dto"
	"farm-policy/internal/delivery/http/middleware"
	"farm-policy/internal/pkg/response"
	ucdocument "farm-policy/internal/usecase/document"

	"github.com/gofiber/fiber/v3"
)

type DocumentHandler struct {
	uc ucdocument.Usecase
}

func NewDocumentHandler(uc ucdocument.Usecase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// RegisterRoutes registers /documents/types before /documents/:id.
func (h *DocumentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/documents/types", h.Types)
	r.Get("/documents", h.List)
	r.Post("/documents", h.Register)
	r.Delete("/documents/:id", h.Delete)
}

func (h *DocumentHandler) Types(c fiber.Ctx) error {
	return response.OK(c, h.uc.Types())
}

func (h *DocumentHandler) List(c fiber.Ctx) error {
	uid, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.Context(), uid)
	if err != nil {
		return mapDocumentUsecaseError(err)
	}
	return response.OK(c, out)
}

func (h *DocumentHandler) Register(c fiber.Ctx) error {
	uid, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	var req dto.RegisterDocumentRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	d, err := h.uc.Register(c.Context(), uid, ucdocument.RegisterInput{
		DocName:  req.DocName,
		DocType:  req.DocType,
		FileName: req.FileName,
		FileSize: req.FileSize,
		MimeType: req.MimeType,
	})
	if err != nil {
		return mapDocumentUsecaseError(err)
	}
	return response.Created(c, d)
}

func (h *DocumentHandler) Delete(c fiber.Ctx) error {
	uid, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	d, err := h.uc.Delete(c.Context(), uid, id)
	if err != nil {
		return mapDocumentUsecaseError(err)
	}
	return response.OK(c, d)
}

func mapDocumentUsecaseError(err error) error {
	switch {
	case errors.Is(err, ucdocument.ErrDocumentNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Document not found", nil, err)
	case errors.Is(err, ucdocument.ErrPolicyNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Policy not found", nil, err)
	case errors.Is(err, ucdocument.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	default:
		return middleware.Internal(err)
	}
}
