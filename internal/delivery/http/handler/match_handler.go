package handler

import (
	"errors"
	"fmt"

	"farm-policy/internal/delivery/http/middleware"
	"farm-policy/internal/pkg/response"
	ucdocument "farm-policy/internal/usecase/document"
	ucmatching "farm-policy/internal/usecase/matching"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	matches ucmatching.Usecase
	docs    ucdocument.Usecase
}

func NewMatchHandler(matches ucmatching.Usecase, docs ucdocument.Usecase) *MatchHandler {
	return &MatchHandler{matches: matches, docs: docs}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/matches", h.List)
	r.Get("/policies/:id/match", h.ForPolicy)
	r.Get("/policies/:id/documents/check", h.CheckDocuments)
}

// List returns the caller's recommended policies, best first.
func (h *MatchHandler) List(c fiber.Ctx) error {
	uid, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	f, err := policyFilter(c)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return err
	}
	if limit > ucmatching.MaxLimit {
		return middleware.NewAppError(fiber.StatusBadRequest, fmt.Sprintf("limit must be at most %d", ucmatching.MaxLimit), nil, nil)
	}

	out, err := h.matches.GetMatches(c.Context(), uid, f, limit)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.OK(c, out)
}

func (h *MatchHandler) ForPolicy(c fiber.Ctx) error {
	uid, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	pid, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	m, err := h.matches.GetPolicyMatch(c.Context(), uid, pid)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.OK(c, m)
}

func (h *MatchHandler) CheckDocuments(c fiber.Ctx) error {
	uid, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	pid, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.docs.CheckForPolicy(c.Context(), uid, pid)
	if err != nil {
		return mapDocumentUsecaseError(err)
	}

	ready := 0
	for _, it := range items {
		if it.HasDocument {
			ready++
		}
	}
	return response.OK(c, map[string]any{
		"items":    items,
		"ready":    ready,
		"required": len(items),
	})
}

func mapMatchUsecaseError(err error) error {
	switch {
	case errors.Is(err, ucmatching.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, ucmatching.ErrPolicyNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Policy not found", nil, err)
	case errors.Is(err, ucmatching.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.Internal(err)
	}
}
