package handler

import (
	"strconv"
	"strings"

	"farm-policy/internal/delivery/http/middleware"
	"farm-policy/internal/domain/policy"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func paramUUID(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+name, nil, err)
	}
	return id, nil
}

// policyFilter reads ?category_id=&search=. An empty category_id means all.
func policyFilter(c fiber.Ctx) (policy.Filter, error) {
	f := policy.Filter{Search: strings.TrimSpace(c.Query("search"))}
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return policy.Filter{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid category_id", nil, err)
		}
		f.CategoryID = id
	}
	return f, nil
}

func queryInt(c fiber.Ctx, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+key, nil, err)
	}
	return n, nil
}
