package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"farm-policy/internal/domain/policy"

	"github.com/google/uuid"
)

// Cache is the subset of the Redis cache the use cases need. Implementations
// treat an unavailable backend as a miss.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeleteByPattern(ctx context.Context, pattern string) (int, error)
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

const (
	PolicyListPattern = "policies:list:*"
	MatchPattern      = "matches:*"
	SyncLockKey       = "sync:lock"

	PolicyListTTL = 10 * time.Minute
	MatchTTL      = 2 * time.Minute
)

type policyListKeyInput struct {
	CategoryID string `json:"category_id"`
	Search     string `json:"search"`
}

// normalizeSearchValue applies the same normalization as the search itself:
// surrounding space is dropped and matching is case-insensitive. Inner spaces
// are significant.
func normalizeSearchValue(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// PolicyListKey hashes the normalized filter so equivalent searches share an
// entry.
func PolicyListKey(f policy.Filter) string {
	in := policyListKeyInput{Search: normalizeSearchValue(f.Search)}
	if f.CategoryID != uuid.Nil {
		in.CategoryID = f.CategoryID.String()
	}
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "policies:list:" + hex.EncodeToString(sum[:])
}

func MatchKey(userID uuid.UUID) string {
	return "matches:" + userID.String()
}
