package usecase

import (
	"strings"
	"testing"

	"farm-policy/internal/domain/policy"

	"github.com/google/uuid"
)

func TestPolicyListKey_NormalizesSearch(t *testing.T) {
	a := PolicyListKey(policy.Filter{Search: "  Smart Farm "})
	b := PolicyListKey(policy.Filter{Search: "smart farm"})
	if a != b {
		t.Fatalf("expected equal keys, got %s and %s", a, b)
	}
	if !strings.HasPrefix(a, "policies:list:") {
		t.Fatalf("unexpected prefix: %s", a)
	}
}

// Keys must only merge searches that return the same rows.
func TestPolicyListKey_InnerSpacesMatter(t *testing.T) {
	wide := policy.Filter{Search: "청년  농업인"}
	narrow := policy.Filter{Search: "청년 농업인"}
	if PolicyListKey(wide) == PolicyListKey(narrow) {
		t.Fatalf("searches with different inner spacing must not share a key")
	}

	p := policy.Policy{Title: "청년 농업인 영농정착지원"}
	if wide.Accepts(p) == narrow.Accepts(p) {
		t.Fatalf("expected the two searches to differ on %q", p.Title)
	}
}

func TestPolicyListKey_CategoryMatters(t *testing.T) {
	a := PolicyListKey(policy.Filter{})
	b := PolicyListKey(policy.Filter{CategoryID: uuid.New()})
	if a == b {
		t.Fatalf("expected different keys")
	}
}

func TestMatchKey(t *testing.T) {
	id := uuid.MustParse("7c0a1f8e-3a51-4c59-9e0b-8d2b1f8c6a10")
	if got := MatchKey(id); got != "matches:7c0a1f8e-3a51-4c59-9e0b-8d2b1f8c6a10" {
		t.Fatalf("unexpected key %s", got)
	}
}
