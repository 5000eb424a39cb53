package policy

import (
	"context"
	"errors"
	"testing"
	"time"

	"farm-policy/internal/domain/policy"

	"github.com/google/uuid"
)

type mockPolicyRepo struct {
	policies  []policy.Policy
	template  *policy.FormTemplate
	err       error
	listCalls int
}

func (m *mockPolicyRepo) ListCategories(context.Context) ([]policy.Category, error) {
	return []policy.Category{{Name: "소득안정"}}, m.err
}

func (m *mockPolicyRepo) ListActive(_ context.Context, f policy.Filter) ([]policy.Policy, error) {
	m.listCalls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([]policy.Policy, 0)
	for _, p := range m.policies {
		if f.Accepts(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPolicyRepo) GetByID(_ context.Context, id uuid.UUID) (policy.Policy, error) {
	for _, p := range m.policies {
		if p.ID == id {
			return p, nil
		}
	}
	return policy.Policy{}, policy.ErrNotFound
}

func (m *mockPolicyRepo) GetFormTemplate(context.Context, uuid.UUID) (*policy.FormTemplate, error) {
	return m.template, m.err
}

func (m *mockPolicyRepo) UpsertExternal(context.Context, policy.Policy) (bool, error) {
	return false, nil
}

// mapCache is an in-memory cache storing values as-is.
type mapCache struct {
	m map[string]any
}

func (c *mapCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	v, ok := c.m[key]
	if !ok {
		return false, nil
	}
	*(out.(*[]policy.Policy)) = v.([]policy.Policy)
	return true, nil
}

func (c *mapCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.m[key] = value
	return nil
}

func (c *mapCache) Delete(context.Context, ...string) error {
	return nil
}

func (c *mapCache) DeleteByPattern(context.Context, string) (int, error) {
	return 0, nil
}

func (c *mapCache) SetIfNotExists(context.Context, string, string, time.Duration) (bool, error) {
	return true, nil
}

func TestListPolicies_CachesResult(t *testing.T) {
	repo := &mockPolicyRepo{policies: []policy.Policy{{ID: uuid.New(), Title: "청년농 영농정착 지원"}}}
	svc := NewService(repo, &mapCache{m: map[string]any{}}, nil)

	for i := 0; i < 2; i++ {
		out, err := svc.ListPolicies(context.Background(), policy.Filter{Search: "청년"})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if len(out) != 1 {
			t.Fatalf("expected 1 policy, got %d", len(out))
		}
	}
	if repo.listCalls != 1 {
		t.Fatalf("expected 1 repository call, got %d", repo.listCalls)
	}
}

func TestListPolicies_NoCache(t *testing.T) {
	repo := &mockPolicyRepo{err: errors.New("db down")}
	svc := NewService(repo, nil, nil)
	if _, err := svc.ListPolicies(context.Background(), policy.Filter{}); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestGetPolicy_NotFound(t *testing.T) {
	svc := NewService(&mockPolicyRepo{}, nil, nil)
	if _, err := svc.GetPolicy(context.Background(), uuid.New()); !errors.Is(err, ErrPolicyNotFound) {
		t.Fatalf("expected ErrPolicyNotFound, got %v", err)
	}
}

func TestGetFormTemplate(t *testing.T) {
	svc := NewService(&mockPolicyRepo{}, nil, nil)
	if _, err := svc.GetFormTemplate(context.Background(), uuid.New()); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}

	tpl := &policy.FormTemplate{FormName: "신청서"}
	svc = NewService(&mockPolicyRepo{template: tpl}, nil, nil)
	got, err := svc.GetFormTemplate(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.FormName != "신청서" {
		t.Fatalf("unexpected template %+v", got)
	}
}
