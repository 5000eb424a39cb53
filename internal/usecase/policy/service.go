package policy

import (
	"context"
	"errors"
	"time"

	"farm-policy/internal/domain/policy"
	"farm-policy/internal/repository"
	"farm-policy/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrPolicyNotFound   = errors.New("policy not found")
	ErrTemplateNotFound = errors.New("form template not found")
	ErrInternal         = errors.New("internal error")
)

type Usecase interface {
	ListCategories(ctx context.Context) ([]policy.Category, error)
	ListPolicies(ctx context.Context, f policy.Filter) ([]policy.Policy, error)
	GetPolicy(ctx context.Context, id uuid.UUID) (policy.Policy, error)
	GetFormTemplate(ctx context.Context, policyID uuid.UUID) (policy.FormTemplate, error)
}

type Service struct {
	repo   repository.PolicyRepository
	cache  usecase.Cache
	logger *zap.Logger
	ttl    time.Duration
}

func NewService(repo repository.PolicyRepository, cache usecase.Cache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, cache: cache, logger: logger, ttl: usecase.PolicyListTTL}
}

func (s *Service) SetCacheTTL(ttl time.Duration) {
	if ttl > 0 {
		s.ttl = ttl
	}
}

func (s *Service) ListCategories(ctx context.Context) ([]policy.Category, error) {
	out, err := s.repo.ListCategories(ctx)
	if err != nil {
		s.logger.Error("list categories", zap.Error(err))
		return nil, ErrInternal
	}
	return out, nil
}

// ListPolicies returns active policies matching f, served from the listing
// cache when possible.
func (s *Service) ListPolicies(ctx context.Context, f policy.Filter) ([]policy.Policy, error) {
	key := usecase.PolicyListKey(f)
	if s.cache != nil {
		var cached []policy.Policy
		if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	out, err := s.repo.ListActive(ctx, f)
	if err != nil {
		s.logger.Error("list policies", zap.Error(err))
		return nil, ErrInternal
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, out, s.ttl); err != nil {
			s.logger.Debug("cache policy list", zap.Error(err))
		}
	}
	return out, nil
}

func (s *Service) GetPolicy(ctx context.Context, id uuid.UUID) (policy.Policy, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, policy.ErrNotFound) {
			return policy.Policy{}, ErrPolicyNotFound
		}
		s.logger.Error("get policy", zap.String("policy_id", id.String()), zap.Error(err))
		return policy.Policy{}, ErrInternal
	}
	return p, nil
}

func (s *Service) GetFormTemplate(ctx context.Context, policyID uuid.UUID) (policy.FormTemplate, error) {
	t, err := s.repo.GetFormTemplate(ctx, policyID)
	if err != nil {
		s.logger.Error("get form template", zap.String("policy_id", policyID.String()), zap.Error(err))
		return policy.FormTemplate{}, ErrInternal
	}
	if t == nil {
		return policy.FormTemplate{}, ErrTemplateNotFound
	}
	return *t, nil
}
