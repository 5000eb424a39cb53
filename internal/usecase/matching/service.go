package matching

import (
	"context"
	"errors"
	"time"

	"farm-policy/internal/domain/matching"
	"farm-policy/internal/domain/policy"
	"farm-policy/internal/domain/profile"
	"farm-policy/internal/metrics"
	"farm-policy/internal/repository"
	"farm-policy/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrPolicyNotFound  = errors.New("policy not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInternal        = errors.New("internal error")
)

const MaxLimit = 100

type Usecase interface {
	GetMatches(ctx context.Context, userID uuid.UUID, f policy.Filter, limit int) ([]matching.PolicyMatch, error)
	GetPolicyMatch(ctx context.Context, userID, policyID uuid.UUID) (matching.PolicyMatch, error)
}

type Service struct {
	profiles repository.ProfileRepository
	policies repository.PolicyRepository
	cache    usecase.Cache
	metrics  *metrics.Metrics
	logger   *zap.Logger
	now      func() time.Time
	ttl      time.Duration
}

func NewService(
	profiles repository.ProfileRepository,
	policies repository.PolicyRepository,
	cache usecase.Cache,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		profiles: profiles,
		policies: policies,
		cache:    cache,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
		ttl:      usecase.MatchTTL,
	}
}

// SetCacheTTL overrides how long a user's match run stays cached.
func (s *Service) SetCacheTTL(ttl time.Duration) {
	if ttl > 0 {
		s.ttl = ttl
	}
}

// GetMatches returns the recommended policies for the user. The filter only
// narrows the ranked list; scores and order are those of the full run. A
// limit of 0 means no limit.
func (s *Service) GetMatches(ctx context.Context, userID uuid.UUID, f policy.Filter, limit int) ([]matching.PolicyMatch, error) {
	if limit < 0 || limit > MaxLimit {
		return nil, ErrInvalidInput
	}

	all, err := s.matchAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := all
	if !f.IsZero() {
		out = make([]matching.PolicyMatch, 0, len(all))
		for _, m := range all {
			if f.Accepts(m.Policy) {
				out = append(out, m)
			}
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Service) matchAll(ctx context.Context, userID uuid.UUID) ([]matching.PolicyMatch, error) {
	key := usecase.MatchKey(userID)
	if s.cache != nil {
		var cached []matching.PolicyMatch
		if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	prof, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.policies.ListActive(ctx, policy.Filter{})
	if err != nil {
		s.logger.Error("load catalog", zap.Error(err))
		return nil, ErrInternal
	}

	start := time.Now()
	out := matching.MatchAt(s.now(), prof, catalog)
	s.metrics.ObserveMatch(len(catalog), len(out), time.Since(start))

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, out, s.ttl); err != nil {
			s.logger.Debug("cache matches", zap.Error(err))
		}
	}
	return out, nil
}

// GetPolicyMatch scores one policy for the detail view, including policies
// at or below the recommendation threshold.
func (s *Service) GetPolicyMatch(ctx context.Context, userID, policyID uuid.UUID) (matching.PolicyMatch, error) {
	prof, err := s.loadProfile(ctx, userID)
	if err != nil {
		return matching.PolicyMatch{}, err
	}

	p, err := s.policies.GetByID(ctx, policyID)
	if err != nil {
		if errors.Is(err, policy.ErrNotFound) {
			return matching.PolicyMatch{}, ErrPolicyNotFound
		}
		s.logger.Error("get policy", zap.String("policy_id", policyID.String()), zap.Error(err))
		return matching.PolicyMatch{}, ErrInternal
	}

	start := time.Now()
	m := matching.Evaluate(s.now(), prof, p)
	recommended := 0
	if m.MatchScore > matching.RecommendThreshold {
		recommended = 1
	}
	s.metrics.ObserveMatch(1, recommended, time.Since(start))
	return m, nil
}

func (s *Service) loadProfile(ctx context.Context, userID uuid.UUID) (profile.FarmerProfile, error) {
	prof, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.FarmerProfile{}, ErrProfileNotFound
		}
		s.logger.Error("load profile", zap.String("user_id", userID.String()), zap.Error(err))
		return profile.FarmerProfile{}, ErrInternal
	}
	return prof, nil
}
