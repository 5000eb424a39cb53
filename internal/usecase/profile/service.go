package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"farm-policy/internal/domain/profile"
	"farm-policy/internal/repository"
	"farm-policy/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInternal        = errors.New("internal error")
)

// Input is the editable part of a profile. BirthDate is YYYY-MM-DD or empty.
type Input struct {
	Name               string
	BirthDate          string
	Phone              string
	AddressSido        string
	AddressSigungu     string
	AddressDetail      string
	FarmArea           int
	CropTypes          []string
	FarmingType        string
	FarmRegistrationNo string
	HouseholdMembers   int
	AnnualIncome       int
	IsEcoCertified     bool
	IsSuccessorFarmer  bool
}

type Usecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (profile.FarmerProfile, error)
	UpsertProfile(ctx context.Context, userID uuid.UUID, in Input) (profile.FarmerProfile, error)
}

type Service struct {
	repo   repository.ProfileRepository
	cache  usecase.Cache
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo repository.ProfileRepository, cache usecase.Cache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, cache: cache, logger: logger, now: time.Now}
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (profile.FarmerProfile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.FarmerProfile{}, ErrProfileNotFound
		}
		s.logger.Error("get profile", zap.String("user_id", userID.String()), zap.Error(err))
		return profile.FarmerProfile{}, ErrInternal
	}
	return p, nil
}

func (s *Service) UpsertProfile(ctx context.Context, userID uuid.UUID, in Input) (profile.FarmerProfile, error) {
	p, err := s.build(userID, in)
	if err != nil {
		return profile.FarmerProfile{}, err
	}

	saved, err := s.repo.Upsert(ctx, p)
	if err != nil {
		s.logger.Error("upsert profile", zap.String("user_id", userID.String()), zap.Error(err))
		return profile.FarmerProfile{}, ErrInternal
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, usecase.MatchKey(userID)); err != nil {
			s.logger.Warn("invalidate match cache", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}
	return saved, nil
}

func (s *Service) build(userID uuid.UUID, in Input) (profile.FarmerProfile, error) {
	p := profile.FarmerProfile{
		UserID:             userID,
		Name:               strings.TrimSpace(in.Name),
		Phone:              strings.TrimSpace(in.Phone),
		AddressSido:        strings.TrimSpace(in.AddressSido),
		AddressSigungu:     strings.TrimSpace(in.AddressSigungu),
		AddressDetail:      strings.TrimSpace(in.AddressDetail),
		FarmArea:           in.FarmArea,
		CropTypes:          cleanList(in.CropTypes),
		FarmingType:        strings.TrimSpace(in.FarmingType),
		FarmRegistrationNo: strings.TrimSpace(in.FarmRegistrationNo),
		HouseholdMembers:   in.HouseholdMembers,
		AnnualIncome:       in.AnnualIncome,
		IsEcoCertified:     in.IsEcoCertified,
		IsSuccessorFarmer:  in.IsSuccessorFarmer,
	}

	if raw := strings.TrimSpace(in.BirthDate); raw != "" {
		d, err := time.Parse(profile.DateLayout, raw)
		if err != nil {
			return profile.FarmerProfile{}, fmt.Errorf("%w: birth_date must be YYYY-MM-DD", ErrInvalidInput)
		}
		if d.After(s.now()) {
			return profile.FarmerProfile{}, fmt.Errorf("%w: birth_date is in the future", ErrInvalidInput)
		}
		p.BirthDate = d
	}

	switch {
	case p.AnnualIncome < 0:
		return profile.FarmerProfile{}, fmt.Errorf("%w: annual_income must not be negative", ErrInvalidInput)
	case p.FarmArea < 0:
		return profile.FarmerProfile{}, fmt.Errorf("%w: farm_area must not be negative", ErrInvalidInput)
	case p.HouseholdMembers < 0:
		return profile.FarmerProfile{}, fmt.Errorf("%w: household_members must not be negative", ErrInvalidInput)
	}
	return p, nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
