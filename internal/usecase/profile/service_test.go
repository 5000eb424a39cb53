package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"farm-policy/internal/domain/profile"

	"github.com/google/uuid"
)

type mockProfileRepo struct {
	stored map[uuid.UUID]profile.FarmerProfile
	err    error
}

func (m *mockProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (profile.FarmerProfile, error) {
	if m.err != nil {
		return profile.FarmerProfile{}, m.err
	}
	p, ok := m.stored[userID]
	if !ok {
		return profile.FarmerProfile{}, profile.ErrNotFound
	}
	return p, nil
}

func (m *mockProfileRepo) Upsert(_ context.Context, p profile.FarmerProfile) (profile.FarmerProfile, error) {
	if m.err != nil {
		return profile.FarmerProfile{}, m.err
	}
	p.ID = uuid.New()
	m.stored[p.UserID] = p
	return p, nil
}

type deleteRecorder struct {
	deleted []string
}

func (d *deleteRecorder) GetJSON(context.Context, string, any) (bool, error) { return false, nil }

func (d *deleteRecorder) SetJSON(context.Context, string, any, time.Duration) error { return nil }

func (d *deleteRecorder) Delete(_ context.Context, keys ...string) error {
	d.deleted = append(d.deleted, keys...)
	return nil
}

func (d *deleteRecorder) DeleteByPattern(context.Context, string) (int, error) { return 0, nil }

func (d *deleteRecorder) SetIfNotExists(context.Context, string, string, time.Duration) (bool, error) {
	return true, nil
}

func newTestService(repo *mockProfileRepo, cache *deleteRecorder) *Service {
	s := NewService(repo, cache, nil)
	s.now = func() time.Time { return time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC) }
	return s
}

func TestUpsertProfile_TrimsAndInvalidatesMatches(t *testing.T) {
	repo := &mockProfileRepo{stored: map[uuid.UUID]profile.FarmerProfile{}}
	cache := &deleteRecorder{}
	svc := newTestService(repo, cache)
	uid := uuid.New()

	got, err := svc.UpsertProfile(context.Background(), uid, Input{
		Name:        "  김농부 ",
		BirthDate:   "1980-05-10",
		AddressSido: " 전라남도",
		CropTypes:   []string{" 벼 ", "", "콩"},
		FarmArea:    3000,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Name != "김농부" || got.AddressSido != "전라남도" {
		t.Fatalf("fields not trimmed: %+v", got)
	}
	if len(got.CropTypes) != 2 || got.CropTypes[0] != "벼" {
		t.Fatalf("unexpected crops %v", got.CropTypes)
	}
	if got.BirthDate.Year() != 1980 {
		t.Fatalf("birth date not parsed: %v", got.BirthDate)
	}
	if len(cache.deleted) != 1 || cache.deleted[0] != "matches:"+uid.String() {
		t.Fatalf("match cache not invalidated: %v", cache.deleted)
	}
}

func TestUpsertProfile_EmptyBirthDateAllowed(t *testing.T) {
	repo := &mockProfileRepo{stored: map[uuid.UUID]profile.FarmerProfile{}}
	svc := newTestService(repo, &deleteRecorder{})

	got, err := svc.UpsertProfile(context.Background(), uuid.New(), Input{Name: "a"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !got.BirthDate.IsZero() {
		t.Fatalf("expected zero birth date")
	}
}

func TestUpsertProfile_Validation(t *testing.T) {
	repo := &mockProfileRepo{stored: map[uuid.UUID]profile.FarmerProfile{}}
	svc := newTestService(repo, &deleteRecorder{})

	cases := map[string]Input{
		"bad date":         {BirthDate: "1980/05/10"},
		"future date":      {BirthDate: "2030-01-01"},
		"negative income":  {AnnualIncome: -1},
		"negative area":    {FarmArea: -5},
		"negative members": {HouseholdMembers: -1},
	}
	for name, in := range cases {
		if _, err := svc.UpsertProfile(context.Background(), uuid.New(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
	if len(repo.stored) != 0 {
		t.Fatalf("invalid input must not be stored")
	}
}

func TestGetProfile(t *testing.T) {
	svc := newTestService(&mockProfileRepo{stored: map[uuid.UUID]profile.FarmerProfile{}}, &deleteRecorder{})
	if _, err := svc.GetProfile(context.Background(), uuid.New()); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}

	svc = newTestService(&mockProfileRepo{err: errors.New("boom")}, &deleteRecorder{})
	if _, err := svc.GetProfile(context.Background(), uuid.New()); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}
