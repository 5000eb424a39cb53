package user

import (
	"context"
	"errors"
	"testing"

	"farm-policy/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type memUsers struct {
	byID map[uuid.UUID]user.User
}

func (m *memUsers) CreateUser(_ context.Context, u user.User) error {
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetUserByEmail(ctx, email)
	return err == nil, nil
}

func (m *memUsers) UpdateUser(_ context.Context, u user.User) error {
	if _, ok := m.byID[u.ID]; !ok {
		return user.ErrNotFound
	}
	m.byID[u.ID] = u
	return nil
}

func seed(t *testing.T, users *memUsers, email, password string) uuid.UUID {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	id := uuid.New()
	users.byID[id] = user.User{ID: id, Email: email, PasswordHash: string(hash)}
	return id
}

func newTestService(users *memUsers) *Service {
	s := NewService(users)
	s.cost = bcrypt.MinCost
	return s
}

func strptr(s string) *string { return &s }

func TestGetMe_HidesHash(t *testing.T) {
	users := &memUsers{byID: map[uuid.UUID]user.User{}}
	id := seed(t, users, "kim@farm.kr", "password1")
	svc := newTestService(users)

	u, err := svc.GetMe(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.PasswordHash != "" || u.Email != "kim@farm.kr" {
		t.Fatalf("unexpected user %+v", u)
	}

	if _, err := svc.GetMe(context.Background(), uuid.New()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateMe(t *testing.T) {
	users := &memUsers{byID: map[uuid.UUID]user.User{}}
	id := seed(t, users, "kim@farm.kr", "password1")
	seed(t, users, "lee@farm.kr", "password2")
	svc := newTestService(users)
	ctx := context.Background()

	if _, err := svc.UpdateMe(ctx, id, UpdateMeInput{Email: strptr("new@farm.kr"), CurrentPassword: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.UpdateMe(ctx, id, UpdateMeInput{Email: strptr("LEE@farm.kr"), CurrentPassword: "password1"}); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
	if _, err := svc.UpdateMe(ctx, id, UpdateMeInput{Password: strptr("short"), CurrentPassword: "password1"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.UpdateMe(ctx, id, UpdateMeInput{CurrentPassword: "password1"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty update must be rejected, got %v", err)
	}

	u, err := svc.UpdateMe(ctx, id, UpdateMeInput{
		Email:           strptr(" New@Farm.kr "),
		Password:        strptr("password9"),
		CurrentPassword: "password1",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Email != "new@farm.kr" {
		t.Fatalf("email not normalized: %s", u.Email)
	}
	stored := users.byID[id]
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password9")) != nil {
		t.Fatalf("password not updated")
	}
}
