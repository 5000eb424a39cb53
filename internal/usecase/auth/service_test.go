package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"farm-policy/internal/domain/user"
	"farm-policy/internal/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type memUsers struct {
	byID      map[uuid.UUID]user.User
	createErr error
}

func newMemUsers() *memUsers { return &memUsers{byID: map[uuid.UUID]user.User{}} }

func (m *memUsers) CreateUser(_ context.Context, u user.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	u.CreatedAt = time.Now()
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

func newTestService(users user.Repository) *Service {
	s := NewService(users, jwt.NewHMACService("a", "r", time.Minute, time.Hour))
	s.cost = bcrypt.MinCost
	return s
}

func TestRegister_NormalizesEmailAndIssuesTokens(t *testing.T) {
	users := newMemUsers()
	s := newTestService(users)

	sess, err := s.Register(context.Background(), Credentials{Email: "  Kim@Farm.KR ", Password: "password1"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if sess.User.Email != "kim@farm.kr" {
		t.Fatalf("email not normalized: %q", sess.User.Email)
	}
	if sess.User.PasswordHash != "" {
		t.Fatalf("password hash leaked")
	}
	if sess.Tokens.AccessToken == "" || sess.Tokens.RefreshToken == "" {
		t.Fatalf("tokens missing")
	}
}

func TestRegister_Validation(t *testing.T) {
	s := newTestService(newMemUsers())
	cases := []Credentials{
		{Email: "", Password: "password1"},
		{Email: "not-an-email", Password: "password1"},
		{Email: "a@b.c", Password: "short"},
	}
	for _, in := range cases {
		if _, err := s.Register(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestRegister_Duplicate(t *testing.T) {
	s := newTestService(newMemUsers())
	in := Credentials{Email: "a@b.c", Password: "password1"}
	if _, err := s.Register(context.Background(), in); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := s.Register(context.Background(), in); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	s := newTestService(newMemUsers())
	if _, err := s.Register(context.Background(), Credentials{Email: "a@b.c", Password: "password1"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := s.Login(context.Background(), Credentials{Email: "A@B.C", Password: "password1"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := s.Login(context.Background(), Credentials{Email: "a@b.c", Password: "wrong-pass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := s.Login(context.Background(), Credentials{Email: "x@b.c", Password: "password1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestRefresh(t *testing.T) {
	s := newTestService(newMemUsers())
	sess, err := s.Register(context.Background(), Credentials{Email: "a@b.c", Password: "password1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	pair, err := s.Refresh(context.Background(), sess.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if pair.AccessToken == "" {
		t.Fatalf("no access token")
	}

	if _, err := s.Refresh(context.Background(), sess.Tokens.AccessToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("access token must not refresh, got %v", err)
	}
}
