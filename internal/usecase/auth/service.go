package auth

import (
	"context"
	"errors"
	"strings"

	"farm-policy/internal/domain/user"
	"farm-policy/internal/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidRefreshToken    = errors.New("invalid refresh token")
	ErrRefreshTokenExpired    = errors.New("refresh token expired")
	ErrInternal               = errors.New("internal error")
)

const minPasswordLength = 8

type Credentials struct {
	Email    string
	Password string
}

type Session struct {
	User   user.User `json:"user"`
	Tokens jwt.Pair  `json:"tokens"`
}

type Usecase interface {
	Register(ctx context.Context, in Credentials) (Session, error)
	Login(ctx context.Context, in Credentials) (Session, error)
	Refresh(ctx context.Context, refreshToken string) (jwt.Pair, error)
}

type Service struct {
	users user.Repository
	jwt   jwt.Service
	cost  int
}

func NewService(users user.Repository, jwtSvc jwt.Service) *Service {
	return &Service{users: users, jwt: jwtSvc, cost: bcrypt.DefaultCost}
}

func (s *Service) Register(ctx context.Context, in Credentials) (Session, error) {
	email := normalizeEmail(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return Session{}, ErrInvalidInput
	}
	if len(strings.TrimSpace(in.Password)) < minPasswordLength {
		return Session{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return Session{}, ErrInternal
	}
	if exists {
		return Session{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return Session{}, ErrInternal
	}

	u := user.User{ID: uuid.New(), Email: email, PasswordHash: string(hash)}
	if err := s.users.CreateUser(ctx, u); err != nil {
		// lost a race with a concurrent registration
		if exists, exErr := s.users.ExistsByEmail(ctx, email); exErr == nil && exists {
			return Session{}, ErrEmailAlreadyRegistered
		}
		return Session{}, ErrInternal
	}

	created, err := s.users.GetUserByID(ctx, u.ID)
	if err != nil {
		return Session{}, ErrInternal
	}
	return s.session(created)
}

func (s *Service) Login(ctx context.Context, in Credentials) (Session, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return Session{}, ErrInvalidCredentials
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, ErrInternal
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}
	return s.session(u)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (jwt.Pair, error) {
	claims, err := s.jwt.ValidateRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return jwt.Pair{}, ErrRefreshTokenExpired
		}
		return jwt.Pair{}, ErrInvalidRefreshToken
	}

	u, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return jwt.Pair{}, ErrInvalidRefreshToken
		}
		return jwt.Pair{}, ErrInternal
	}

	pair, err := s.jwt.IssuePair(u.ID, u.Email)
	if err != nil {
		return jwt.Pair{}, ErrInternal
	}
	return pair, nil
}

func (s *Service) session(u user.User) (Session, error) {
	pair, err := s.jwt.IssuePair(u.ID, u.Email)
	if err != nil {
		return Session{}, ErrInternal
	}
	u.PasswordHash = ""
	return Session{User: u, Tokens: pair}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
