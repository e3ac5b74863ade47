package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Klimentov1992/flightbooking/internal/auth"
	"github.com/Klimentov1992/flightbooking/internal/domain"
	"github.com/Klimentov1992/flightbooking/internal/repository"
)

type UserUseCase interface {
	Register(ctx context.Context, input Credentials) (*AuthResult, error)
	Login(ctx context.Context, input Credentials) (*AuthResult, error)
	Me(ctx context.Context, caller domain.Caller) (*domain.User, error)
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResult struct {
	User  *domain.User     `json:"user"`
	Token auth.AccessToken `json:"token"`
}

type UserService struct {
	users     repository.UserRepository
	jwtSecret string
	accessTTL time.Duration
}

func NewUserService(users repository.UserRepository, jwtSecret string, accessTTL time.Duration) *UserService {
	return &UserService{users: users, jwtSecret: jwtSecret, accessTTL: accessTTL}
}

func (s *UserService) Register(ctx context.Context, input Credentials) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.Validation("email", "Please add a valid email")
	}
	if len(input.Password) < 6 {
		return nil, domain.Validation("password", "Password must be at least 6 characters")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *UserService) Login(ctx context.Context, input Credentials) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Unauthorized("Invalid credentials")
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, input.Password) {
		return nil, domain.Unauthorized("Invalid credentials")
	}
	return s.issue(user)
}

func (s *UserService) Me(ctx context.Context, caller domain.Caller) (*domain.User, error) {
	return s.users.GetByID(ctx, caller.ID)
}

func (s *UserService) issue(user *domain.User) (*AuthResult, error) {
	token, err := auth.NewAccessToken(s.jwtSecret, user.ID, user.Role, s.accessTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

var _ UserUseCase = (*UserService)(nil)
