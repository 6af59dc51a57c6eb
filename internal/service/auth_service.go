package service

import (
	"errors"

	"go-pos-kasir/internal/model"
	"go-pos-kasir/internal/repository"
	"go-pos-kasir/pkg/config"
	"go-pos-kasir/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailRegistered    = errors.New("email already registered")
)

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	Register(email, password, name string) (*model.UserResponse, error)
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
	jwtCfg   config.JWTConfig
}

func NewAuthService(userRepo repository.UserRepository, jwtCfg config.JWTConfig) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtCfg:   jwtCfg,
	}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	// 1. Find user by email
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// 2. Verify password
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// 3. Generate JWT token
	token, err := jwt.Generate(
		s.jwtCfg.Secret,
		user.ID, user.Email, user.Name, string(user.Role),
		s.jwtCfg.Issuer, s.jwtCfg.ExpirationHours,
	)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

// Register membuat user kasir baru. Role OWNER hanya dibuat lewat seeding.
func (s *authService) Register(email, password, name string) (*model.UserResponse, error) {
	if existing, _ := s.userRepo.FindByEmail(email); existing != nil {
		return nil, ErrEmailRegistered
	}

	user := &model.User{
		Email: email,
		Name:  name,
		Role:  model.RoleCashier,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}
