package service

import (
	"context"
	"errors"
	"strings"

	"github.com/SharkyKing/EduSpace/internal/core/auth"
	"github.com/SharkyKing/EduSpace/internal/domain"
	"github.com/SharkyKing/EduSpace/pkg/utils"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrEmailTaken      = errors.New("email already exists")
	ErrUsernameTaken   = errors.New("username already exists")
	ErrNoUserRole      = errors.New("failed to attach role")
)

// AccountService is the credential verifier: it owns login and registration.
// Sessions are fully stateless — login only mints tokens, logout is a
// client-side discard.
type AccountService struct {
	users domain.UserRepository
	roles domain.RoleRepository
	codec *auth.Codec
}

func NewAccountService(users domain.UserRepository, roles domain.RoleRepository, codec *auth.Codec) *AccountService {
	return &AccountService{users: users, roles: roles, codec: codec}
}

type TokenPair struct {
	Access  string
	Refresh string
}

// Login verifies credentials and returns a fresh token pair.
func (s *AccountService) Login(ctx context.Context, email, password string) (*TokenPair, *domain.User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if u == nil {
		return nil, nil, ErrUserNotFound
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return nil, nil, ErrInvalidPassword
	}
	access, err := s.codec.IssueAccess(u.ID, u.RoleID)
	if err != nil {
		return nil, nil, err
	}
	refresh, err := s.codec.IssueRefresh(u.ID)
	if err != nil {
		return nil, nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, u, nil
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Username  string
}

// Register creates an account with the default "User" role looked up by name.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	roleUser, err := s.roles.FindByName(ctx, domain.RoleUserName)
	if err != nil {
		return nil, err
	}
	if roleUser == nil {
		return nil, ErrNoUserRole
	}
	if existing, err := s.users.FindByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrEmailTaken
	}
	if existing, err := s.users.FindByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        strings.TrimSpace(in.Email),
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: hash,
		RoleID:       roleUser.ID,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
