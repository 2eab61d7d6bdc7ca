package auth

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"shutterbid/internal/domain/market"
	"shutterbid/internal/domain/user"
	"shutterbid/internal/pkg/jwt"
	"shutterbid/internal/repository"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Email    string
	Password string
	Role     market.Role
	Name     string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (user.User, string, string, error)
	Login(ctx context.Context, in LoginInput) (user.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type Service struct {
	users   user.Repository
	records repository.RecordStore
	tokens  jwt.Service
	logger  *log.Logger
}

func NewService(users user.Repository, records repository.RecordStore, tokens jwt.Service, logger *log.Logger) *Service {
	return &Service{users: users, records: records, tokens: tokens, logger: logger}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, string, string, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return user.User{}, "", "", ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return user.User{}, "", "", ErrInvalidInput
	}
	if !market.ValidRole(in.Role) {
		return user.User{}, "", "", ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, "", "", ErrInternal
	}
	if exists {
		return user.User{}, "", "", ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, "", "", ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
		Name:         strings.TrimSpace(in.Name),
	}

	if err := s.users.Create(ctx, u); err != nil {
		exists, exErr := s.users.ExistsByEmail(ctx, email)
		if exErr == nil && exists {
			return user.User{}, "", "", ErrEmailAlreadyRegistered
		}
		return user.User{}, "", "", ErrInternal
	}

	if u.Role == market.RolePhotographer {
		s.seedProfile(ctx, u)
	}

	access, refresh, err := s.issueTokens(u)
	if err != nil {
		return user.User{}, "", "", ErrInternal
	}
	return u, access, refresh, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, string, string, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, "", "", ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, "", "", ErrInvalidCredentials
		}
		return user.User{}, "", "", ErrInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return user.User{}, "", "", ErrInvalidCredentials
	}

	access, refresh, err := s.issueTokens(u)
	if err != nil {
		return user.User{}, "", "", ErrInternal
	}
	return u, access, refresh, nil
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(strings.TrimSpace(refreshToken))
	if err != nil || !s.tokens.IsRefreshToken(claims) {
		return "", "", ErrInvalidCredentials
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", ErrInternal
	}

	access, refresh, err := s.issueTokens(u)
	if err != nil {
		return "", "", ErrInternal
	}
	return access, refresh, nil
}

func (s *Service) issueTokens(u user.User) (string, string, error) {
	ident := u.Identity()
	access, err := s.tokens.GenerateAccessToken(ident.UserID, ident.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(ident.UserID, ident.Role)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// seedProfile writes an empty profile record for a new photographer so
// bid-view joins find a row immediately. Registration succeeds even if
// the seed fails; the profile endpoint can recreate it.
func (s *Service) seedProfile(ctx context.Context, u user.User) {
	p := market.Profile{UserID: u.ID.String(), Name: u.Name}
	rec, err := repository.NewRecord(market.ProfileKey(p.UserID), market.KindProfile, p)
	if err == nil {
		err = s.records.Put(ctx, rec)
	}
	if err != nil && s.logger != nil {
		s.logger.Printf("[Auth] profile seed failed for %s: %v", u.ID, err)
	}
}

func normalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return ""
	}
	return email
}

func isValidPassword(pw string) bool {
	return len(pw) >= 8
}
