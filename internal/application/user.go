package application

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/TraderJoe97/StackFlow/internal/api/middleware"
	"github.com/TraderJoe97/StackFlow/internal/config"
	"github.com/TraderJoe97/StackFlow/internal/domain/user"
	"github.com/TraderJoe97/StackFlow/internal/repository"
	"github.com/TraderJoe97/StackFlow/pkg/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	Repos *repository.Repos
	now   func() time.Time
}

func NewUserService(repos *repository.Repos) *UserService {
	return &UserService{
		Repos: repos,
		now:   time.Now,
	}
}

// HasCorporateDomain compares the email suffix case-insensitively.
func HasCorporateDomain(email string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(email)), strings.ToLower(config.CorporateDomain))
}

func domainError() *ValidationError {
	return NewValidationError("email", fmt.Sprintf("Email must end with %s.", config.CorporateDomain))
}

// emailTaken is returned for a known email and for a unique index violation.
func emailTaken() error {
	return NewValidationError("email", "An account with this email already exists.").withCause(ErrEmailTaken)
}

// Register creates a Developer account and signs it in.
func (s *UserService) Register(input user.RegisterInput) (user.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.TrimSpace(input.Username)

	v := &ValidationError{}
	if username == "" {
		v.Add("username", "Username is required.")
	}
	if !HasCorporateDomain(email) {
		v.Fields = append(v.Fields, domainError().Fields...)
	}
	if err := v.OrNil(); err != nil {
		return user.User{}, "", err
	}

	exists, err := s.Repos.User.ExistsByEmail(email)
	if err != nil {
		return user.User{}, "", err
	}
	if exists {
		return user.User{}, "", emailTaken()
	}

	role, err := s.Repos.Role.GetRoleByTitle(user.DefaultRole)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user.User{}, "", ErrDefaultRoleMissing
	}
	if err != nil {
		return user.User{}, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	usr := user.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		RoleID:       &role.ID,
		CreatedAt:    s.now(),
	}
	if err := s.Repos.User.CreateUser(&usr); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return user.User{}, "", emailTaken()
		}
		return user.User{}, "", err
	}
	usr.Role = &role

	token, _, err := middleware.GenerateToken(usr, config.SessionTTL)
	if err != nil {
		return user.User{}, "", err
	}
	return usr, token, nil
}

func (s *UserService) Login(input user.LoginInput) (user.User, string, error) {
	if !HasCorporateDomain(input.Email) {
		return user.User{}, "", domainError()
	}

	usr, err := s.Repos.User.GetUserByEmail(input.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user.User{}, "", NewValidationError("email", "Invalid email or password.").withCause(ErrInvalidCredentials)
	}
	if err != nil {
		return user.User{}, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(input.Password)); err != nil {
		return user.User{}, "", NewValidationError("email", "Invalid email or password.").withCause(ErrInvalidCredentials)
	}

	token, _, err := middleware.GenerateToken(usr, config.SessionTTL)
	if err != nil {
		return user.User{}, "", err
	}
	return usr, token, nil
}

// Logout revokes the session token until it would have expired.
func (s *UserService) Logout(claims *types.Claims) error {
	expires := s.now().Add(config.SessionTTL)
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	return s.Repos.Session.Revoke(&user.RevokedSession{
		JTI:       claims.ID,
		UserID:    claims.UserID,
		ExpiresAt: expires,
	})
}

func (s *UserService) GetUser(id uint) (user.User, error) {
	u, err := s.Repos.User.GetUserByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return u, ErrUserNotFound
	}
	return u, err
}

func (s *UserService) PurgeRevokedSessions() (int64, error) {
	return s.Repos.Session.PurgeExpired(s.now())
}
