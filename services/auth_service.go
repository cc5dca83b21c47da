package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/blogem/enquiry-desk/metrics"
	"github.com/blogem/enquiry-desk/models"
	"github.com/blogem/enquiry-desk/repositories"
)

// ErrInvalidCredentials is returned for any failed login
var ErrInvalidCredentials = errors.New("invalid login credentials")

// AuthService interface defines admin account logic
type AuthService interface {
	Authenticate(ctx context.Context, form *models.LoginForm) (*models.AdminUser, error)
	CreateAdmin(ctx context.Context, username, email, password string) (*models.AdminUser, error)
}

type authService struct {
	userRepo repositories.AdminUserRepository
	now      func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.AdminUserRepository) AuthService {
	return &authService{userRepo: userRepo, now: time.Now}
}

// Authenticate checks a username and password against the admin table
func (s *authService) Authenticate(ctx context.Context, form *models.LoginForm) (*models.AdminUser, error) {
	if errs := form.Validate(); len(errs) > 0 {
		metrics.RecordAuthAttempt(false)
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(form.Username))
	if err != nil {
		metrics.RecordAuthAttempt(false)
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up admin user: %w", err)
	}

	if !user.Active {
		metrics.RecordAuthAttempt(false)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)); err != nil {
		metrics.RecordAuthAttempt(false)
		return nil, ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		log.Printf("[AUTH] Failed to record last login for %s: %v", user.Username, err)
	} else {
		user.LastLogin = &now
	}

	metrics.RecordAuthAttempt(true)
	return user, nil
}

// CreateAdmin stores a new active admin user with a bcrypt password hash
func (s *authService) CreateAdmin(ctx context.Context, username, email, password string) (*models.AdminUser, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username is required")
	}
	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.AdminUser{
		Username:     username,
		Email:        strings.TrimSpace(email),
		PasswordHash: string(hash),
		Active:       true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}

	return user, nil
}
