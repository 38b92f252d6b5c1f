package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/manikantha-asam/ecommerce/internal/auth"
	"github.com/manikantha-asam/ecommerce/internal/cache"
	"github.com/manikantha-asam/ecommerce/internal/domain"
	"github.com/manikantha-asam/ecommerce/internal/notify"
	"github.com/manikantha-asam/ecommerce/internal/repository"
)

const resetTokenTTL = 30 * time.Minute

// AccountService owns customer records: registration, authentication,
// profile self-service, password recovery and the staff customer listing.
type AccountService struct {
	customers repository.CustomerRepository
	tokens    *auth.Manager
	store     cache.TokenStore
	notifier  notify.Notifier
	logger    *logrus.Logger

	resetBaseURL string // password-reset links point at the frontend
}

func NewAccountService(
	customers repository.CustomerRepository,
	tokens *auth.Manager,
	store cache.TokenStore,
	notifier notify.Notifier,
	logger *logrus.Logger,
	resetBaseURL string,
) *AccountService {
	return &AccountService{
		customers:    customers,
		tokens:       tokens,
		store:        store,
		notifier:     notifier,
		logger:       logger,
		resetBaseURL: resetBaseURL,
	}
}

func (s *AccountService) Register(ctx context.Context, reg *domain.Registration) (*domain.Customer, error) {
	errs := domain.ValidateRegistration(reg)

	// Uniqueness is reported alongside the other field errors; the database
	// constraints still back this up against races.
	if reg.Username != "" {
		if _, err := s.customers.GetByUsername(ctx, reg.Username); err == nil {
			errs["username"] = "username already taken"
		} else if !errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, err
		}
	}
	if reg.Email != "" {
		if _, err := s.customers.GetByEmail(ctx, reg.Email); err == nil {
			errs["email"] = "email already taken"
		} else if !errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, err
		}
	}
	if !errs.Empty() {
		return nil, errs
	}

	hash, err := auth.HashPassword(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	c := &domain.Customer{
		Username:       reg.Username,
		CustomerName:   reg.CustomerName,
		Email:          reg.Email,
		PasswordHash:   hash,
		PhoneNumber:    reg.PhoneNumber,
		Address:        reg.Address,
		City:           reg.City,
		State:          reg.State,
		ProfilePicture: reg.ProfilePicture,
		IsActive:       true,
	}
	if err := s.customers.Create(ctx, c); err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameTaken):
			return nil, domain.FieldErrors{"username": "username already taken"}
		case errors.Is(err, repository.ErrEmailTaken):
			return nil, domain.FieldErrors{"email": "email already taken"}
		}
		return nil, err
	}

	s.logger.WithField("username", c.Username).Info("customer registered")
	return c, nil
}

// Login authenticates and issues the access/refresh pair. A missing user
// and a wrong password produce the same error.
func (s *AccountService) Login(ctx context.Context, username, password string) (*auth.TokenPair, error) {
	c, err := s.customers.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrCustomerNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !c.IsActive || !auth.CheckPassword(c.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(c)
	if err != nil {
		return nil, err
	}

	if err := s.customers.RecordLogin(ctx, c.ID, time.Now().UTC()); err != nil {
		s.logger.WithError(err).WithField("username", username).Warn("failed to record login time")
	}
	return pair, nil
}

func (s *AccountService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.Revoke(ctx, refreshToken)
}

func (s *AccountService) RefreshAccess(ctx context.Context, refreshToken string) (string, error) {
	return s.tokens.Refresh(ctx, refreshToken)
}

func (s *AccountService) GetProfile(ctx context.Context, caller domain.Identity) (*domain.Customer, error) {
	return s.customers.GetByID(ctx, caller.CustomerID)
}

func (s *AccountService) UpdateProfile(ctx context.Context, caller domain.Identity, reg *domain.Registration) (*domain.Customer, error) {
	if errs := domain.ValidateProfileUpdate(reg); !errs.Empty() {
		return nil, errs
	}

	c, err := s.customers.GetByID(ctx, caller.CustomerID)
	if err != nil {
		return nil, err
	}

	if reg.CustomerName != "" {
		c.CustomerName = reg.CustomerName
	}
	if reg.Email != "" {
		c.Email = reg.Email
	}
	if reg.PhoneNumber != "" {
		c.PhoneNumber = reg.PhoneNumber
	}
	if reg.Address != "" {
		c.Address = reg.Address
	}
	if reg.City != "" {
		c.City = reg.City
	}
	if reg.State != "" {
		c.State = reg.State
	}
	if reg.ProfilePicture != "" {
		c.ProfilePicture = reg.ProfilePicture
	}

	if err := s.customers.UpdateProfile(ctx, c); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, domain.FieldErrors{"email": "email already taken"}
		}
		return nil, err
	}

	if reg.Password != "" {
		hash, err := auth.HashPassword(reg.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		if err := s.customers.UpdatePassword(ctx, c.ID, hash); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RequestPasswordReset emails a single-use reset link. An unknown email is
// reported as not found, matching the original behavior.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	c, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	token := uuid.NewString()
	if err := s.store.SaveResetToken(ctx, token, c.ID, resetTokenTTL); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}

	payload := notify.PasswordReset{
		Username: c.Username,
		ResetURL: fmt.Sprintf("%s/reset-password/%s/", s.resetBaseURL, token),
	}
	if err := s.notifier.SendPasswordReset(ctx, c.Email, payload); err != nil {
		return err
	}

	s.logger.WithField("username", c.Username).Info("password reset email sent")
	return nil
}

func (s *AccountService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 {
		return domain.FieldErrors{"password": "password must be at least 8 characters"}
	}

	customerID, err := s.store.ConsumeResetToken(ctx, token)
	if errors.Is(err, cache.ErrTokenNotFound) {
		return ErrInvalidResetToken
	}
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.customers.UpdatePassword(ctx, customerID, hash)
}

func (s *AccountService) ListCustomers(ctx context.Context, caller domain.Identity, search string) ([]*domain.Customer, error) {
	if !caller.IsStaff {
		return nil, ErrNotStaff
	}
	return s.customers.List(ctx, search)
}
