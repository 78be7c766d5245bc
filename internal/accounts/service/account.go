package service

import (
	"context"
	"errors"

	accountserrors "tigminoo/internal/accounts/errors"
	"tigminoo/internal/accounts/repository"
	"tigminoo/internal/accounts/validator"
	"tigminoo/pkg/config"
	apperrors "tigminoo/pkg/errors"
	"tigminoo/pkg/model"
	"tigminoo/pkg/password"
	"tigminoo/pkg/sanitizer"
	"tigminoo/pkg/token"
)

type AccountService interface {
	Register(ctx context.Context, role model.Role, input *validator.RegisterInput) (*model.Account, error)
	Login(ctx context.Context, input *validator.LoginInput) (string, model.Profile, error)
}

type accountService struct {
	repo      repository.AccountRepository
	validator *validator.AccountValidator
	hasher    *password.Hasher
	tokens    *token.Manager
	cfg       *config.Config
}

func NewAccountService(
	repo repository.AccountRepository,
	accountValidator *validator.AccountValidator,
	hasher *password.Hasher,
	tokens *token.Manager,
	cfg *config.Config,
) AccountService {
	return &accountService{
		repo:      repo,
		validator: accountValidator,
		hasher:    hasher,
		tokens:    tokens,
		cfg:       cfg,
	}
}

func (s *accountService) Register(ctx context.Context, role model.Role, input *validator.RegisterInput) (*model.Account, error) {
	if !role.Valid() {
		return nil, apperrors.InvalidInput("Unknown account role")
	}

	s.sanitize(input)
	if err := s.validator.ValidateRegister(input); err != nil {
		s.cfg.Log.Warn("Registration validation failed", "role", role, "error", err)
		return nil, apperrors.Validation("Invalid registration input", map[string]any{"error": err.Error()})
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	account := &model.Account{
		Name:         input.Name,
		Surname:      input.Surname,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: digest,
		Role:         role,
	}

	if err := s.repo.Create(ctx, account); err != nil {
		if errors.Is(err, accountserrors.ErrDuplicateEmail) {
			return nil, apperrors.Conflict("Email already registered")
		}
		s.cfg.Log.Error("Failed to create account", "role", role, "error", err)
		return nil, apperrors.Internal("Failed to create account", err)
	}

	s.cfg.Log.Info("Account registered", "id", account.ID, "role", role)
	return account, nil
}

// Login fails with the same error whether the account is missing or the
// password mismatches, so the response never reveals which.
func (s *accountService) Login(ctx context.Context, input *validator.LoginInput) (string, model.Profile, error) {
	input.Email = sanitizer.NormalizeEmail(input.Email)
	if err := s.validator.ValidateLogin(input); err != nil {
		return "", model.Profile{}, apperrors.InvalidInput("Email, password and role are required")
	}

	account, err := s.repo.FindByEmail(ctx, input.Role, input.Email)
	if err != nil {
		if errors.Is(err, accountserrors.ErrNotFound) {
			return "", model.Profile{}, apperrors.Unauthorized("Invalid email or password")
		}
		s.cfg.Log.Error("Failed to look up account", "role", input.Role, "error", err)
		return "", model.Profile{}, apperrors.Internal("Failed to look up account", err)
	}

	if !s.hasher.Verify(input.Password, account.PasswordHash) {
		return "", model.Profile{}, apperrors.Unauthorized("Invalid email or password")
	}

	signed, err := s.tokens.Issue(account.ID, account.Role)
	if err != nil {
		return "", model.Profile{}, apperrors.Internal("Failed to issue token", err)
	}

	s.cfg.Log.Info("Login succeeded", "id", account.ID, "role", account.Role)
	return signed, account.Profile(), nil
}

func (s *accountService) sanitize(input *validator.RegisterInput) {
	input.Name = sanitizer.NormalizeName(input.Name)
	input.Surname = sanitizer.NormalizeName(input.Surname)
	input.Email = sanitizer.NormalizeEmail(input.Email)
	if normalized := sanitizer.NormalizePhone(input.Phone); normalized != "" {
		input.Phone = normalized
	}
}
