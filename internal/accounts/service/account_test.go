package service

import (
	"context"
	"testing"
	"time"

	accountserrors "tigminoo/internal/accounts/errors"
	"tigminoo/internal/accounts/validator"
	"tigminoo/pkg/config"
	apperrors "tigminoo/pkg/errors"
	"tigminoo/pkg/logger"
	"tigminoo/pkg/model"
	"tigminoo/pkg/password"
	"tigminoo/pkg/token"
)

// Mock repository for testing
type mockAccountRepository struct {
	createFunc      func(ctx context.Context, account *model.Account) error
	findByEmailFunc func(ctx context.Context, role model.Role, email string) (*model.Account, error)
	findByIDFunc    func(ctx context.Context, role model.Role, id string) (*model.Account, error)
	findByIDsFunc   func(ctx context.Context, role model.Role, ids []string) ([]*model.Account, error)
}

func (m *mockAccountRepository) Create(ctx context.Context, account *model.Account) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, account)
	}
	account.ID = "665f1f77bcf86cd799439001"
	return nil
}

func (m *mockAccountRepository) FindByEmail(ctx context.Context, role model.Role, email string) (*model.Account, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, role, email)
	}
	return nil, accountserrors.ErrNotFound
}

func (m *mockAccountRepository) FindByID(ctx context.Context, role model.Role, id string) (*model.Account, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, role, id)
	}
	return nil, accountserrors.ErrNotFound
}

func (m *mockAccountRepository) FindByIDs(ctx context.Context, role model.Role, ids []string) ([]*model.Account, error) {
	if m.findByIDsFunc != nil {
		return m.findByIDsFunc(ctx, role, ids)
	}
	return []*model.Account{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:     "error",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func newTestService(repo *mockAccountRepository) AccountService {
	cfg := testConfig()
	return NewAccountService(
		repo,
		validator.NewAccountValidator(cfg.Log),
		password.NewHasher(4),
		token.NewManager("test-secret", time.Hour),
		cfg,
	)
}

func validRegisterInput() *validator.RegisterInput {
	return &validator.RegisterInput{
		Name:     "Amina",
		Surname:  "Benali",
		Email:    "amina@example.com",
		Phone:    "+212612345678",
		Password: "s3cretpw",
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (%s)", code, appErr.Code, appErr.Message)
	}
}

func TestRegister_HashesPassword(t *testing.T) {
	var created *model.Account
	repo := &mockAccountRepository{
		createFunc: func(ctx context.Context, account *model.Account) error {
			account.ID = "665f1f77bcf86cd799439001"
			created = account
			return nil
		},
	}
	svc := newTestService(repo)

	account, err := svc.Register(context.Background(), model.RoleClient, validRegisterInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created == nil {
		t.Fatal("expected repository Create to be called")
	}
	if created.PasswordHash == "" || created.PasswordHash == "s3cretpw" {
		t.Error("expected password to be hashed before storage")
	}
	if account.Role != model.RoleClient {
		t.Errorf("expected client role, got %s", account.Role)
	}
}

func TestRegister_DuplicateEmailIsConflict(t *testing.T) {
	repo := &mockAccountRepository{
		createFunc: func(ctx context.Context, account *model.Account) error {
			return accountserrors.ErrDuplicateEmail
		},
	}
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), model.RoleHost, validRegisterInput())
	assertAppErrorCode(t, err, apperrors.CodeConflict)
}

func TestRegister_InvalidEmailShape(t *testing.T) {
	svc := newTestService(&mockAccountRepository{})

	for _, email := range []string{"no-at-sign", "two@@example.com ", "missing@dot", "spaces in@example.com"} {
		input := validRegisterInput()
		input.Email = email
		if _, err := svc.Register(context.Background(), model.RoleClient, input); err == nil {
			t.Errorf("expected validation error for email %q", email)
		}
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	svc := newTestService(&mockAccountRepository{})

	input := validRegisterInput()
	input.Password = "abc12"
	_, err := svc.Register(context.Background(), model.RoleClient, input)
	assertAppErrorCode(t, err, apperrors.CodeValidation)
}

func TestRegister_UnknownRole(t *testing.T) {
	svc := newTestService(&mockAccountRepository{})

	_, err := svc.Register(context.Background(), model.Role("admin"), validRegisterInput())
	assertAppErrorCode(t, err, apperrors.CodeInvalidInput)
}

func TestLogin_Success(t *testing.T) {
	hasher := password.NewHasher(4)
	digest, err := hasher.Hash("s3cretpw")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	repo := &mockAccountRepository{
		findByEmailFunc: func(ctx context.Context, role model.Role, email string) (*model.Account, error) {
			return &model.Account{
				ID:           "665f1f77bcf86cd799439001",
				Name:         "Amina",
				Surname:      "Benali",
				Email:        email,
				PasswordHash: digest,
				Role:         role,
			}, nil
		},
	}
	svc := newTestService(repo)

	signed, profile, err := svc.Login(context.Background(), &validator.LoginInput{
		Email:    "Amina@Example.com",
		Password: "s3cretpw",
		Role:     model.RoleClient,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signed == "" {
		t.Error("expected a signed token")
	}
	if profile.Email != "amina@example.com" {
		t.Errorf("expected normalized email in profile, got %q", profile.Email)
	}

	claims, err := token.NewManager("test-secret", time.Hour).Verify(signed)
	if err != nil {
		t.Fatalf("expected issued token to verify: %v", err)
	}
	if claims.ID != "665f1f77bcf86cd799439001" || claims.Role != model.RoleClient {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

// Missing account and wrong password must be indistinguishable to the caller.
func TestLogin_UniformUnauthorizedError(t *testing.T) {
	hasher := password.NewHasher(4)
	digest, err := hasher.Hash("rightpw")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	repos := map[string]*mockAccountRepository{
		"unknown email": {
			findByEmailFunc: func(ctx context.Context, role model.Role, email string) (*model.Account, error) {
				return nil, accountserrors.ErrNotFound
			},
		},
		"wrong password": {
			findByEmailFunc: func(ctx context.Context, role model.Role, email string) (*model.Account, error) {
				return &model.Account{ID: "665f1f77bcf86cd799439001", PasswordHash: digest, Role: role}, nil
			},
		},
	}

	var messages []string
	for name, repo := range repos {
		svc := newTestService(repo)
		_, _, err := svc.Login(context.Background(), &validator.LoginInput{
			Email:    "amina@example.com",
			Password: "wrongpw",
			Role:     model.RoleClient,
		})
		assertAppErrorCode(t, err, apperrors.CodeUnauthorized)
		messages = append(messages, err.(*apperrors.AppError).Message)
		_ = name
	}

	if messages[0] != messages[1] {
		t.Errorf("expected identical error messages, got %q and %q", messages[0], messages[1])
	}
}

func TestLogin_MissingFields(t *testing.T) {
	svc := newTestService(&mockAccountRepository{})

	_, _, err := svc.Login(context.Background(), &validator.LoginInput{
		Email: "amina@example.com",
		Role:  model.RoleClient,
	})
	assertAppErrorCode(t, err, apperrors.CodeInvalidInput)
}
