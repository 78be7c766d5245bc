package service

import (
	"context"
	"testing"
	"time"

	listingserrors "tigminoo/internal/listings/errors"
	"tigminoo/internal/listings/validator"
	"tigminoo/pkg/config"
	apperrors "tigminoo/pkg/errors"
	"tigminoo/pkg/logger"
	"tigminoo/pkg/model"
)

const (
	testHostID    = "665f1f77bcf86cd799439055"
	testListingID = "665f1f77bcf86cd799439011"
)

// Mock repository for testing
type mockListingRepository struct {
	createFunc        func(ctx context.Context, listing *model.Listing) error
	findByIDFunc      func(ctx context.Context, id string) (*model.Listing, error)
	findByIDsFunc     func(ctx context.Context, ids []string) ([]*model.Listing, error)
	findByFilterFunc  func(ctx context.Context, filter model.ListingFilter, limit int, offset int64) ([]*model.Listing, error)
	countByFilterFunc func(ctx context.Context, filter model.ListingFilter) (int64, error)
	findByHostFunc    func(ctx context.Context, hostID string) ([]*model.Listing, error)
}

func (m *mockListingRepository) Create(ctx context.Context, listing *model.Listing) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, listing)
	}
	listing.ID = testListingID
	return nil
}

func (m *mockListingRepository) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, listingserrors.ErrNotFound
}

func (m *mockListingRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Listing, error) {
	if m.findByIDsFunc != nil {
		return m.findByIDsFunc(ctx, ids)
	}
	return []*model.Listing{}, nil
}

func (m *mockListingRepository) FindByFilter(ctx context.Context, filter model.ListingFilter, limit int, offset int64) ([]*model.Listing, error) {
	if m.findByFilterFunc != nil {
		return m.findByFilterFunc(ctx, filter, limit, offset)
	}
	return []*model.Listing{}, nil
}

func (m *mockListingRepository) CountByFilter(ctx context.Context, filter model.ListingFilter) (int64, error) {
	if m.countByFilterFunc != nil {
		return m.countByFilterFunc(ctx, filter)
	}
	return 0, nil
}

func (m *mockListingRepository) FindByHost(ctx context.Context, hostID string) ([]*model.Listing, error) {
	if m.findByHostFunc != nil {
		return m.findByHostFunc(ctx, hostID)
	}
	return []*model.Listing{}, nil
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

func newTestService(repo *mockListingRepository) ListingService {
	cfg := testConfig()
	return NewListingService(repo, validator.NewListingValidator(cfg.Log), cfg)
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

func validCreateInput() *validator.CreateListingInput {
	return &validator.CreateListingInput{
		Title:        "Riad Dar Anya",
		Address:      "12 Derb el Ferrane",
		City:         "Marrakech",
		Category:     "Riad",
		NightlyPrice: 85.0,
	}
}

func TestCreate_SetsHostFromCaller(t *testing.T) {
	var created *model.Listing
	repo := &mockListingRepository{
		createFunc: func(ctx context.Context, listing *model.Listing) error {
			listing.ID = testListingID
			created = listing
			return nil
		},
	}
	svc := newTestService(repo)

	listing, err := svc.Create(context.Background(), testHostID, validCreateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.HostID != testHostID {
		t.Errorf("expected host_id from caller, got %s", created.HostID)
	}
	if listing.Category != "riad" {
		t.Errorf("expected normalized category, got %q", listing.Category)
	}
}

func TestCreate_RejectsNonPositivePrice(t *testing.T) {
	svc := newTestService(&mockListingRepository{})

	for _, price := range []float64{0, -10} {
		input := validCreateInput()
		input.NightlyPrice = price
		_, err := svc.Create(context.Background(), testHostID, input)
		assertAppErrorCode(t, err, apperrors.CodeValidation)
	}
}

func TestCreate_RequiredFields(t *testing.T) {
	svc := newTestService(&mockListingRepository{})

	input := validCreateInput()
	input.Title = ""
	_, err := svc.Create(context.Background(), testHostID, input)
	assertAppErrorCode(t, err, apperrors.CodeValidation)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&mockListingRepository{})

	_, err := svc.GetByID(context.Background(), testListingID)
	assertAppErrorCode(t, err, apperrors.CodeNotFound)
}

func TestSearch_NormalizesFilter(t *testing.T) {
	var gotFilter model.ListingFilter
	repo := &mockListingRepository{
		findByFilterFunc: func(ctx context.Context, filter model.ListingFilter, limit int, offset int64) ([]*model.Listing, error) {
			gotFilter = filter
			return []*model.Listing{{ID: testListingID, City: "Marrakech"}}, nil
		},
		countByFilterFunc: func(ctx context.Context, filter model.ListingFilter) (int64, error) {
			return 1, nil
		},
	}
	svc := newTestService(repo)

	listings, total, err := svc.Search(context.Background(), model.ListingFilter{
		City:     "  Marrakech ",
		Category: "RIAD",
		MaxPrice: 100,
	}, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(listings) != 1 {
		t.Errorf("expected one result, got %d listings, total %d", len(listings), total)
	}
	if gotFilter.City != "Marrakech" {
		t.Errorf("expected trimmed city, got %q", gotFilter.City)
	}
	if gotFilter.Category != "riad" {
		t.Errorf("expected lowercased category, got %q", gotFilter.Category)
	}
	if gotFilter.MaxPrice != 100 {
		t.Errorf("expected max price preserved, got %v", gotFilter.MaxPrice)
	}
}

func TestSearch_CountAndFindRunConcurrently(t *testing.T) {
	repo := &mockListingRepository{
		findByFilterFunc: func(ctx context.Context, filter model.ListingFilter, limit int, offset int64) ([]*model.Listing, error) {
			time.Sleep(10 * time.Millisecond)
			return []*model.Listing{{ID: testListingID}}, nil
		},
		countByFilterFunc: func(ctx context.Context, filter model.ListingFilter) (int64, error) {
			time.Sleep(10 * time.Millisecond)
			return 42, nil
		},
	}
	svc := newTestService(repo)

	// Run with -race to catch unsynchronized writes.
	for i := 0; i < 20; i++ {
		listings, total, err := svc.Search(context.Background(), model.ListingFilter{}, 10, 0)
		if err != nil {
			t.Fatalf("iteration %d: unexpected error: %v", i, err)
		}
		if total != 42 {
			t.Errorf("iteration %d: expected total 42, got %d", i, total)
		}
		if len(listings) != 1 {
			t.Errorf("iteration %d: expected 1 listing, got %d", i, len(listings))
		}
	}
}

func TestListByHost_EmptyID(t *testing.T) {
	svc := newTestService(&mockListingRepository{})

	_, err := svc.ListByHost(context.Background(), "")
	assertAppErrorCode(t, err, apperrors.CodeInvalidInput)
}
