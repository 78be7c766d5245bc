package service

import (
	"context"
	"errors"
	"sync"

	listingserrors "tigminoo/internal/listings/errors"
	"tigminoo/internal/listings/repository"
	"tigminoo/internal/listings/validator"
	"tigminoo/pkg/config"
	apperrors "tigminoo/pkg/errors"
	"tigminoo/pkg/model"
	"tigminoo/pkg/sanitizer"
)

type ListingService interface {
	Create(ctx context.Context, hostID string, input *validator.CreateListingInput) (*model.Listing, error)
	GetByID(ctx context.Context, id string) (*model.Listing, error)
	Search(ctx context.Context, filter model.ListingFilter, limit int, offset int64) ([]*model.Listing, int64, error)
	ListByHost(ctx context.Context, hostID string) ([]*model.Listing, error)
}

type listingService struct {
	repo      repository.ListingRepository
	validator *validator.ListingValidator
	cfg       *config.Config
}

func NewListingService(
	repo repository.ListingRepository,
	listingValidator *validator.ListingValidator,
	cfg *config.Config,
) ListingService {
	return &listingService{
		repo:      repo,
		validator: listingValidator,
		cfg:       cfg,
	}
}

func (s *listingService) Create(ctx context.Context, hostID string, input *validator.CreateListingInput) (*model.Listing, error) {
	if hostID == "" {
		return nil, apperrors.InvalidInput("Host ID cannot be empty")
	}

	s.sanitize(input)
	if err := s.validator.ValidateCreate(input); err != nil {
		s.cfg.Log.Warn("Listing validation failed", "host_id", hostID, "error", err)
		return nil, apperrors.Validation("Invalid listing input", map[string]any{"error": err.Error()})
	}

	listing := &model.Listing{
		HostID:       hostID,
		Title:        input.Title,
		Address:      input.Address,
		City:         input.City,
		Category:     input.Category,
		NightlyPrice: input.NightlyPrice,
	}

	if err := s.repo.Create(ctx, listing); err != nil {
		s.cfg.Log.Error("Failed to create listing", "host_id", hostID, "error", err)
		return nil, apperrors.Internal("Failed to create listing", err)
	}

	s.cfg.Log.Info("Listing created", "id", listing.ID, "host_id", hostID, "city", listing.City)
	return listing, nil
}

func (s *listingService) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Listing ID cannot be empty")
	}

	listing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, listingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Listing", id)
		}
		if errors.Is(err, listingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid listing ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve listing", err)
	}

	return listing, nil
}

func (s *listingService) Search(ctx context.Context, filter model.ListingFilter, limit int, offset int64) ([]*model.Listing, int64, error) {
	filter.City = sanitizer.NormalizeCity(filter.City)
	filter.Category = sanitizer.NormalizeCategory(filter.Category)

	var count int64
	var listings []*model.Listing
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByFilter(ctx, filter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count listings", "error", errCount)
			errCount = apperrors.Internal("Failed to count listings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		listings, errFind = s.repo.FindByFilter(ctx, filter, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to search listings", "error", errFind)
			errFind = apperrors.Internal("Failed to search listings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return listings, count, nil
}

func (s *listingService) ListByHost(ctx context.Context, hostID string) ([]*model.Listing, error) {
	if hostID == "" {
		return nil, apperrors.InvalidInput("Host ID cannot be empty")
	}

	listings, err := s.repo.FindByHost(ctx, hostID)
	if err != nil {
		s.cfg.Log.Error("Failed to list host listings", "host_id", hostID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve listings", err)
	}

	return listings, nil
}

func (s *listingService) sanitize(input *validator.CreateListingInput) {
	input.Title = sanitizer.TrimAndNormalize(input.Title)
	input.Address = sanitizer.TrimAndNormalize(input.Address)
	input.City = sanitizer.NormalizeCity(input.City)
	input.Category = sanitizer.NormalizeCategory(input.Category)
}
