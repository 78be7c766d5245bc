package service

import (
	"context"
	"errors"

	accountsrepo "tigminoo/internal/accounts/repository"
	listingserrors "tigminoo/internal/listings/errors"
	listingsrepo "tigminoo/internal/listings/repository"
	reservationsrepo "tigminoo/internal/reservations/repository"
	"tigminoo/internal/reviews/repository"
	"tigminoo/internal/reviews/validator"
	"tigminoo/pkg/config"
	apperrors "tigminoo/pkg/errors"
	"tigminoo/pkg/model"
	"tigminoo/pkg/sanitizer"
)

type ReviewService interface {
	Add(ctx context.Context, clientID string, input *validator.CreateReviewInput) (*model.Review, error)
	ListByListing(ctx context.Context, listingID string) ([]*model.ReviewWithAuthor, error)
}

type reviewService struct {
	repo         repository.ReviewRepository
	reservations reservationsrepo.ReservationRepository
	listings     listingsrepo.ListingRepository
	accounts     accountsrepo.AccountRepository
	validator    *validator.ReviewValidator
	cfg          *config.Config
}

func NewReviewService(
	repo repository.ReviewRepository,
	reservations reservationsrepo.ReservationRepository,
	listings listingsrepo.ListingRepository,
	accounts accountsrepo.AccountRepository,
	reviewValidator *validator.ReviewValidator,
	cfg *config.Config,
) ReviewService {
	return &reviewService{
		repo:         repo,
		reservations: reservations,
		listings:     listings,
		accounts:     accounts,
		validator:    reviewValidator,
		cfg:          cfg,
	}
}

// Add records a review after checking the author has at least one confirmed
// reservation for the listing. Pending or cancelled stays do not qualify.
func (s *reviewService) Add(ctx context.Context, clientID string, input *validator.CreateReviewInput) (*model.Review, error) {
	if clientID == "" {
		return nil, apperrors.InvalidInput("Client ID cannot be empty")
	}

	input.Comment = sanitizer.TrimAndNormalize(input.Comment)
	if err := s.validator.ValidateCreate(input); err != nil {
		s.cfg.Log.Warn("Review validation failed", "client_id", clientID, "error", err)
		return nil, apperrors.Validation("Invalid review input", map[string]any{"error": err.Error()})
	}

	if _, err := s.listings.FindByID(ctx, input.ListingID); err != nil {
		if errors.Is(err, listingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Listing", input.ListingID)
		}
		if errors.Is(err, listingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid listing ID format")
		}
		return nil, apperrors.Internal("Failed to verify listing", err)
	}

	confirmed, err := s.reservations.CountConfirmed(ctx, clientID, input.ListingID)
	if err != nil {
		s.cfg.Log.Error("Failed to check review eligibility", "client_id", clientID, "listing_id", input.ListingID, "error", err)
		return nil, apperrors.Internal("Failed to create review", err)
	}
	if confirmed == 0 {
		return nil, apperrors.Forbidden("Only clients with a confirmed stay can review this listing")
	}

	review := &model.Review{
		ListingID: input.ListingID,
		ClientID:  clientID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}

	if err := s.repo.Create(ctx, review); err != nil {
		s.cfg.Log.Error("Failed to create review", "client_id", clientID, "listing_id", input.ListingID, "error", err)
		return nil, apperrors.Internal("Failed to create review", err)
	}

	s.cfg.Log.Info("Review created", "id", review.ID, "listing_id", review.ListingID, "client_id", clientID, "rating", review.Rating)
	return review, nil
}

func (s *reviewService) ListByListing(ctx context.Context, listingID string) ([]*model.ReviewWithAuthor, error) {
	if listingID == "" {
		return nil, apperrors.InvalidInput("Listing ID cannot be empty")
	}

	reviews, err := s.repo.FindByListing(ctx, listingID)
	if err != nil {
		s.cfg.Log.Error("Failed to list reviews", "listing_id", listingID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve reviews", err)
	}

	authors, err := s.authorNames(ctx, reviews)
	if err != nil {
		return nil, err
	}

	result := make([]*model.ReviewWithAuthor, 0, len(reviews))
	for _, review := range reviews {
		joined := &model.ReviewWithAuthor{Review: *review}
		if author, ok := authors[review.ClientID]; ok {
			joined.AuthorName = author.Name
			joined.AuthorSurname = author.Surname
		}
		result = append(result, joined)
	}
	return result, nil
}

// authorNames resolves the reviewer name for each distinct client. A deleted
// account yields empty name fields rather than an error.
func (s *reviewService) authorNames(ctx context.Context, reviews []*model.Review) (map[string]*model.Account, error) {
	ids := make([]string, 0, len(reviews))
	seen := make(map[string]bool, len(reviews))
	for _, review := range reviews {
		if !seen[review.ClientID] {
			seen[review.ClientID] = true
			ids = append(ids, review.ClientID)
		}
	}
	if len(ids) == 0 {
		return map[string]*model.Account{}, nil
	}

	accounts, err := s.accounts.FindByIDs(ctx, model.RoleClient, ids)
	if err != nil {
		s.cfg.Log.Error("Failed to resolve review authors", "error", err)
		return nil, apperrors.Internal("Failed to retrieve reviews", err)
	}

	authors := make(map[string]*model.Account, len(accounts))
	for _, account := range accounts {
		authors[account.ID] = account
	}
	return authors, nil
}
