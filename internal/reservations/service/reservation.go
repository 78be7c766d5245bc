package service

import (
	"context"
	"errors"
	"time"

	listingserrors "tigminoo/internal/listings/errors"
	listingsrepo "tigminoo/internal/listings/repository"
	reservationserrors "tigminoo/internal/reservations/errors"
	"tigminoo/internal/reservations/repository"
	"tigminoo/internal/reservations/validator"
	"tigminoo/pkg/config"
	apperrors "tigminoo/pkg/errors"
	"tigminoo/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type ReservationService interface {
	Create(ctx context.Context, clientID string, input *validator.CreateReservationInput) (*model.Reservation, error)
	ListByClient(ctx context.Context, clientID string) ([]*model.ReservationWithListing, error)
	ReservedDates(ctx context.Context, listingID string) ([]model.DateRange, error)
	Cancel(ctx context.Context, callerID, reservationID string) (*model.Reservation, error)
	ConfirmPayment(ctx context.Context, reservationID string) (*model.Reservation, error)
}

type reservationService struct {
	repo      repository.ReservationRepository
	locks     repository.ReservationLockRepository
	listings  listingsrepo.ListingRepository
	validator *validator.ReservationValidator
	cfg       *config.Config
}

func NewReservationService(
	repo repository.ReservationRepository,
	locks repository.ReservationLockRepository,
	listings listingsrepo.ListingRepository,
	reservationValidator *validator.ReservationValidator,
	cfg *config.Config,
) ReservationService {
	return &reservationService{
		repo:      repo,
		locks:     locks,
		listings:  listings,
		validator: reservationValidator,
		cfg:       cfg,
	}
}

// overlaps reports whether two inclusive whole-day ranges share at least one
// day. A stay ending on a given day blocks another starting that same day.
func overlaps(s1, e1, s2, e2 time.Time) bool {
	return !s1.After(e2) && !s2.After(e1)
}

func (s *reservationService) Create(ctx context.Context, clientID string, input *validator.CreateReservationInput) (*model.Reservation, error) {
	if clientID == "" {
		return nil, apperrors.InvalidInput("Client ID cannot be empty")
	}

	if err := s.validator.ValidateCreate(input); err != nil {
		s.cfg.Log.Warn("Reservation validation failed", "client_id", clientID, "error", err)
		return nil, apperrors.Validation("Invalid reservation input", map[string]any{"error": err.Error()})
	}

	start, err := validator.ParseDate("start_date", input.StartDate)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}
	end, err := validator.ParseDate("end_date", input.EndDate)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}
	if !end.After(start) {
		return nil, apperrors.InvalidInput(reservationserrors.ErrInvalidDateRange.Error())
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

	// Advisory lock serializes concurrent bookings for the listing so the
	// availability check and the insert form one critical section.
	lock, err := s.locks.Acquire(ctx, input.ListingID)
	if err != nil {
		if errors.Is(err, repository.ErrLockHeld) {
			return nil, apperrors.Conflict("Another reservation for this listing is in progress, try again")
		}
		s.cfg.Log.Error("Failed to acquire reservation lock", "listing_id", input.ListingID, "error", err)
		return nil, apperrors.Internal("Failed to create reservation", err)
	}
	defer func() {
		if releaseErr := s.locks.Release(context.WithoutCancel(ctx), lock.ID); releaseErr != nil {
			s.cfg.Log.Error("Failed to release reservation lock", "lock_id", lock.ID, "error", releaseErr)
		}
	}()

	reservation := &model.Reservation{
		ListingID: input.ListingID,
		ClientID:  clientID,
		StartDate: start,
		EndDate:   end,
		Status:    model.StatusPending,
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindActiveOverlapping(sessCtx, input.ListingID, start, end)
		if err != nil {
			return apperrors.Internal("Failed to check availability", err)
		}
		for _, other := range existing {
			if overlaps(start, end, other.StartDate, other.EndDate) {
				return apperrors.Conflict("Listing is already reserved for the requested dates")
			}
		}
		if err := s.repo.Create(sessCtx, reservation); err != nil {
			return apperrors.Internal("Failed to create reservation", err)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.AsAppError(err)
	}

	s.cfg.Log.Info("Reservation created",
		"id", reservation.ID,
		"listing_id", reservation.ListingID,
		"client_id", clientID,
		"start_date", start.Format(time.DateOnly),
		"end_date", end.Format(time.DateOnly),
	)
	return reservation, nil
}

func (s *reservationService) ListByClient(ctx context.Context, clientID string) ([]*model.ReservationWithListing, error) {
	if clientID == "" {
		return nil, apperrors.InvalidInput("Client ID cannot be empty")
	}

	reservations, err := s.repo.FindByClient(ctx, clientID)
	if err != nil {
		s.cfg.Log.Error("Failed to list client reservations", "client_id", clientID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve reservations", err)
	}

	titles, err := s.listingTitles(ctx, reservations)
	if err != nil {
		return nil, err
	}

	result := make([]*model.ReservationWithListing, 0, len(reservations))
	for _, r := range reservations {
		result = append(result, &model.ReservationWithListing{
			Reservation:  *r,
			ListingTitle: titles[r.ListingID],
		})
	}
	return result, nil
}

// listingTitles resolves the title of each distinct listing referenced by the
// reservations. A listing deleted after booking simply yields an empty title.
func (s *reservationService) listingTitles(ctx context.Context, reservations []*model.Reservation) (map[string]string, error) {
	ids := make([]string, 0, len(reservations))
	seen := make(map[string]bool, len(reservations))
	for _, r := range reservations {
		if !seen[r.ListingID] {
			seen[r.ListingID] = true
			ids = append(ids, r.ListingID)
		}
	}
	if len(ids) == 0 {
		return map[string]string{}, nil
	}

	listings, err := s.listings.FindByIDs(ctx, ids)
	if err != nil {
		s.cfg.Log.Error("Failed to resolve listing titles", "error", err)
		return nil, apperrors.Internal("Failed to retrieve reservations", err)
	}

	titles := make(map[string]string, len(listings))
	for _, l := range listings {
		titles[l.ID] = l.Title
	}
	return titles, nil
}

func (s *reservationService) ReservedDates(ctx context.Context, listingID string) ([]model.DateRange, error) {
	if listingID == "" {
		return nil, apperrors.InvalidInput("Listing ID cannot be empty")
	}

	if _, err := s.listings.FindByID(ctx, listingID); err != nil {
		if errors.Is(err, listingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Listing", listingID)
		}
		if errors.Is(err, listingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid listing ID format")
		}
		return nil, apperrors.Internal("Failed to verify listing", err)
	}

	ranges, err := s.repo.FindActiveRanges(ctx, listingID)
	if err != nil {
		s.cfg.Log.Error("Failed to retrieve reserved dates", "listing_id", listingID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve reserved dates", err)
	}
	if ranges == nil {
		ranges = []model.DateRange{}
	}
	return ranges, nil
}

// Cancel moves the caller's reservation to cancelled. Cancelling an already
// cancelled reservation succeeds without changing anything.
func (s *reservationService) Cancel(ctx context.Context, callerID, reservationID string) (*model.Reservation, error) {
	reservation, err := s.findByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if reservation.ClientID != callerID {
		return nil, apperrors.Forbidden("Access denied")
	}

	if reservation.Terminal() {
		return reservation, nil
	}

	matched, err := s.repo.UpdateStatus(ctx, reservationID,
		[]string{model.StatusPending, model.StatusConfirmed}, model.StatusCancelled)
	if err != nil {
		s.cfg.Log.Error("Failed to cancel reservation", "id", reservationID, "error", err)
		return nil, apperrors.Internal("Failed to cancel reservation", err)
	}
	if !matched {
		// Lost a race with another cancel; the end state is the same.
		return s.findByID(ctx, reservationID)
	}

	reservation.Status = model.StatusCancelled
	s.cfg.Log.Info("Reservation cancelled", "id", reservationID, "client_id", callerID)
	return reservation, nil
}

// ConfirmPayment moves a pending reservation to confirmed. Confirming an
// already confirmed reservation succeeds; confirming a cancelled one is a
// conflict because cancelled is terminal.
func (s *reservationService) ConfirmPayment(ctx context.Context, reservationID string) (*model.Reservation, error) {
	matched, err := s.repo.UpdateStatus(ctx, reservationID,
		[]string{model.StatusPending}, model.StatusConfirmed)
	if err != nil {
		if errors.Is(err, reservationserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid reservation ID format")
		}
		s.cfg.Log.Error("Failed to confirm reservation", "id", reservationID, "error", err)
		return nil, apperrors.Internal("Failed to confirm payment", err)
	}

	reservation, err := s.findByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if !matched {
		switch reservation.Status {
		case model.StatusConfirmed:
			// Already confirmed, treat the repeat as success.
		case model.StatusCancelled:
			return nil, apperrors.Conflict("Reservation is cancelled and cannot be confirmed")
		default:
			return nil, apperrors.Internal("Failed to confirm payment", nil)
		}
	}

	if matched {
		s.cfg.Log.Info("Payment confirmed", "reservation_id", reservationID)
	}
	return reservation, nil
}

func (s *reservationService) findByID(ctx context.Context, reservationID string) (*model.Reservation, error) {
	if reservationID == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	reservation, err := s.repo.FindByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", reservationID)
		}
		if errors.Is(err, reservationserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid reservation ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve reservation", err)
	}
	return reservation, nil
}
