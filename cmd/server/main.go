package main

import (
	accountshandler "tigminoo/internal/accounts/handler"
	accountsrepo "tigminoo/internal/accounts/repository"
	accountsservice "tigminoo/internal/accounts/service"
	accountsvalidator "tigminoo/internal/accounts/validator"
	listingshandler "tigminoo/internal/listings/handler"
	listingsrepo "tigminoo/internal/listings/repository"
	listingsservice "tigminoo/internal/listings/service"
	listingsvalidator "tigminoo/internal/listings/validator"
	reservationshandler "tigminoo/internal/reservations/handler"
	reservationsrepo "tigminoo/internal/reservations/repository"
	reservationsservice "tigminoo/internal/reservations/service"
	reservationsvalidator "tigminoo/internal/reservations/validator"
	reviewshandler "tigminoo/internal/reviews/handler"
	reviewsrepo "tigminoo/internal/reviews/repository"
	reviewsservice "tigminoo/internal/reviews/service"
	reviewsvalidator "tigminoo/internal/reviews/validator"
	"tigminoo/pkg/app"
	"tigminoo/pkg/config"
	"tigminoo/pkg/contracts"
	"tigminoo/pkg/password"
	"tigminoo/pkg/token"

	"github.com/joho/godotenv"
)

const ServiceName = "tigminoo-api"

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Tigminoo API")
	handlers := initHandlers(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handlers...)
	serverApp.Run()
}

func initHandlers(cfg *config.Config) []contracts.Handler {
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	hasher := password.NewHasher(cfg.BcryptCost)

	accountRepo := accountsrepo.NewMongoAccountRepository(cfg)
	listingRepo := listingsrepo.NewMongoListingRepository(cfg)
	reservationRepo := reservationsrepo.NewMongoReservationRepository(cfg)
	reservationLockRepo := reservationsrepo.NewMongoReservationLockRepository(cfg)
	reviewRepo := reviewsrepo.NewMongoReviewRepository(cfg)

	accountService := accountsservice.NewAccountService(
		accountRepo,
		accountsvalidator.NewAccountValidator(cfg.Log),
		hasher,
		tokens,
		cfg,
	)
	listingService := listingsservice.NewListingService(
		listingRepo,
		listingsvalidator.NewListingValidator(cfg.Log),
		cfg,
	)
	reservationService := reservationsservice.NewReservationService(
		reservationRepo,
		reservationLockRepo,
		listingRepo,
		reservationsvalidator.NewReservationValidator(cfg.Log),
		cfg,
	)
	reviewService := reviewsservice.NewReviewService(
		reviewRepo,
		reservationRepo,
		listingRepo,
		accountRepo,
		reviewsvalidator.NewReviewValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		accountshandler.NewAccountHandler(accountService, cfg.Log),
		listingshandler.NewListingHandler(listingService, tokens, cfg.Log),
		reservationshandler.NewReservationHandler(reservationService, tokens, cfg.Log),
		reviewshandler.NewReviewHandler(reviewService, tokens, cfg.Log),
	}
}
