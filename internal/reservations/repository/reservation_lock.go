package repository

import (
	"context"
	"fmt"
	"time"

	"tigminoo/pkg/config"
	"tigminoo/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const LockCollectionName = "Reservation_locks"

// ErrLockHeld is returned when another request is already creating a
// reservation for the same listing.
var ErrLockHeld = fmt.Errorf("reservation lock already held")

type ReservationLockRepository interface {
	Acquire(ctx context.Context, listingID string) (*model.ReservationLock, error)
	Release(ctx context.Context, lockID string) error
}

type mongoReservationLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoReservationLockRepository(cfg *config.Config) ReservationLockRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoReservationLockRepository{
		cfg:        cfg,
		collection: db.Collection(LockCollectionName),
	}
}

func lockID(listingID string) string {
	return "reservation_lock_" + listingID
}

// Acquire inserts the per-listing lock document. The _id is derived from the
// listing, so a second concurrent acquisition fails with a duplicate key
// error and maps to ErrLockHeld. Locks left behind by a crashed process
// expire through the TTL index on expires_at.
func (r *mongoReservationLockRepository) Acquire(ctx context.Context, listingID string) (*model.ReservationLock, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC()
	lock := &model.ReservationLock{
		ID:        lockID(listingID),
		ExpiresAt: now.Add(r.cfg.ReservationLockTTL),
		CreatedAt: now,
	}

	if _, err := r.collection.InsertOne(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrLockHeld
		}
		return nil, fmt.Errorf("failed to acquire reservation lock: %w", err)
	}

	return lock, nil
}

func (r *mongoReservationLockRepository) Release(ctx context.Context, lockID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID}); err != nil {
		return fmt.Errorf("failed to release reservation lock: %w", err)
	}
	return nil
}
