package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	accountserrors "tigminoo/internal/accounts/errors"
	"tigminoo/pkg/config"
	"tigminoo/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoAccountRepository struct {
	cfg *config.Config
	db  *mongo.Database
}

type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	FindByEmail(ctx context.Context, role model.Role, email string) (*model.Account, error)
	FindByID(ctx context.Context, role model.Role, id string) (*model.Account, error)
	FindByIDs(ctx context.Context, role model.Role, ids []string) ([]*model.Account, error)
}

func NewMongoAccountRepository(cfg *config.Config) AccountRepository {
	return &mongoAccountRepository{
		cfg: cfg,
		db:  cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName),
	}
}

func (r *mongoAccountRepository) collection(role model.Role) (*mongo.Collection, error) {
	name, ok := role.Collection()
	if !ok {
		return nil, fmt.Errorf("%w: %s", accountserrors.ErrUnknownRole, role)
	}
	return r.db.Collection(name), nil
}

func (r *mongoAccountRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoAccountRepository) Create(ctx context.Context, account *model.Account) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	coll, err := r.collection(account.Role)
	if err != nil {
		return err
	}

	account.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := coll.InsertOne(ctx, account)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return accountserrors.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		account.ID = oid.Hex()
	}
	return nil
}

func (r *mongoAccountRepository) FindByEmail(ctx context.Context, role model.Role, email string) (*model.Account, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	coll, err := r.collection(role)
	if err != nil {
		return nil, err
	}

	var account model.Account
	err = coll.FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, accountserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	account.Role = role
	return &account, nil
}

func (r *mongoAccountRepository) FindByID(ctx context.Context, role model.Role, id string) (*model.Account, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	coll, err := r.collection(role)
	if err != nil {
		return nil, err
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", accountserrors.ErrInvalidID, id)
	}

	var account model.Account
	err = coll.FindOne(ctx, bson.M{"_id": objectID}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, accountserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	account.Role = role
	return &account, nil
}

func (r *mongoAccountRepository) FindByIDs(ctx context.Context, role model.Role, ids []string) ([]*model.Account, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	coll, err := r.collection(role)
	if err != nil {
		return nil, err
	}

	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		objectIDs = append(objectIDs, oid)
	}
	if len(objectIDs) == 0 {
		return nil, nil
	}

	cursor, err := coll.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	defer cursor.Close(ctx)

	var accounts []*model.Account
	if err = cursor.All(ctx, &accounts); err != nil {
		return nil, fmt.Errorf("failed to decode accounts: %w", err)
	}

	for _, a := range accounts {
		a.Role = role
	}
	return accounts, nil
}
