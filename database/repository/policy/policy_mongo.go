package policyRepo

import (
	"context"
	"fmt"
	"time"

	"tempo/database"
	"tempo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPolicyRepo implements PolicyRepository using MongoDB.
type MongoPolicyRepo struct {
	coll *mongo.Collection
}

// NewMongoPolicyRepo creates a new instance of PolicyRepository using MongoDB.
func NewMongoPolicyRepo() PolicyRepository {
	coll := database.MongoClient.Database("tempo").Collection("policies")
	repo := &MongoPolicyRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoPolicyRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByUserID retrieves the stored policy record for a user.
func (r *MongoPolicyRepo) GetByUserID(userID string) (*models.PolicyRecord, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var rec models.PolicyRecord
	if err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&rec); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch policy for user %s: %w", userID, err)
	}
	return &rec, nil
}

// Upsert inserts or replaces the policy record for a user.
func (r *MongoPolicyRepo) Upsert(rec *models.PolicyRecord) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	rec.UpdatedAt = time.Now().Unix()
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"userId": rec.UserID}, rec, opts); err != nil {
		return fmt.Errorf("failed to upsert policy for user %s: %w", rec.UserID, err)
	}
	return nil
}

// Delete removes the stored policy for a user.
func (r *MongoPolicyRepo) Delete(userID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"userId": userID}); err != nil {
		return fmt.Errorf("failed to delete policy for user %s: %w", userID, err)
	}
	return nil
}
