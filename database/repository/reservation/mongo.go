// File: database/repository/reservation/mongo.go
package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tavola/database/repository"
	"tavola/models"
)

type mongoRepo struct {
	coll *mongo.Collection
}

// NewMongoRepo constructs a Repository backed by the reservations
// collection. The unique compound index on (date, time) makes InsertOne
// the atomic check-then-append.
func NewMongoRepo(db *mongo.Database) (Repository, error) {
	r := &mongoRepo{coll: db.Collection("reservations")}
	if err := r.ensureIndexes(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *mongoRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_date_time"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetName("created_at_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create reservation indexes: %w", err)
	}
	return nil
}

func (r *mongoRepo) Create(ctx context.Context, res *models.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, res); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrSlotTaken
		}
		return fmt.Errorf("failed to insert reservation: %w", err)
	}
	return nil
}

func (r *mongoRepo) List(ctx context.Context) ([]models.Reservation, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoRepo) ListByDate(ctx context.Context, date string) ([]models.Reservation, error) {
	return r.find(ctx, bson.M{"date": date})
}

func (r *mongoRepo) find(ctx context.Context, filter bson.M) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Reservation
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding reservations: %w", err)
	}
	return out, nil
}
