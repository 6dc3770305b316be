// File: database/repository/formschema/mongo.go
package formschemaRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tavola/models"
)

const schemaDocID = "booking-form"

// schemaDoc is the single document holding the whole field array, so a
// ReplaceOne swaps the schema atomically.
type schemaDoc struct {
	ID     string                   `bson:"_id"`
	Fields []models.FieldDefinition `bson:"fields"`
}

type mongoRepo struct {
	coll *mongo.Collection
}

// NewMongoRepo constructs a Repository backed by the form_schema collection.
func NewMongoRepo(db *mongo.Database) Repository {
	return &mongoRepo{coll: db.Collection("form_schema")}
}

func (r *mongoRepo) Init(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.coll.FindOne(ctx, bson.M{"_id": schemaDocID}).Err()
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to check schema presence: %w", err)
	}
	return r.Replace(ctx, models.DefaultFields())
}

func (r *mongoRepo) List(ctx context.Context) ([]models.FieldDefinition, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc schemaDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": schemaDocID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schema: %w", err)
	}
	return doc.Fields, nil
}

func (r *mongoRepo) Replace(ctx context.Context, fields []models.FieldDefinition) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if fields == nil {
		fields = []models.FieldDefinition{}
	}
	doc := schemaDoc{ID: schemaDocID, Fields: fields}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": schemaDocID}, doc, opts); err != nil {
		return fmt.Errorf("failed to persist schema: %w", err)
	}
	return nil
}
