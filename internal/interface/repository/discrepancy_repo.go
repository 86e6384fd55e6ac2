package repository

import (
	"context"

	"ferryflight-service/internal/domain/entity"
	"ferryflight-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDiscrepancyRepository implements DiscrepancyRepository
type MongoDiscrepancyRepository struct {
	collection *mongo.Collection
}

// NewMongoDiscrepancyRepository creates a new discrepancy repository
func NewMongoDiscrepancyRepository(db *mongo.Database) repository.DiscrepancyRepository {
	collection := db.Collection("discrepancies")

	ctx := context.Background()
	flightIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "flightId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
	}
	collection.Indexes().CreateOne(ctx, flightIndex)

	return &MongoDiscrepancyRepository{
		collection: collection,
	}
}

// Save inserts a discrepancy
func (r *MongoDiscrepancyRepository) Save(ctx context.Context, discrepancy *entity.Discrepancy) error {
	if discrepancy.ID == "" {
		discrepancy.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, discrepancy)
	return err
}

// FindByFlight lists a flight's discrepancies, newest first
func (r *MongoDiscrepancyRepository) FindByFlight(ctx context.Context, flightID string) ([]*entity.Discrepancy, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"flightId": flightID}, &options.FindOptions{
		Sort: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var list []*entity.Discrepancy
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Delete removes a discrepancy
func (r *MongoDiscrepancyRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
