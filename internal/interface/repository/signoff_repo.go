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

// MongoSignoffRepository implements SignoffRepository. The collection is
// append-only; no update or delete methods exist.
type MongoSignoffRepository struct {
	collection *mongo.Collection
}

// NewMongoSignoffRepository creates a new sign-off repository
func NewMongoSignoffRepository(db *mongo.Database) repository.SignoffRepository {
	collection := db.Collection("mechanicSignoffs")

	ctx := context.Background()
	flightIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "flightId", Value: 1},
			{Key: "signedAt", Value: -1},
		},
	}
	collection.Indexes().CreateOne(ctx, flightIndex)

	return &MongoSignoffRepository{
		collection: collection,
	}
}

// Save inserts a sign-off
func (r *MongoSignoffRepository) Save(ctx context.Context, signoff *entity.MechanicSignoff) error {
	if signoff.ID == "" {
		signoff.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, signoff)
	return err
}

// FindByFlight lists a flight's sign-offs, newest first
func (r *MongoSignoffRepository) FindByFlight(ctx context.Context, flightID string) ([]*entity.MechanicSignoff, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"flightId": flightID}, &options.FindOptions{
		Sort: bson.D{{Key: "signedAt", Value: -1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var signoffs []*entity.MechanicSignoff
	if err := cursor.All(ctx, &signoffs); err != nil {
		return nil, err
	}
	return signoffs, nil
}

// CountByFlight counts a flight's sign-offs
func (r *MongoSignoffRepository) CountByFlight(ctx context.Context, flightID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"flightId": flightID})
}
