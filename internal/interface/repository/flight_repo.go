package repository

import (
	"context"
	"errors"
	"time"

	"ferryflight-service/internal/domain/entity"
	"ferryflight-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFlightRepository implements FlightRepository
type MongoFlightRepository struct {
	collection *mongo.Collection
}

// NewMongoFlightRepository creates a new ferry flight repository
func NewMongoFlightRepository(db *mongo.Database) repository.FlightRepository {
	collection := db.Collection("ferryFlights")

	ctx := context.Background()
	orgIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "organizationId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
	}
	statusIndex := mongo.IndexModel{
		Keys: bson.M{"status": 1},
	}
	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{orgIndex, statusIndex})

	return &MongoFlightRepository{
		collection: collection,
	}
}

// Create inserts a new flight
func (r *MongoFlightRepository) Create(ctx context.Context, flight *entity.FerryFlight) error {
	if flight.ID == "" {
		flight.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now()
	if flight.CreatedAt.IsZero() {
		flight.CreatedAt = now
	}
	flight.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, flight)
	return err
}

// FindByID finds a flight by id; returns nil when no document matches.
func (r *MongoFlightRepository) FindByID(ctx context.Context, id string) (*entity.FerryFlight, error) {
	var flight entity.FerryFlight
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&flight)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

// FindByOrganization lists an organization's flights, newest first
func (r *MongoFlightRepository) FindByOrganization(ctx context.Context, orgID string) ([]*entity.FerryFlight, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"organizationId": orgID}, &options.FindOptions{
		Sort: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var flights []*entity.FerryFlight
	if err := cursor.All(ctx, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

// UpdateStatus writes just the status field
func (r *MongoFlightRepository) UpdateStatus(ctx context.Context, id string, status entity.FlightStatus) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":    status,
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// UpdateFields writes a partial field set
func (r *MongoFlightRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	set := bson.M{"updatedAt": time.Now()}
	for name, value := range fields {
		set[name] = value
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
