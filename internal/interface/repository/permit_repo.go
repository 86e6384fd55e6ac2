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

// MongoPermitRepository implements PermitRepository
type MongoPermitRepository struct {
	collection *mongo.Collection
}

// NewMongoPermitRepository creates a new FAA permit repository
func NewMongoPermitRepository(db *mongo.Database) repository.PermitRepository {
	collection := db.Collection("faaPermits")

	ctx := context.Background()
	flightIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "flightId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
	}
	permitNumberIndex := mongo.IndexModel{
		Keys:    bson.M{"permitNumber": 1},
		Options: options.Index().SetSparse(true),
	}
	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{flightIndex, permitNumberIndex})

	return &MongoPermitRepository{
		collection: collection,
	}
}

// Create inserts a new permit
func (r *MongoPermitRepository) Create(ctx context.Context, permit *entity.FAAPermit) error {
	if permit.ID == "" {
		permit.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now()
	permit.CreatedAt = now
	permit.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, permit)
	return err
}

// FindByID finds a permit by id; returns nil when no document matches.
func (r *MongoPermitRepository) FindByID(ctx context.Context, id string) (*entity.FAAPermit, error) {
	var permit entity.FAAPermit
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&permit)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &permit, nil
}

// FindLatestByFlight returns the newest permit for a flight, or nil.
func (r *MongoPermitRepository) FindLatestByFlight(ctx context.Context, flightID string) (*entity.FAAPermit, error) {
	var permit entity.FAAPermit
	err := r.collection.FindOne(ctx, bson.M{"flightId": flightID}, &options.FindOneOptions{
		Sort: bson.D{{Key: "createdAt", Value: -1}},
	}).Decode(&permit)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &permit, nil
}

// FindByPermitNumber finds a permit by its FAA-issued number, or nil.
func (r *MongoPermitRepository) FindByPermitNumber(ctx context.Context, permitNumber string) (*entity.FAAPermit, error) {
	var permit entity.FAAPermit
	err := r.collection.FindOne(ctx, bson.M{"permitNumber": permitNumber}).Decode(&permit)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &permit, nil
}

// Update replaces the permit's mutable fields
func (r *MongoPermitRepository) Update(ctx context.Context, permit *entity.FAAPermit) error {
	permit.UpdatedAt = time.Now()

	updateDoc := bson.M{
		"status":               permit.Status,
		"submissionChannel":    permit.SubmissionChannel,
		"fsdoOffice":           permit.FSDOOffice,
		"submittedAt":          permit.SubmittedAt,
		"permitNumber":         permit.PermitNumber,
		"expiresAt":            permit.ExpiresAt,
		"operatingLimitations": permit.OperatingLimitations,
		"faaQuestions":         permit.FAAQuestions,
		"faaResponse":          permit.FAAResponse,
		"updatedAt":            permit.UpdatedAt,
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": permit.ID}, bson.M{"$set": updateDoc})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
