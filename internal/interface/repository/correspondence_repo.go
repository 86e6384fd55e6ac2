package repository

import (
	"context"
	"errors"
	"time"

	"ferryflight-service/internal/domain/entity"
	"ferryflight-service/internal/domain/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCorrespondenceRepository implements CorrespondenceRepository
type MongoCorrespondenceRepository struct {
	collection *mongo.Collection
}

// NewMongoCorrespondenceRepository creates a new FAA correspondence repository
func NewMongoCorrespondenceRepository(db *mongo.Database) repository.CorrespondenceRepository {
	collection := db.Collection("faaCorrespondence")

	ctx := context.Background()
	messageIDIndex := mongo.IndexModel{
		Keys:    bson.M{"messageId": 1},
		Options: options.Index().SetUnique(true),
	}
	unprocessedIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "processStatus", Value: 1},
			{Key: "receivedAt", Value: 1},
		},
	}
	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{messageIDIndex, unprocessedIndex})

	return &MongoCorrespondenceRepository{
		collection: collection,
	}
}

// Save inserts an inbound message
func (r *MongoCorrespondenceRepository) Save(ctx context.Context, msg *entity.FAACorrespondence) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.ProcessStatus == "" {
		msg.ProcessStatus = entity.CorrespondencePending
	}
	_, err := r.collection.InsertOne(ctx, msg)
	return err
}

// FindByMessageIDs batch-checks which Gmail message ids are already stored
func (r *MongoCorrespondenceRepository) FindByMessageIDs(ctx context.Context, messageIDs []string) (map[string]*entity.FAACorrespondence, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"messageId": bson.M{"$in": messageIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*entity.FAACorrespondence
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	existing := make(map[string]*entity.FAACorrespondence, len(messages))
	for _, msg := range messages {
		existing[msg.MessageID] = msg
	}
	return existing, nil
}

// FindUnprocessed finds pending messages, oldest first
func (r *MongoCorrespondenceRepository) FindUnprocessed(ctx context.Context, limit int) ([]*entity.FAACorrespondence, error) {
	limit64 := int64(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"processStatus": entity.CorrespondencePending}, &options.FindOptions{
		Limit: &limit64,
		Sort:  bson.D{{Key: "receivedAt", Value: 1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*entity.FAACorrespondence
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// GetLastReceived returns the newest stored message, or nil when empty.
func (r *MongoCorrespondenceRepository) GetLastReceived(ctx context.Context) (*entity.FAACorrespondence, error) {
	var msg entity.FAACorrespondence
	err := r.collection.FindOne(ctx, bson.M{}, &options.FindOneOptions{
		Sort: bson.D{{Key: "receivedAt", Value: -1}},
	}).Decode(&msg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// MarkProcessed records the processing outcome for a message
func (r *MongoCorrespondenceRepository) MarkProcessed(ctx context.Context, id, status, permitID, errorDetail string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"processStatus": status,
			"permitId":      permitID,
			"errorDetail":   errorDetail,
			"processedAt":   time.Now(),
		}},
	)
	return err
}
