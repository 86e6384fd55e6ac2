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

// MongoDocumentRepository implements DocumentRepository
type MongoDocumentRepository struct {
	collection *mongo.Collection
}

// NewMongoDocumentRepository creates a new document repository
func NewMongoDocumentRepository(db *mongo.Database) repository.DocumentRepository {
	collection := db.Collection("documents")

	ctx := context.Background()
	flightIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "flightId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
	}
	collection.Indexes().CreateOne(ctx, flightIndex)

	return &MongoDocumentRepository{
		collection: collection,
	}
}

// Save inserts a document record
func (r *MongoDocumentRepository) Save(ctx context.Context, doc *entity.Document) error {
	if doc.ID == "" {
		doc.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, doc)
	return err
}

// FindByFlight lists a flight's documents, newest first
func (r *MongoDocumentRepository) FindByFlight(ctx context.Context, flightID string) ([]*entity.Document, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"flightId": flightID}, &options.FindOptions{
		Sort: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*entity.Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Delete removes a document record
func (r *MongoDocumentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
