package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"justel_spider/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore delivers the same record shape as FileStore straight into a
// Mongo database: the index artifact keyed by seq, law documents keyed by
// their language-qualified id. No querying beyond the upsert keys happens
// here; loading records into queryable form is the storage component's job.
type MongoStore struct {
	client    *mongo.Client
	index     *mongo.Collection
	documents *mongo.Collection
}

func NewMongoStore(uri, database string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("can't ping MongoDB: %w", err)
	}

	db := client.Database(database)
	s := &MongoStore{
		client:    client,
		index:     db.Collection("index_entries"),
		documents: db.Collection("law_documents"),
	}
	if err := s.createIndexes(); err != nil {
		return nil, fmt.Errorf("can't create indexes: %w", err)
	}
	return s, nil
}

func (s *MongoStore) createIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := s.documents.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil && err.Error() != "index already exists" {
		log.Printf("document id index: %v", err)
	}

	_, err = s.index.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "seq", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil && err.Error() != "index already exists" {
		log.Printf("index seq index: %v", err)
	}
	return nil
}

func (s *MongoStore) SaveIndex(entries []models.IndexEntry) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	opts := options.Update().SetUpsert(true)
	for _, entry := range entries {
		filter := bson.M{"seq": entry.Seq}
		if _, err := s.index.UpdateOne(ctx, filter, bson.M{"$set": entry}, opts); err != nil {
			return err
		}
	}
	return nil
}

func (s *MongoStore) LoadIndex() ([]models.IndexEntry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cursor, err := s.index.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.IndexEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoIndex
	}
	return entries, nil
}

func (s *MongoStore) SaveDocument(doc *models.LawDocument) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"id": doc.ID}
	_, err := s.documents.UpdateOne(ctx, filter, bson.M{"$set": doc}, opts)
	return err
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
