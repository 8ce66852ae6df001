package embedstore

import (
	"context"
	"fmt"

	"EduLens/internal/report_service/rag/schema"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// chunkRecord is the persisted shape of a chunk.
type chunkRecord struct {
	StudentID string    `bson:"student_id"`
	FileName  string    `bson:"file_name"`
	Name      string    `bson:"name"`
	Text      string    `bson:"text"`
	Embedding []float32 `bson:"embedding"`
}

// MongoStore is an EmbeddingStore backed by a MongoDB collection. Records are
// keyed by student_id; the collection grows append-only from the pipeline's
// point of view.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a MongoStore over the given collection.
func NewMongoStore(client *mongo.Client, database, collection string) *MongoStore {
	return &MongoStore{
		coll: client.Database(database).Collection(collection),
	}
}

// ListFilenames returns the distinct source filenames stored for the student.
func (s *MongoStore) ListFilenames(ctx context.Context, studentID string) (map[string]struct{}, error) {
	values, err := s.coll.Distinct(ctx, "file_name", bson.M{"student_id": studentID})
	if err != nil {
		return nil, fmt.Errorf("listing filenames for student %q: %w", studentID, err)
	}

	names := make(map[string]struct{}, len(values))
	for _, v := range values {
		if name, ok := v.(string); ok {
			names[name] = struct{}{}
		}
	}
	return names, nil
}

// Append inserts one chunk record.
func (s *MongoStore) Append(ctx context.Context, studentID string, chunk schema.Chunk) error {
	record := chunkRecord{
		StudentID: studentID,
		FileName:  chunk.FileName,
		Name:      chunk.Name,
		Text:      chunk.Text,
		Embedding: chunk.Embedding,
	}
	if _, err := s.coll.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("appending chunk %q for student %q: %w", chunk.Name, studentID, err)
	}
	return nil
}

// ListAll loads every chunk stored for the student, in insertion order so
// retrieval tie-breaking stays deterministic.
func (s *MongoStore) ListAll(ctx context.Context, studentID string) ([]schema.Chunk, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{"student_id": studentID}, opts)
	if err != nil {
		return nil, fmt.Errorf("loading chunks for student %q: %w", studentID, err)
	}
	defer cursor.Close(ctx)

	var chunks []schema.Chunk
	for cursor.Next(ctx) {
		var record chunkRecord
		if err := cursor.Decode(&record); err != nil {
			return nil, fmt.Errorf("decoding chunk record: %w", err)
		}
		chunks = append(chunks, schema.Chunk{
			Name:      record.Name,
			FileName:  record.FileName,
			Text:      record.Text,
			Embedding: record.Embedding,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunk records: %w", err)
	}

	return chunks, nil
}

// compile-time check to ensure MongoStore implements the EmbeddingStore interface
var _ EmbeddingStore = (*MongoStore)(nil)
