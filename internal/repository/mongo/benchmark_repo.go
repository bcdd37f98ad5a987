package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xaramillo/crossfit/internal/domain"
	"github.com/xaramillo/crossfit/internal/repository"
)

const benchmarkCollectionName = "benchmark_prs"

// mongoBenchmarkRepository implements repository.BenchmarkRepository.
// Structurally a sibling of the weightlift repository; the two logs are
// independent and never queried together.
type mongoBenchmarkRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

// NewMongoBenchmarkRepository creates a new instance backed by the
// benchmark_prs collection.
func NewMongoBenchmarkRepository(db *mongo.Database) repository.BenchmarkRepository {
	return &mongoBenchmarkRepository{
		db:         db,
		collection: db.Collection(benchmarkCollectionName),
	}
}

// Create appends a record with a server-side timestamp.
func (r *mongoBenchmarkRepository) Create(ctx context.Context, rec *domain.BenchmarkRecord) (int64, error) {
	if rec.UserID == 0 || rec.Workout == "" {
		return 0, errors.New("owner id and workout are required")
	}

	id, err := nextSequence(ctx, r.db, benchmarkCollectionName)
	if err != nil {
		return 0, err
	}

	rec.ID = id
	rec.RecordedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, rec); err != nil {
		return 0, err
	}
	return id, nil
}

// ListByOwner returns the owner's records, newest first.
func (r *mongoBenchmarkRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.BenchmarkRecord, error) {
	return r.listByOwner(ctx, ownerID, -1)
}

// ListByOwnerChronological returns the owner's records in insertion order.
func (r *mongoBenchmarkRepository) ListByOwnerChronological(ctx context.Context, ownerID int64) ([]domain.BenchmarkRecord, error) {
	return r.listByOwner(ctx, ownerID, 1)
}

func (r *mongoBenchmarkRepository) listByOwner(ctx context.Context, ownerID int64, direction int) ([]domain.BenchmarkRecord, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: direction}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": ownerID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []domain.BenchmarkRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ListAll returns every record joined with its owner's identity, newest
// first.
func (r *mongoBenchmarkRepository) ListAll(ctx context.Context) ([]domain.OwnedBenchmarkRecord, error) {
	cursor, err := r.collection.Aggregate(ctx, ownerJoinPipeline())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []domain.OwnedBenchmarkRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Delete removes the record, owner-scoped unless acting as admin. Matching
// nothing is a silent success by contract.
func (r *mongoBenchmarkRepository) Delete(ctx context.Context, recordID, actingUserID int64, actingIsAdmin bool) error {
	filter := bson.M{"_id": recordID}
	if !actingIsAdmin {
		filter["userId"] = actingUserID
	}

	_, err := r.collection.DeleteOne(ctx, filter)
	return err
}

// DeleteByOwner removes all of the owner's records (user-delete cascade).
func (r *mongoBenchmarkRepository) DeleteByOwner(ctx context.Context, ownerID int64) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": ownerID})
	return err
}

// EnsureBenchmarkIndexes creates necessary indexes for the benchmark_prs
// collection.
func EnsureBenchmarkIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
