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

const weightliftCollectionName = "weightlift_prs"

// mongoWeightliftRepository implements repository.WeightliftRepository.
type mongoWeightliftRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

// NewMongoWeightliftRepository creates a new instance backed by the
// weightlift_prs collection.
func NewMongoWeightliftRepository(db *mongo.Database) repository.WeightliftRepository {
	return &mongoWeightliftRepository{
		db:         db,
		collection: db.Collection(weightliftCollectionName),
	}
}

// Create appends a record. The timestamp is set here, server-side, never
// taken from the caller.
func (r *mongoWeightliftRepository) Create(ctx context.Context, rec *domain.WeightliftRecord) (int64, error) {
	if rec.UserID == 0 || rec.Movement == "" {
		return 0, errors.New("owner id and movement are required")
	}

	id, err := nextSequence(ctx, r.db, weightliftCollectionName)
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
func (r *mongoWeightliftRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.WeightliftRecord, error) {
	return r.listByOwner(ctx, ownerID, -1)
}

// ListByOwnerChronological returns the owner's records in insertion order.
func (r *mongoWeightliftRepository) ListByOwnerChronological(ctx context.Context, ownerID int64) ([]domain.WeightliftRecord, error) {
	return r.listByOwner(ctx, ownerID, 1)
}

func (r *mongoWeightliftRepository) listByOwner(ctx context.Context, ownerID int64, direction int) ([]domain.WeightliftRecord, error) {
	// Sorting on _id orders by insertion since ids are monotonically
	// allocated; recordedAt alone has only second granularity.
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: direction}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": ownerID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []domain.WeightliftRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ListAll returns every record joined with its owner's username and full
// name, newest first.
func (r *mongoWeightliftRepository) ListAll(ctx context.Context) ([]domain.OwnedWeightliftRecord, error) {
	pipeline := ownerJoinPipeline()

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []domain.OwnedWeightliftRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Delete removes the record. Admins delete unconditionally; everyone else
// only deletes rows they own. A filter that matches nothing is a silent
// success by contract, so DeletedCount is deliberately ignored.
func (r *mongoWeightliftRepository) Delete(ctx context.Context, recordID, actingUserID int64, actingIsAdmin bool) error {
	filter := bson.M{"_id": recordID}
	if !actingIsAdmin {
		filter["userId"] = actingUserID
	}

	_, err := r.collection.DeleteOne(ctx, filter)
	return err
}

// DeleteByOwner removes all of the owner's records (user-delete cascade).
func (r *mongoWeightliftRepository) DeleteByOwner(ctx context.Context, ownerID int64) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": ownerID})
	return err
}

// ownerJoinPipeline builds the $lookup pipeline shared by both record
// collections: join users on userId, lift username/fullName onto the row,
// newest rows first.
func ownerJoinPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         userCollectionName,
			"localField":   "userId",
			"foreignField": "_id",
			"as":           "owner",
		}}},
		{{Key: "$unwind", Value: "$owner"}},
		{{Key: "$addFields", Value: bson.M{
			"username": "$owner.username",
			"fullName": "$owner.fullName",
		}}},
		{{Key: "$project", Value: bson.M{"owner": 0}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: -1}}}},
	}
}

// EnsureWeightliftIndexes creates necessary indexes for the weightlift_prs
// collection.
func EnsureWeightliftIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
