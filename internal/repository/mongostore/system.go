package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/studiosadmin/admin-console/internal/domain"
)

type systemStateDocument struct {
	Key       string    `bson:"key"`
	Value     bool      `bson:"value"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func (d systemStateDocument) toDomain() *domain.SystemState {
	return &domain.SystemState{Key: d.Key, Value: d.Value, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}
}

type systemStateRepository struct {
	coll *mongo.Collection
}

func (r *systemStateRepository) Get(ctx context.Context, key string) (*domain.SystemState, error) {
	var doc systemStateDocument
	if err := r.coll.FindOne(ctx, bson.M{"key": key}).Decode(&doc); err != nil {
		return nil, mapError(err)
	}
	return doc.toDomain(), nil
}

func (r *systemStateRepository) Upsert(ctx context.Context, key string, value bool) (*domain.SystemState, error) {
	ts := now()
	update := bson.M{
		"$set":         bson.M{"value": value, "updatedAt": ts},
		"$setOnInsert": bson.M{"createdAt": ts},
	}
	var doc systemStateDocument
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"key": key}, update, returnAfter().SetUpsert(true)).Decode(&doc)
	if err != nil {
		return nil, mapError(err)
	}
	return doc.toDomain(), nil
}

// usageDocument.UserID is an ObjectId for documents written by the previous
// dashboard and for hex ids written here; other ids are stored as strings.
type usageDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    any                `bson:"userId"`
	Seconds   float64            `bson:"seconds"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d usageDocument) toDomain() *domain.Usage {
	return &domain.Usage{ID: d.ID.Hex(), UserID: userIDString(d.UserID), Seconds: d.Seconds, UpdatedAt: d.UpdatedAt}
}

// usageUserKey is the value stored in userId for a new document.
func usageUserKey(userID string) any {
	if oid, err := primitive.ObjectIDFromHex(userID); err == nil {
		return oid
	}
	return userID
}

// usageUserFilter matches both encodings of a hex id.
func usageUserFilter(userID string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(userID); err == nil {
		return bson.M{"userId": bson.M{"$in": bson.A{oid, userID}}}
	}
	return bson.M{"userId": userID}
}

func userIDString(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

type usageRepository struct {
	coll *mongo.Collection
}

func (r *usageRepository) Increment(ctx context.Context, userID string, seconds float64) (*domain.Usage, error) {
	update := bson.M{
		"$inc":         bson.M{"seconds": seconds},
		"$set":         bson.M{"updatedAt": now()},
		"$setOnInsert": bson.M{"userId": usageUserKey(userID)},
	}
	var doc usageDocument
	err := r.coll.FindOneAndUpdate(ctx, usageUserFilter(userID), update, returnAfter().SetUpsert(true)).Decode(&doc)
	if err != nil {
		return nil, mapError(err)
	}
	return doc.toDomain(), nil
}

func (r *usageRepository) GetByUser(ctx context.Context, userID string) (*domain.Usage, error) {
	var doc usageDocument
	if err := r.coll.FindOne(ctx, usageUserFilter(userID)).Decode(&doc); err != nil {
		return nil, mapError(err)
	}
	return doc.toDomain(), nil
}

func (r *usageRepository) List(ctx context.Context) ([]domain.Usage, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "userId", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []usageDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domain.Usage, 0, len(docs))
	for _, doc := range docs {
		out = append(out, *doc.toDomain())
	}
	return out, nil
}

type counterRepository struct {
	coll *mongo.Collection
}

func (r *counterRepository) Next(ctx context.Context, name string) (int64, error) {
	var doc struct {
		SequenceValue int64 `bson:"sequenceValue"`
	}
	update := bson.M{"$inc": bson.M{"sequenceValue": 1}}
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": name}, update, returnAfter().SetUpsert(true)).Decode(&doc)
	if err != nil {
		return 0, mapError(err)
	}
	return doc.SequenceValue, nil
}

type statsRepository struct {
	db *mongo.Database
}

// DataSize reads dbStats.dataSize, the uncompressed size of all documents.
func (r *statsRepository) DataSize(ctx context.Context) (int64, error) {
	var stats bson.M
	if err := r.db.RunCommand(ctx, bson.D{{Key: "dbStats", Value: 1}}).Decode(&stats); err != nil {
		return 0, err
	}
	return numberToInt64(stats["dataSize"])
}

func numberToInt64(v any) (int64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		return int64(n), nil
	}
	return 0, fmt.Errorf("unexpected dataSize type %T", v)
}
