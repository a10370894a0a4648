// Package mongostore implements the repositories on a MongoDB database.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/studiosadmin/admin-console/internal/repository"
)

// Collection names, matching the ones the dashboard has always written to.
const (
	CollectionMembers      = "members"
	CollectionBugReports   = "bugreports"
	CollectionSystemStates = "systemstates"
	CollectionUsages       = "usages"
	CollectionCounters     = "counters"
)

// New wires every repository to db.
func New(db *mongo.Database) repository.Repositories {
	return repository.Repositories{
		Members:      &memberRepository{coll: db.Collection(CollectionMembers)},
		BugReports:   &bugReportRepository{coll: db.Collection(CollectionBugReports)},
		SystemStates: &systemStateRepository{coll: db.Collection(CollectionSystemStates)},
		Usage:        &usageRepository{coll: db.Collection(CollectionUsages)},
		Counters:     &counterRepository{coll: db.Collection(CollectionCounters)},
		Stats:        &statsRepository{db: db},
	}
}

// EnsureIndexes creates the unique indexes the repositories rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := []struct {
		collection string
		field      string
	}{
		{CollectionMembers, "username"},
		{CollectionSystemStates, "key"},
		{CollectionUsages, "userId"},
	}
	for _, idx := range unique {
		model := mongo.IndexModel{
			Keys:    bson.D{{Key: idx.field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
		if _, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index %s.%s: %w", idx.collection, idx.field, err)
		}
	}
	return nil
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repository.ErrNotFound
	}
	return oid, nil
}

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repository.ErrDuplicate
	}
	return err
}

func returnAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

func now() time.Time {
	// Mongo stores milliseconds; truncate so returned values match stored ones.
	return time.Now().UTC().Truncate(time.Millisecond)
}
