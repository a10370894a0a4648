package mongostore

import (
	"context"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/studiosadmin/admin-console/internal/domain"
	"github.com/studiosadmin/admin-console/internal/repository"
)

type accessDocument struct {
	Dashboard         bool `bson:"dashboard"`
	PosterEditor      bool `bson:"posterEditor"`
	CertificateEditor bool `bson:"certificateEditor"`
	VisitingCard      bool `bson:"visitingCard"`
	IDCard            bool `bson:"idCard"`
	BgRemover         bool `bson:"bgRemover"`
	ImageEnhancer     bool `bson:"imageEnhancer"`
	Assets            bool `bson:"assets"`
	Settings          bool `bson:"settings"`
	BugReport         bool `bson:"bugReport"`
	Developer         bool `bson:"developer"`
}

type memberDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Password  string             `bson:"password"`
	Access    accessDocument     `bson:"access"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d memberDocument) toDomain() *domain.Member {
	return &domain.Member{
		ID:        d.ID.Hex(),
		Username:  d.Username,
		Password:  d.Password,
		Access:    domain.AccessFlags(d.Access),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type memberRepository struct {
	coll *mongo.Collection
}

func (r *memberRepository) Create(ctx context.Context, member *domain.Member) error {
	ts := now()
	doc := memberDocument{
		Username:  member.Username,
		Password:  member.Password,
		Access:    accessDocument(member.Access),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return mapError(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		member.ID = oid.Hex()
	}
	member.CreatedAt = ts
	member.UpdatedAt = ts
	return nil
}

func (r *memberRepository) Update(ctx context.Context, member *domain.Member) error {
	oid, err := objectID(member.ID)
	if err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{
		"username":  member.Username,
		"password":  member.Password,
		"access":    accessDocument(member.Access),
		"updatedAt": now(),
	}}
	var doc memberDocument
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, returnAfter()).Decode(&doc); err != nil {
		return mapError(err)
	}
	*member = *doc.toDomain()
	return nil
}

func (r *memberRepository) SetAccess(ctx context.Context, id string, field domain.AccessField, value bool) (*domain.Member, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{
		"access." + string(field): value,
		"updatedAt":               now(),
	}}
	var doc memberDocument
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, returnAfter()).Decode(&doc); err != nil {
		return nil, mapError(err)
	}
	return doc.toDomain(), nil
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *memberRepository) GetByUsername(ctx context.Context, username string) (*domain.Member, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *memberRepository) findOne(ctx context.Context, filter bson.M) (*domain.Member, error) {
	var doc memberDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mapError(err)
	}
	return doc.toDomain(), nil
}

func (r *memberRepository) List(ctx context.Context, filter repository.MemberFilter) ([]domain.Member, error) {
	query := bson.M{}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query["username"] = primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	var docs []memberDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	members := make([]domain.Member, 0, len(docs))
	for _, doc := range docs {
		members = append(members, *doc.toDomain())
	}
	return members, nil
}

func (r *memberRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
