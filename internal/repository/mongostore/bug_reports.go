package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/studiosadmin/admin-console/internal/domain"
	"github.com/studiosadmin/admin-console/internal/repository"
)

type bugReportDocument struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	// Reports filed before the counter existed carry no ticketNumber; pgstore defaults it to 0.
	TicketNumber      int64              `bson:"ticketNumber,omitempty"`
	UserID            string             `bson:"userId"`
	Username          string             `bson:"username"`
	Title             string             `bson:"title"`
	Description       string             `bson:"description"`
	Rating            int                `bson:"rating"`
	Status            string             `bson:"status"`
	ResolutionMessage *string            `bson:"resolutionMessage,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt"`
}

func (d bugReportDocument) toDomain() *domain.BugReport {
	return &domain.BugReport{
		ID:                d.ID.Hex(),
		TicketNumber:      d.TicketNumber,
		UserID:            d.UserID,
		Username:          d.Username,
		Title:             d.Title,
		Description:       d.Description,
		Rating:            d.Rating,
		Status:            domain.BugReportStatus(d.Status),
		ResolutionMessage: d.ResolutionMessage,
		CreatedAt:         d.CreatedAt,
	}
}

type bugReportRepository struct {
	coll *mongo.Collection
}

func (r *bugReportRepository) Create(ctx context.Context, report *domain.BugReport) error {
	report.CreatedAt = now()
	doc := bugReportDocument{
		TicketNumber:      report.TicketNumber,
		UserID:            report.UserID,
		Username:          report.Username,
		Title:             report.Title,
		Description:       report.Description,
		Rating:            report.Rating,
		Status:            string(report.Status),
		ResolutionMessage: report.ResolutionMessage,
		CreatedAt:         report.CreatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return mapError(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		report.ID = oid.Hex()
	}
	return nil
}

func (r *bugReportRepository) GetByID(ctx context.Context, id string) (*domain.BugReport, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc bugReportDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapError(err)
	}
	return doc.toDomain(), nil
}

func (r *bugReportRepository) List(ctx context.Context, filter repository.BugReportFilter) ([]domain.BugReport, error) {
	query := bson.M{}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		query["status"] = bson.M{"$in": statuses}
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	var docs []bugReportDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	reports := make([]domain.BugReport, 0, len(docs))
	for _, doc := range docs {
		reports = append(reports, *doc.toDomain())
	}
	return reports, nil
}

func (r *bugReportRepository) Apply(ctx context.Context, id string, changes repository.BugReportChanges) (*domain.BugReport, error) {
	if changes.IsEmpty() {
		return r.GetByID(ctx, id)
	}
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if changes.UserID != nil {
		set["userId"] = *changes.UserID
	}
	if changes.Username != nil {
		set["username"] = *changes.Username
	}
	if changes.Title != nil {
		set["title"] = *changes.Title
	}
	if changes.Description != nil {
		set["description"] = *changes.Description
	}
	if changes.Rating != nil {
		set["rating"] = *changes.Rating
	}
	if changes.Status != nil {
		set["status"] = string(*changes.Status)
	}
	if changes.ResolutionMessage != nil {
		set["resolutionMessage"] = *changes.ResolutionMessage
	}

	var doc bugReportDocument
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, returnAfter()).Decode(&doc); err != nil {
		return nil, mapError(err)
	}
	return doc.toDomain(), nil
}

func (r *bugReportRepository) CountByStatus(ctx context.Context) (map[domain.BugReportStatus]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	counts := make(map[domain.BugReportStatus]int64, len(rows))
	for _, row := range rows {
		counts[domain.BugReportStatus(row.Status)] = row.Count
	}
	return counts, nil
}
