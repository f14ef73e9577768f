package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookforge/internal/model"
)

type AuditRepo interface {
	Insert(ctx context.Context, entry *model.AuditEntry) error
	GetRecent(ctx context.Context, bookID string, limit int) ([]model.AuditEntry, error)
}

type auditRepo struct {
	collection *mongo.Collection
}

func NewAuditRepo(db *mongo.Database) AuditRepo {
	return &auditRepo{collection: db.Collection("audit_log")}
}

func (r *auditRepo) Insert(ctx context.Context, entry *model.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = primitive.NewObjectID().Hex()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

func (r *auditRepo) GetRecent(ctx context.Context, bookID string, limit int) ([]model.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{"bookId": bookID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []model.AuditEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
