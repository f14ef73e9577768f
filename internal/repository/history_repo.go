package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bookforge/internal/model"
)

// HistoryRepo stores the historical chapter corpus. The scoring core treats
// the corpus as a read-only snapshot; only the seeder and completed-chapter
// archival write to it.
type HistoryRepo interface {
	Insert(ctx context.Context, record *model.HistoricalChapterRecord) error
	GetAll(ctx context.Context) ([]model.HistoricalChapterRecord, error)
	GetByGenre(ctx context.Context, genre string) ([]model.HistoricalChapterRecord, error)
	Count(ctx context.Context) (int64, error)
}

type historyRepo struct {
	collection *mongo.Collection
}

func NewHistoryRepo(db *mongo.Database) HistoryRepo {
	return &historyRepo{collection: db.Collection("chapter_history")}
}

func (r *historyRepo) Insert(ctx context.Context, record *model.HistoricalChapterRecord) error {
	if record.ID == "" {
		record.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, record)
	return err
}

func (r *historyRepo) GetAll(ctx context.Context) ([]model.HistoricalChapterRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []model.HistoricalChapterRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *historyRepo) GetByGenre(ctx context.Context, genre string) ([]model.HistoricalChapterRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"genre": genre})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []model.HistoricalChapterRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *historyRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
