package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookforge/internal/model"
)

type FeedbackRepo interface {
	Create(ctx context.Context, record *model.FeedbackRecord) error
	GetByQuestion(ctx context.Context, questionID string) ([]model.FeedbackRecord, error)
}

type feedbackRepo struct {
	collection *mongo.Collection
}

func NewFeedbackRepo(db *mongo.Database) FeedbackRepo {
	return &feedbackRepo{collection: db.Collection("feedback")}
}

func (r *feedbackRepo) Create(ctx context.Context, record *model.FeedbackRecord) error {
	if record.ID == "" {
		record.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, record)
	return err
}

func (r *feedbackRepo) GetByQuestion(ctx context.Context, questionID string) ([]model.FeedbackRecord, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"questionId": questionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []model.FeedbackRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
