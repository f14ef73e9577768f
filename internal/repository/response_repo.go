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

type ResponseRepo interface {
	Create(ctx context.Context, response *model.Response) error
	GetByQuestion(ctx context.Context, questionID string) ([]*model.Response, error)
	GetByChapter(ctx context.Context, chapterID string) ([]*model.Response, error)
	GetByAuthor(ctx context.Context, authorID string, limit int) ([]*model.Response, error)
}

type responseRepo struct {
	collection *mongo.Collection
}

func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{collection: db.Collection("responses")}
}

func (r *responseRepo) Create(ctx context.Context, response *model.Response) error {
	if response.ID == "" {
		response.ID = primitive.NewObjectID().Hex()
	}
	response.CreatedAt = time.Now().UTC()

	_, err := r.collection.InsertOne(ctx, response)
	return err
}

func (r *responseRepo) GetByQuestion(ctx context.Context, questionID string) ([]*model.Response, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"questionId": questionID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*model.Response
	if err = cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepo) GetByChapter(ctx context.Context, chapterID string) ([]*model.Response, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"chapterId": chapterID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*model.Response
	if err = cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepo) GetByAuthor(ctx context.Context, authorID string, limit int) ([]*model.Response, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	cursor, err := r.collection.Find(ctx, bson.M{"authorId": authorID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*model.Response
	if err = cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}
