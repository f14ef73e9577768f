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

type QuestionRepo interface {
	Create(ctx context.Context, question *model.Question) error
	CreateMany(ctx context.Context, questions []*model.Question) error
	GetByID(ctx context.Context, id string) (*model.Question, error)
	GetByChapter(ctx context.Context, chapterID string) ([]*model.Question, error)
	GetUnanswered(ctx context.Context, chapterID string) ([]*model.Question, error)
	Update(ctx context.Context, question *model.Question) error
	MarkAnswered(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) error
}

type questionRepo struct {
	collection *mongo.Collection
}

func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{collection: db.Collection("questions")}
}

func (r *questionRepo) Create(ctx context.Context, question *model.Question) error {
	if question.ID == "" {
		question.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	question.CreatedAt = now
	question.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, question)
	return err
}

func (r *questionRepo) CreateMany(ctx context.Context, questions []*model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(questions))
	for _, q := range questions {
		if q.ID == "" {
			q.ID = primitive.NewObjectID().Hex()
		}
		q.CreatedAt = now
		q.UpdatedAt = now
		docs = append(docs, q)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

func (r *questionRepo) GetByID(ctx context.Context, id string) (*model.Question, error) {
	var question model.Question
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Question not found
		}
		return nil, err
	}
	return &question, nil
}

func (r *questionRepo) GetByChapter(ctx context.Context, chapterID string) ([]*model.Question, error) {
	opts := options.Find().SetSort(bson.M{"order": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"chapterId": chapterID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []*model.Question
	if err = cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepo) GetUnanswered(ctx context.Context, chapterID string) ([]*model.Question, error) {
	opts := options.Find().SetSort(bson.M{"order": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"chapterId": chapterID, "answered": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []*model.Question
	if err = cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepo) Update(ctx context.Context, question *model.Question) error {
	question.UpdatedAt = time.Now().UTC()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": question.ID}, question)
	return err
}

func (r *questionRepo) MarkAnswered(ctx context.Context, id string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"answered":  true,
			"updatedAt": time.Now().UTC(),
		},
	})
	return err
}

func (r *questionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *questionRepo) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return err
}
