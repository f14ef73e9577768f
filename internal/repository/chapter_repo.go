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

type ChapterRepo interface {
	Create(ctx context.Context, chapter *model.Chapter) error
	CreateMany(ctx context.Context, chapters []*model.Chapter) error
	GetByID(ctx context.Context, id string) (*model.Chapter, error)
	GetByBook(ctx context.Context, bookID string) ([]*model.Chapter, error)
	Update(ctx context.Context, chapter *model.Chapter) error
	UpdateStatus(ctx context.Context, id string, status model.ChapterStatus) error
	Delete(ctx context.Context, id string) error
	DeleteByBook(ctx context.Context, bookID string) error
}

type chapterRepo struct {
	collection *mongo.Collection
}

func NewChapterRepo(db *mongo.Database) ChapterRepo {
	return &chapterRepo{collection: db.Collection("chapters")}
}

func (r *chapterRepo) Create(ctx context.Context, chapter *model.Chapter) error {
	if chapter.ID == "" {
		chapter.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	chapter.CreatedAt = now
	chapter.UpdatedAt = now
	if chapter.Status == "" {
		chapter.Status = model.ChapterStatusOutline
	}

	_, err := r.collection.InsertOne(ctx, chapter)
	return err
}

func (r *chapterRepo) CreateMany(ctx context.Context, chapters []*model.Chapter) error {
	if len(chapters) == 0 {
		return nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(chapters))
	for _, c := range chapters {
		if c.ID == "" {
			c.ID = primitive.NewObjectID().Hex()
		}
		c.CreatedAt = now
		c.UpdatedAt = now
		if c.Status == "" {
			c.Status = model.ChapterStatusOutline
		}
		docs = append(docs, c)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

func (r *chapterRepo) GetByID(ctx context.Context, id string) (*model.Chapter, error) {
	var chapter model.Chapter
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&chapter)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Chapter not found
		}
		return nil, err
	}
	return &chapter, nil
}

func (r *chapterRepo) GetByBook(ctx context.Context, bookID string) ([]*model.Chapter, error) {
	opts := options.Find().SetSort(bson.M{"order": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"bookId": bookID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var chapters []*model.Chapter
	if err = cursor.All(ctx, &chapters); err != nil {
		return nil, err
	}
	return chapters, nil
}

func (r *chapterRepo) Update(ctx context.Context, chapter *model.Chapter) error {
	chapter.UpdatedAt = time.Now().UTC()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": chapter.ID}, chapter)
	return err
}

func (r *chapterRepo) UpdateStatus(ctx context.Context, id string, status model.ChapterStatus) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"status":    status,
			"updatedAt": time.Now().UTC(),
		},
	})
	return err
}

func (r *chapterRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *chapterRepo) DeleteByBook(ctx context.Context, bookID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"bookId": bookID})
	return err
}
