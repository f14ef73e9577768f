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

type BookRepo interface {
	Create(ctx context.Context, book *model.Book) error
	GetByID(ctx context.Context, id string) (*model.Book, error)
	GetByAuthor(ctx context.Context, authorID string) ([]*model.Book, error)
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id string) error
}

type bookRepo struct {
	collection *mongo.Collection
}

func NewBookRepo(db *mongo.Database) BookRepo {
	return &bookRepo{collection: db.Collection("books")}
}

func (r *bookRepo) Create(ctx context.Context, book *model.Book) error {
	if book.ID == "" {
		book.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	book.CreatedAt = now
	book.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, book)
	return err
}

func (r *bookRepo) GetByID(ctx context.Context, id string) (*model.Book, error) {
	var book model.Book
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&book)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Book not found
		}
		return nil, err
	}
	return &book, nil
}

func (r *bookRepo) GetByAuthor(ctx context.Context, authorID string) ([]*model.Book, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"authorId": authorID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var books []*model.Book
	if err = cursor.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *bookRepo) Update(ctx context.Context, book *model.Book) error {
	book.UpdatedAt = time.Now().UTC()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": book.ID}, book)
	return err
}

func (r *bookRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
