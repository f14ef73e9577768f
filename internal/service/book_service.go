package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"bookforge/internal/model"
	"bookforge/internal/repository"
)

var (
	ErrBookNotFound    = errors.New("book not found")
	ErrChapterNotFound = errors.New("chapter not found")
	ErrNotBookOwner    = errors.New("book belongs to another author")
)

// BookService manages books and chapters.
type BookService struct {
	books     repository.BookRepo
	chapters  repository.ChapterRepo
	generator *GeneratorService
	audit     *AuditService
	logger    *zap.Logger
}

// NewBookService creates a new book service
func NewBookService(books repository.BookRepo, chapters repository.ChapterRepo, generator *GeneratorService, audit *AuditService, logger *zap.Logger) *BookService {
	return &BookService{
		books:     books,
		chapters:  chapters,
		generator: generator,
		audit:     audit,
		logger:    logger,
	}
}

// CreateBook persists a new book for the author
func (s *BookService) CreateBook(ctx context.Context, authorID string, book *model.Book) (*model.Book, error) {
	book.AuthorID = authorID
	if err := s.books.Create(ctx, book); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, authorID, "book.create", book.ID, "", map[string]interface{}{"title": book.Title})
	return book, nil
}

// GetBook returns the author's book or an ownership error
func (s *BookService) GetBook(ctx context.Context, authorID, bookID string) (*model.Book, error) {
	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	if book.AuthorID != authorID {
		return nil, ErrNotBookOwner
	}
	return book, nil
}

// ListBooks returns all books owned by the author
func (s *BookService) ListBooks(ctx context.Context, authorID string) ([]*model.Book, error) {
	return s.books.GetByAuthor(ctx, authorID)
}

// UpdateBook replaces the book's metadata
func (s *BookService) UpdateBook(ctx context.Context, authorID string, book *model.Book) error {
	existing, err := s.GetBook(ctx, authorID, book.ID)
	if err != nil {
		return err
	}
	book.AuthorID = existing.AuthorID
	book.CreatedAt = existing.CreatedAt
	if err := s.books.Update(ctx, book); err != nil {
		return err
	}
	s.audit.Record(ctx, authorID, "book.update", book.ID, "", nil)
	return nil
}

// DeleteBook removes a book and its chapters
func (s *BookService) DeleteBook(ctx context.Context, authorID, bookID string) error {
	if _, err := s.GetBook(ctx, authorID, bookID); err != nil {
		return err
	}
	if err := s.chapters.DeleteByBook(ctx, bookID); err != nil {
		return err
	}
	if err := s.books.Delete(ctx, bookID); err != nil {
		return err
	}
	s.audit.Record(ctx, authorID, "book.delete", bookID, "", nil)
	return nil
}

// GenerateTOC proposes and persists a chapter outline for an empty book
func (s *BookService) GenerateTOC(ctx context.Context, authorID, bookID string, chapterCount int) ([]*model.Chapter, error) {
	book, err := s.GetBook(ctx, authorID, bookID)
	if err != nil {
		return nil, err
	}

	chapters := s.generator.GenerateTOC(ctx, book, chapterCount)
	if err := s.chapters.CreateMany(ctx, chapters); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, authorID, "book.generate_toc", bookID, "", map[string]interface{}{
		"chapterCount": len(chapters),
	})
	return chapters, nil
}

// CreateChapter adds a chapter to the author's book
func (s *BookService) CreateChapter(ctx context.Context, authorID string, chapter *model.Chapter) (*model.Chapter, error) {
	if _, err := s.GetBook(ctx, authorID, chapter.BookID); err != nil {
		return nil, err
	}
	if err := s.chapters.Create(ctx, chapter); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, authorID, "chapter.create", chapter.BookID, chapter.ID, map[string]interface{}{"title": chapter.Title})
	return chapter, nil
}

// GetChapter returns a chapter after checking book ownership
func (s *BookService) GetChapter(ctx context.Context, authorID, chapterID string) (*model.Chapter, *model.Book, error) {
	chapter, err := s.chapters.GetByID(ctx, chapterID)
	if err != nil {
		return nil, nil, err
	}
	if chapter == nil {
		return nil, nil, ErrChapterNotFound
	}
	book, err := s.GetBook(ctx, authorID, chapter.BookID)
	if err != nil {
		return nil, nil, err
	}
	return chapter, book, nil
}

// ListChapters returns the book's chapters in order
func (s *BookService) ListChapters(ctx context.Context, authorID, bookID string) ([]*model.Chapter, error) {
	if _, err := s.GetBook(ctx, authorID, bookID); err != nil {
		return nil, err
	}
	return s.chapters.GetByBook(ctx, bookID)
}

// UpdateChapter replaces a chapter's content and metadata
func (s *BookService) UpdateChapter(ctx context.Context, authorID string, chapter *model.Chapter) error {
	existing, _, err := s.GetChapter(ctx, authorID, chapter.ID)
	if err != nil {
		return err
	}
	chapter.BookID = existing.BookID
	chapter.CreatedAt = existing.CreatedAt
	if chapter.Status == "" {
		chapter.Status = existing.Status
	}
	if err := s.chapters.Update(ctx, chapter); err != nil {
		return err
	}
	s.audit.Record(ctx, authorID, "chapter.update", chapter.BookID, chapter.ID, nil)
	return nil
}

// DeleteChapter removes a chapter
func (s *BookService) DeleteChapter(ctx context.Context, authorID, chapterID string) error {
	chapter, _, err := s.GetChapter(ctx, authorID, chapterID)
	if err != nil {
		return err
	}
	if err := s.chapters.Delete(ctx, chapterID); err != nil {
		return err
	}
	s.audit.Record(ctx, authorID, "chapter.delete", chapter.BookID, chapterID, nil)
	return nil
}
