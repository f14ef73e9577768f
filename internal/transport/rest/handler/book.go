package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"bookforge/internal/model"
	"bookforge/internal/service"
	"bookforge/internal/transport/rest/middleware"
)

// BookHandler handles book and chapter endpoints
type BookHandler struct {
	bookSvc *service.BookService
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookSvc *service.BookService) *BookHandler {
	return &BookHandler{bookSvc: bookSvc}
}

// BookRequest is the request body for creating or updating a book
type BookRequest struct {
	Title          string `json:"title"`
	Genre          string `json:"genre"`
	TargetAudience string `json:"targetAudience"`
	Description    string `json:"description"`
}

// ChapterRequest is the request body for creating or updating a chapter
type ChapterRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Order       int    `json:"order"`
}

// GenerateTOCRequest is the request body for TOC generation
type GenerateTOCRequest struct {
	ChapterCount int `json:"chapterCount"`
}

// Create handles POST /v1/books
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())

	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	book, err := h.bookSvc.CreateBook(r.Context(), authorID, &model.Book{
		Title:          req.Title,
		Genre:          req.Genre,
		TargetAudience: req.TargetAudience,
		Description:    req.Description,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

// List handles GET /v1/books
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())

	books, err := h.bookSvc.ListBooks(r.Context(), authorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"books": books})
}

// Get handles GET /v1/books/{bookId}
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	bookID := mux.Vars(r)["bookId"]

	book, err := h.bookSvc.GetBook(r.Context(), authorID, bookID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

// Update handles PUT /v1/books/{bookId}
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	bookID := mux.Vars(r)["bookId"]

	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	book := &model.Book{
		ID:             bookID,
		Title:          req.Title,
		Genre:          req.Genre,
		TargetAudience: req.TargetAudience,
		Description:    req.Description,
	}
	if err := h.bookSvc.UpdateBook(r.Context(), authorID, book); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

// Delete handles DELETE /v1/books/{bookId}
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	bookID := mux.Vars(r)["bookId"]

	if err := h.bookSvc.DeleteBook(r.Context(), authorID, bookID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GenerateTOC handles POST /v1/books/{bookId}/toc
func (h *BookHandler) GenerateTOC(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	bookID := mux.Vars(r)["bookId"]

	var req GenerateTOCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	chapters, err := h.bookSvc.GenerateTOC(r.Context(), authorID, bookID, req.ChapterCount)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"chapters": chapters})
}

// CreateChapter handles POST /v1/books/{bookId}/chapters
func (h *BookHandler) CreateChapter(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	bookID := mux.Vars(r)["bookId"]

	var req ChapterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	chapter, err := h.bookSvc.CreateChapter(r.Context(), authorID, &model.Chapter{
		BookID:      bookID,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Order:       req.Order,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, chapter)
}

// ListChapters handles GET /v1/books/{bookId}/chapters
func (h *BookHandler) ListChapters(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	bookID := mux.Vars(r)["bookId"]

	chapters, err := h.bookSvc.ListChapters(r.Context(), authorID, bookID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"chapters": chapters})
}

// GetChapter handles GET /v1/chapters/{chapterId}
func (h *BookHandler) GetChapter(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	chapterID := mux.Vars(r)["chapterId"]

	chapter, _, err := h.bookSvc.GetChapter(r.Context(), authorID, chapterID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chapter)
}

// UpdateChapter handles PUT /v1/chapters/{chapterId}
func (h *BookHandler) UpdateChapter(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	chapterID := mux.Vars(r)["chapterId"]

	var req ChapterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	chapter := &model.Chapter{
		ID:          chapterID,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Order:       req.Order,
	}
	if err := h.bookSvc.UpdateChapter(r.Context(), authorID, chapter); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chapter)
}

// DeleteChapter handles DELETE /v1/chapters/{chapterId}
func (h *BookHandler) DeleteChapter(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	chapterID := mux.Vars(r)["chapterId"]

	if err := h.bookSvc.DeleteChapter(r.Context(), authorID, chapterID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
