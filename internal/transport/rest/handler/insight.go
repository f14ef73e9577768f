package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"bookforge/internal/service"
	"bookforge/internal/transport/rest/middleware"
)

// InsightHandler handles historical trend endpoints
type InsightHandler struct {
	insightSvc *service.InsightService
	auditSvc   *service.AuditService
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(insightSvc *service.InsightService, auditSvc *service.AuditService) *InsightHandler {
	return &InsightHandler{insightSvc: insightSvc, auditSvc: auditSvc}
}

// SimilarChapters handles GET /v1/chapters/{chapterId}/insights/similar
func (h *InsightHandler) SimilarChapters(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	chapterID := mux.Vars(r)["chapterId"]

	matches, err := h.insightSvc.SimilarChapters(r.Context(), authorID, chapterID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"matches": matches})
}

// SuccessPatterns handles GET /v1/chapters/{chapterId}/insights/patterns
func (h *InsightHandler) SuccessPatterns(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	chapterID := mux.Vars(r)["chapterId"]

	pattern, err := h.insightSvc.SuccessPatterns(r.Context(), authorID, chapterID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pattern)
}

// Distribution handles GET /v1/chapters/{chapterId}/insights/distribution
func (h *InsightHandler) Distribution(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	chapterID := mux.Vars(r)["chapterId"]

	report, err := h.insightSvc.Distribution(r.Context(), authorID, chapterID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// PredictSuccess handles GET /v1/questions/{questionId}/insights/prediction
func (h *InsightHandler) PredictSuccess(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	questionID := mux.Vars(r)["questionId"]

	prediction, err := h.insightSvc.PredictSuccess(r.Context(), authorID, questionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prediction)
}

// Archive handles POST /v1/chapters/{chapterId}/archive
func (h *InsightHandler) Archive(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	chapterID := mux.Vars(r)["chapterId"]

	record, err := h.insightSvc.ArchiveChapter(r.Context(), authorID, chapterID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// AuditLog handles GET /v1/books/{bookId}/audit
func (h *InsightHandler) AuditLog(w http.ResponseWriter, r *http.Request) {
	bookID := mux.Vars(r)["bookId"]

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	entries, err := h.auditSvc.Recent(r.Context(), bookID, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}
