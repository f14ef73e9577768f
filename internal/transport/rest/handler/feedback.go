package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"bookforge/internal/feedback"
	"bookforge/internal/service"
	"bookforge/internal/transport/rest/middleware"
)

// FeedbackHandler handles question feedback endpoints
type FeedbackHandler struct {
	feedbackSvc *service.FeedbackService
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(feedbackSvc *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackSvc: feedbackSvc}
}

// FeedbackRequest is the request body for submitting feedback
type FeedbackRequest struct {
	Type      string `json:"feedbackType"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	UserLevel string `json:"userLevel"`
}

// Submit handles POST /v1/questions/{questionId}/feedback
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	questionID := mux.Vars(r)["questionId"]

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Rating < 0 || req.Rating > 5 {
		writeError(w, http.StatusBadRequest, "rating must be between 1 and 5 when provided")
		return
	}

	record, err := h.feedbackSvc.Submit(r.Context(), authorID, feedback.Submission{
		QuestionID: questionID,
		Type:       req.Type,
		Rating:     req.Rating,
		Comment:    req.Comment,
		UserLevel:  req.UserLevel,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// Trends handles GET /v1/questions/{questionId}/feedback/trends
func (h *FeedbackHandler) Trends(w http.ResponseWriter, r *http.Request) {
	questionID := mux.Vars(r)["questionId"]

	trend, err := h.feedbackSvc.Trends(r.Context(), questionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trend)
}

// Refine handles POST /v1/questions/{questionId}/refine
func (h *FeedbackHandler) Refine(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	questionID := mux.Vars(r)["questionId"]

	question, applied, err := h.feedbackSvc.RefineQuestion(r.Context(), authorID, questionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"question": question,
		"refined":  applied,
	})
}
