package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"bookforge/internal/service"
	"bookforge/internal/transport/rest/middleware"
)

// QuestionHandler handles question and response endpoints
type QuestionHandler struct {
	questionSvc *service.QuestionService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionSvc *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionSvc: questionSvc}
}

// GenerateRequest is the request body for question generation
type GenerateRequest struct {
	Count int `json:"count"`
}

// ResponseRequest is the request body for submitting an answer
type ResponseRequest struct {
	Text string `json:"text"`
}

// Generate handles POST /v1/chapters/{chapterId}/questions
func (h *QuestionHandler) Generate(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	chapterID := mux.Vars(r)["chapterId"]

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	questions, err := h.questionSvc.GenerateQuestions(r.Context(), authorID, chapterID, req.Count)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"questions": questions})
}

// Regenerate handles POST /v1/chapters/{chapterId}/questions/regenerate
func (h *QuestionHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	chapterID := mux.Vars(r)["chapterId"]

	questions, err := h.questionSvc.RegenerateQuestions(r.Context(), authorID, chapterID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}

// List handles GET /v1/chapters/{chapterId}/questions
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	chapterID := mux.Vars(r)["chapterId"]

	questions, err := h.questionSvc.GetQuestions(r.Context(), authorID, chapterID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}

// Analysis handles GET /v1/chapters/{chapterId}/analysis
func (h *QuestionHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	chapterID := mux.Vars(r)["chapterId"]

	analysis, err := h.questionSvc.GetChapterAnalysis(r.Context(), authorID, chapterID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// SubmitResponse handles POST /v1/questions/{questionId}/responses
func (h *QuestionHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	questionID := mux.Vars(r)["questionId"]

	var req ResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	response, err := h.questionSvc.SubmitResponse(r.Context(), authorID, questionID, req.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, response)
}

// Draft handles POST /v1/chapters/{chapterId}/draft
func (h *QuestionHandler) Draft(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	chapterID := mux.Vars(r)["chapterId"]

	chapter, err := h.questionSvc.DraftChapter(r.Context(), authorID, chapterID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chapter)
}
