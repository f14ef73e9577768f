package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"bookforge/internal/cache"
	"bookforge/internal/service"
	"bookforge/internal/transport/rest/handler"
	"bookforge/internal/transport/rest/middleware"
	"bookforge/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	BookService       *service.BookService
	QuestionService   *service.QuestionService
	FeedbackService   *service.FeedbackService
	InsightService    *service.InsightService
	AuditService      *service.AuditService
	RateLimiter       cache.RateLimiter
	RateLimit         int
	GenerateRateLimit int
	WSHub             *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	bookHandler := handler.NewBookHandler(c.BookService)
	questionHandler := handler.NewQuestionHandler(c.QuestionService)
	feedbackHandler := handler.NewFeedbackHandler(c.FeedbackService)
	insightHandler := handler.NewInsightHandler(c.InsightService, c.AuditService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)
	rateMW := middleware.NewRateLimitMiddleware(c.RateLimiter, c.RateLimit, "api")
	genRateMW := middleware.NewRateLimitMiddleware(c.RateLimiter, c.GenerateRateLimit, "generate")

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket route (public with token in query param)
	v1.HandleFunc("/ws", wsHandler.AuthorWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Author routes (require auth, rate limited)
	authorRoutes := v1.NewRoute().Subrouter()
	authorRoutes.Use(authMW.RequireAuthor)
	authorRoutes.Use(rateMW.Limit)

	// AI generation routes carry a tighter limit of their own
	genRoutes := v1.NewRoute().Subrouter()
	genRoutes.Use(authMW.RequireAuthor)
	genRoutes.Use(genRateMW.Limit)

	genRoutes.HandleFunc("/books/{bookId}/toc", bookHandler.GenerateTOC).Methods("POST", "OPTIONS")
	genRoutes.HandleFunc("/chapters/{chapterId}/questions", questionHandler.Generate).Methods("POST", "OPTIONS")
	genRoutes.HandleFunc("/chapters/{chapterId}/questions/regenerate", questionHandler.Regenerate).Methods("POST", "OPTIONS")
	genRoutes.HandleFunc("/chapters/{chapterId}/draft", questionHandler.Draft).Methods("POST", "OPTIONS")

	// Books
	authorRoutes.HandleFunc("/books", bookHandler.Create).Methods("POST", "OPTIONS")
	authorRoutes.HandleFunc("/books", bookHandler.List).Methods("GET", "OPTIONS")
	authorRoutes.HandleFunc("/books/{bookId}", bookHandler.Get).Methods("GET", "OPTIONS")
	authorRoutes.HandleFunc("/books/{bookId}", bookHandler.Update).Methods("PUT", "OPTIONS")
	authorRoutes.HandleFunc("/books/{bookId}", bookHandler.Delete).Methods("DELETE", "OPTIONS")
	authorRoutes.HandleFunc("/books/{bookId}/audit", insightHandler.AuditLog).Methods("GET", "OPTIONS")

	// Chapters
	authorRoutes.HandleFunc("/books/{bookId}/chapters", bookHandler.CreateChapter).Methods("POST", "OPTIONS")
	authorRoutes.HandleFunc("/books/{bookId}/chapters", bookHandler.ListChapters).Methods("GET", "OPTIONS")
	authorRoutes.HandleFunc("/chapters/{chapterId}", bookHandler.GetChapter).Methods("GET", "OPTIONS")
	authorRoutes.HandleFunc("/chapters/{chapterId}", bookHandler.UpdateChapter).Methods("PUT", "OPTIONS")
	authorRoutes.HandleFunc("/chapters/{chapterId}", bookHandler.DeleteChapter).Methods("DELETE", "OPTIONS")
	authorRoutes.HandleFunc("/chapters/{chapterId}/analysis", questionHandler.Analysis).Methods("GET", "OPTIONS")
	authorRoutes.HandleFunc("/chapters/{chapterId}/archive", insightHandler.Archive).Methods("POST", "OPTIONS")

	// Questions and responses
	authorRoutes.HandleFunc("/chapters/{chapterId}/questions", questionHandler.List).Methods("GET", "OPTIONS")
	authorRoutes.HandleFunc("/questions/{questionId}/responses", questionHandler.SubmitResponse).Methods("POST", "OPTIONS")

	// Feedback
	authorRoutes.HandleFunc("/questions/{questionId}/feedback", feedbackHandler.Submit).Methods("POST", "OPTIONS")
	authorRoutes.HandleFunc("/questions/{questionId}/feedback/trends", feedbackHandler.Trends).Methods("GET", "OPTIONS")
	authorRoutes.HandleFunc("/questions/{questionId}/refine", feedbackHandler.Refine).Methods("POST", "OPTIONS")

	// Insights
	authorRoutes.HandleFunc("/chapters/{chapterId}/insights/similar", insightHandler.SimilarChapters).Methods("GET", "OPTIONS")
	authorRoutes.HandleFunc("/chapters/{chapterId}/insights/patterns", insightHandler.SuccessPatterns).Methods("GET", "OPTIONS")
	authorRoutes.HandleFunc("/chapters/{chapterId}/insights/distribution", insightHandler.Distribution).Methods("GET", "OPTIONS")
	authorRoutes.HandleFunc("/questions/{questionId}/insights/prediction", insightHandler.PredictSuccess).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
