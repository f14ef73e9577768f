package service

import (
	"context"

	"go.uber.org/zap"

	"bookforge/internal/history"
	"bookforge/internal/model"
	"bookforge/internal/repository"
)

// InsightService answers historical-trend queries: similar chapters, success
// patterns, per-question predictions and distribution reports. Completed
// chapters are archived into the corpus these queries run against.
type InsightService struct {
	books     *BookService
	questions repository.QuestionRepo
	responses repository.ResponseRepo
	corpus    repository.HistoryRepo
	trends    *history.Service
	audit     *AuditService
	logger    *zap.Logger
}

// NewInsightService creates a new insight service
func NewInsightService(
	books *BookService,
	questions repository.QuestionRepo,
	responses repository.ResponseRepo,
	corpus repository.HistoryRepo,
	trends *history.Service,
	audit *AuditService,
	logger *zap.Logger,
) *InsightService {
	return &InsightService{
		books:     books,
		questions: questions,
		responses: responses,
		corpus:    corpus,
		trends:    trends,
		audit:     audit,
		logger:    logger,
	}
}

// SimilarChapters finds corpus chapters resembling the given one
func (s *InsightService) SimilarChapters(ctx context.Context, authorID, chapterID string) ([]model.ChapterMatch, error) {
	chapter, book, err := s.books.GetChapter(ctx, authorID, chapterID)
	if err != nil {
		return nil, err
	}
	records, err := s.corpus.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.trends.FindSimilarChapters(model.ChapterContext{
		Title:   chapter.Title,
		Content: chapter.Content,
		Genre:   book.Genre,
	}, records), nil
}

// SuccessPatterns summarizes what worked in chapters similar to this one
func (s *InsightService) SuccessPatterns(ctx context.Context, authorID, chapterID string) (*model.SuccessPattern, error) {
	matches, err := s.SimilarChapters(ctx, authorID, chapterID)
	if err != nil {
		return nil, err
	}
	pattern := s.trends.ExtractSuccessfulPatterns(matches)
	return &pattern, nil
}

// PredictSuccess estimates how well a stored question will perform based on
// similar historical questions.
func (s *InsightService) PredictSuccess(ctx context.Context, authorID, questionID string) (*model.SuccessPrediction, error) {
	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}
	if _, _, err := s.books.GetChapter(ctx, authorID, question.ChapterID); err != nil {
		return nil, err
	}

	records, err := s.corpus.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	prediction := s.trends.PredictQuestionSuccess(question.Scored.CandidateQuestion, records)
	return &prediction, nil
}

// Distribution reports the type spread and quality stats of a chapter's
// current question set.
func (s *InsightService) Distribution(ctx context.Context, authorID, chapterID string) (*model.DistributionReport, error) {
	if _, _, err := s.books.GetChapter(ctx, authorID, chapterID); err != nil {
		return nil, err
	}
	questions, err := s.questions.GetByChapter(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	scored := make([]model.ScoredQuestion, 0, len(questions))
	for _, q := range questions {
		scored = append(scored, q.Scored)
	}
	report := s.trends.AnalyzeDistribution(scored)
	return &report, nil
}

// ArchiveChapter snapshots a finished chapter and its question outcomes into
// the historical corpus and marks the chapter final.
func (s *InsightService) ArchiveChapter(ctx context.Context, authorID, chapterID string) (*model.HistoricalChapterRecord, error) {
	chapter, book, err := s.books.GetChapter(ctx, authorID, chapterID)
	if err != nil {
		return nil, err
	}
	questions, err := s.questions.GetByChapter(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	record := &model.HistoricalChapterRecord{
		Genre:   book.Genre,
		Title:   chapter.Title,
		Content: chapter.Content,
	}
	answered := 0
	ratingSum := 0.0
	for _, q := range questions {
		completion := 0.0
		rating := 0.0
		if q.Answered {
			answered++
			completion = 1.0
			if responses, err := s.responses.GetByQuestion(ctx, q.ID); err == nil && len(responses) > 0 {
				// Response quality is 0-1; express it on the 1-5 rating scale.
				rating = 1.0 + responses[len(responses)-1].Quality*4.0
			}
		}
		ratingSum += rating
		record.Questions = append(record.Questions, model.HistoricalQuestion{
			CandidateQuestion: q.Scored.CandidateQuestion,
			Metrics: model.QuestionMetrics{
				AvgRating:      rating,
				CompletionRate: completion,
				QualityScore:   q.Scored.QualityScore,
			},
		})
	}
	if len(questions) > 0 {
		record.CompletionRate = float64(answered) / float64(len(questions))
		record.AvgRating = ratingSum / float64(len(questions))
	}

	if err := s.corpus.Insert(ctx, record); err != nil {
		return nil, err
	}
	if err := s.books.chapters.UpdateStatus(ctx, chapterID, model.ChapterStatusFinal); err != nil {
		s.logger.Warn("chapter status update failed", zap.String("chapterId", chapterID), zap.Error(err))
	}

	s.audit.Record(ctx, authorID, "chapter.archive", book.ID, chapterID, map[string]interface{}{
		"questionCount":  len(record.Questions),
		"completionRate": record.CompletionRate,
	})
	return record, nil
}
