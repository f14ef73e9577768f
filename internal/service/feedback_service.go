package service

import (
	"context"

	"go.uber.org/zap"

	"bookforge/internal/cache"
	"bookforge/internal/feedback"
	"bookforge/internal/model"
	"bookforge/internal/repository"
)

// FeedbackService records question feedback, aggregates it into trends and
// applies trend-driven refinements back onto stored questions.
type FeedbackService struct {
	analyzer  *feedback.Analyzer
	repo      repository.FeedbackRepo
	questions repository.QuestionRepo
	trends    cache.TrendCache
	audit     *AuditService
	logger    *zap.Logger
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(
	repo repository.FeedbackRepo,
	questions repository.QuestionRepo,
	trends cache.TrendCache,
	audit *AuditService,
	logger *zap.Logger,
) *FeedbackService {
	return &FeedbackService{
		analyzer:  feedback.NewAnalyzer(),
		repo:      repo,
		questions: questions,
		trends:    trends,
		audit:     audit,
		logger:    logger,
	}
}

// Submit processes and stores one feedback record, invalidating the cached
// trend for the question.
func (s *FeedbackService) Submit(ctx context.Context, authorID string, sub feedback.Submission) (*model.FeedbackRecord, error) {
	question, err := s.questions.GetByID(ctx, sub.QuestionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}

	record := s.analyzer.Process(sub)
	if err := s.repo.Create(ctx, &record); err != nil {
		return nil, err
	}
	if err := s.trends.Invalidate(ctx, sub.QuestionID); err != nil {
		s.logger.Warn("trend cache invalidation failed",
			zap.String("questionId", sub.QuestionID), zap.Error(err))
	}

	s.audit.Record(ctx, authorID, "feedback.submit", question.BookID, question.ChapterID, map[string]interface{}{
		"questionId":   sub.QuestionID,
		"feedbackType": string(record.Type),
	})
	return &record, nil
}

// Trends returns the aggregated trend analysis for a question, cached for a
// short window.
func (s *FeedbackService) Trends(ctx context.Context, questionID string) (*model.TrendAnalysis, error) {
	cached, err := s.trends.Get(ctx, questionID)
	if err != nil {
		s.logger.Warn("trend cache read failed", zap.String("questionId", questionID), zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	records, err := s.repo.GetByQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}
	trend, err := s.analyzer.AnalyzeTrends(questionID, records)
	if err != nil {
		return nil, err
	}
	if err := s.trends.Set(ctx, questionID, &trend); err != nil {
		s.logger.Warn("trend cache write failed", zap.String("questionId", questionID), zap.Error(err))
	}
	return &trend, nil
}

// RefineQuestion rewrites a stored question according to its feedback trend.
// Returns the question and whether a refinement was actually applied; with
// too little feedback the question comes back untouched.
func (s *FeedbackService) RefineQuestion(ctx context.Context, authorID, questionID string) (*model.Question, bool, error) {
	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return nil, false, err
	}
	if question == nil {
		return nil, false, ErrQuestionNotFound
	}

	trend, err := s.Trends(ctx, questionID)
	if err != nil {
		return nil, false, err
	}
	if !hasTransformAction(trend.Actions) {
		return question, false, nil
	}

	question.Scored.CandidateQuestion = s.analyzer.Refine(question.Scored.CandidateQuestion, *trend)
	question.Metadata.HelpText = question.Scored.HelpText
	question.Metadata.Examples = question.Scored.Examples
	if err := s.questions.Update(ctx, question); err != nil {
		return nil, false, err
	}

	s.audit.Record(ctx, authorID, "question.refine", question.BookID, question.ChapterID, map[string]interface{}{
		"questionId": questionID,
		"actions":    actionStrings(trend.Actions),
		"confidence": trend.Confidence,
	})
	return question, true, nil
}

// hasTransformAction reports whether the trend recommends anything that
// changes the question text or metadata.
func hasTransformAction(actions []model.RefinementAction) bool {
	for _, a := range actions {
		switch a {
		case model.ActionDecreaseDifficulty,
			model.ActionIncreaseDifficulty,
			model.ActionAddClarity,
			model.ActionImproveRelevance,
			model.ActionAddExamples:
			return true
		}
	}
	return false
}

func actionStrings(actions []model.RefinementAction) []string {
	out := make([]string, 0, len(actions))
	for _, a := range actions {
		out = append(out, string(a))
	}
	return out
}
