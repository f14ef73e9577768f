package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"bookforge/internal/adapt"
	"bookforge/internal/cache"
	"bookforge/internal/model"
	"bookforge/internal/pipeline"
	"bookforge/internal/repository"
	"bookforge/internal/textutil"
)

var ErrQuestionNotFound = errors.New("question not found")

// profileHistoryLimit caps how many recent responses feed progression analysis.
const profileHistoryLimit = 50

// QuestionService runs the interview flow: generating, regenerating and
// answering questions, and drafting chapters from the answers.
type QuestionService struct {
	books     *BookService
	questions repository.QuestionRepo
	responses repository.ResponseRepo
	analyses  cache.AnalysisCache
	profiles  cache.ProfileCache
	generator *GeneratorService
	pipeline  *pipeline.Pipeline
	adapter   *adapt.LevelAdapter
	audit     *AuditService
	ws        Broadcaster
	logger    *zap.Logger
}

// NewQuestionService creates a new question service
func NewQuestionService(
	books *BookService,
	questions repository.QuestionRepo,
	responses repository.ResponseRepo,
	analyses cache.AnalysisCache,
	profiles cache.ProfileCache,
	generator *GeneratorService,
	pipe *pipeline.Pipeline,
	audit *AuditService,
	ws Broadcaster,
	logger *zap.Logger,
) *QuestionService {
	return &QuestionService{
		books:     books,
		questions: questions,
		responses: responses,
		analyses:  analyses,
		profiles:  profiles,
		generator: generator,
		pipeline:  pipe,
		adapter:   adapt.NewLevelAdapter(),
		audit:     audit,
		ws:        ws,
		logger:    logger,
	}
}

// GenerateQuestions produces and persists a fresh question set for a chapter,
// replacing any unanswered questions already there. AI failures degrade to the
// template fallback; the call only fails on storage errors.
func (s *QuestionService) GenerateQuestions(ctx context.Context, authorID, chapterID string, count int) ([]*model.Question, error) {
	chapter, book, err := s.books.GetChapter(ctx, authorID, chapterID)
	if err != nil {
		return nil, err
	}

	s.broadcast(authorID, "generation_started", map[string]interface{}{
		"chapterId": chapterID,
	})

	profile := s.resolveProfile(ctx, authorID)

	candidates, err := s.generator.GenerateCandidates(ctx, book, chapter, count)
	if err != nil {
		s.logger.Warn("ai candidate generation failed, pipeline will use templates",
			zap.String("chapterId", chapterID),
			zap.Error(err))
	}

	chapterCtx := model.ChapterContext{
		Title:   chapter.Title,
		Content: chapter.Content,
		Genre:   book.Genre,
	}
	result := s.pipeline.Generate(pipeline.Request{
		Chapter:        chapterCtx,
		Candidates:     candidates,
		Profile:        profile,
		RequestedCount: count,
	})
	s.cacheAnalysis(ctx, chapterID, chapter.Content, result.Analysis)

	// Unanswered leftovers from a previous run would double up with the new
	// set; answered questions stay.
	if err := s.dropUnanswered(ctx, chapterID); err != nil {
		return nil, err
	}

	persisted, err := s.persistQuestions(ctx, book.ID, chapterID, result.Questions, 0)
	if err != nil {
		return nil, err
	}

	if chapter.Status == model.ChapterStatusOutline {
		if err := s.books.chapters.UpdateStatus(ctx, chapterID, model.ChapterStatusInterviewing); err != nil {
			s.logger.Warn("chapter status update failed", zap.String("chapterId", chapterID), zap.Error(err))
		}
	}

	s.audit.Record(ctx, authorID, "questions.generate", book.ID, chapterID, map[string]interface{}{
		"count":        len(persisted),
		"usedFallback": result.UsedFallback,
		"writingLevel": string(profile.WritingLevel),
	})
	s.broadcast(authorID, "generation_complete", map[string]interface{}{
		"chapterId":    chapterID,
		"count":        len(persisted),
		"usedFallback": result.UsedFallback,
	})
	return persisted, nil
}

// RegenerateQuestions replaces the chapter's unanswered questions with new
// ones, preserving everything already answered.
func (s *QuestionService) RegenerateQuestions(ctx context.Context, authorID, chapterID string) ([]*model.Question, error) {
	chapter, book, err := s.books.GetChapter(ctx, authorID, chapterID)
	if err != nil {
		return nil, err
	}

	existing, err := s.questions.GetByChapter(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	existingVals := make([]model.Question, 0, len(existing))
	for _, q := range existing {
		existingVals = append(existingVals, *q)
	}

	profile := s.resolveProfile(ctx, authorID)

	candidates, err := s.generator.GenerateCandidates(ctx, book, chapter, len(existing))
	if err != nil {
		s.logger.Warn("ai candidate generation failed, pipeline will use templates",
			zap.String("chapterId", chapterID),
			zap.Error(err))
	}

	result := s.pipeline.Regenerate(existingVals, pipeline.Request{
		Chapter: model.ChapterContext{
			Title:   chapter.Title,
			Content: chapter.Content,
			Genre:   book.Genre,
		},
		Candidates: candidates,
		Profile:    profile,
	})

	removedIDs := make([]string, 0, len(result.Removed))
	for _, q := range result.Removed {
		removedIDs = append(removedIDs, q.ID)
	}
	if err := s.questions.DeleteMany(ctx, removedIDs); err != nil {
		return nil, err
	}

	if _, err := s.persistQuestions(ctx, book.ID, chapterID, result.Questions, len(result.Preserved)); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, authorID, "questions.regenerate", book.ID, chapterID, map[string]interface{}{
		"preserved":    result.PreservedCount,
		"replaced":     len(removedIDs),
		"new":          result.NewCount,
		"usedFallback": result.UsedFallback,
	})
	s.broadcast(authorID, "questions_regenerated", map[string]interface{}{
		"chapterId": chapterID,
		"preserved": result.PreservedCount,
		"new":       result.NewCount,
	})
	return s.questions.GetByChapter(ctx, chapterID)
}

// GetQuestions returns a chapter's questions in order
func (s *QuestionService) GetQuestions(ctx context.Context, authorID, chapterID string) ([]*model.Question, error) {
	if _, _, err := s.books.GetChapter(ctx, authorID, chapterID); err != nil {
		return nil, err
	}
	return s.questions.GetByChapter(ctx, chapterID)
}

// GetChapterAnalysis returns the cached content analysis for a chapter,
// computing and caching it on a miss.
func (s *QuestionService) GetChapterAnalysis(ctx context.Context, authorID, chapterID string) (*model.ContentAnalysis, error) {
	chapter, book, err := s.books.GetChapter(ctx, authorID, chapterID)
	if err != nil {
		return nil, err
	}

	cached, err := s.analyses.Get(ctx, chapterID, chapter.Content)
	if err != nil {
		s.logger.Warn("analysis cache read failed", zap.String("chapterId", chapterID), zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	ca := s.pipeline.Analyze(model.ChapterContext{
		Title:   chapter.Title,
		Content: chapter.Content,
		Genre:   book.Genre,
	})
	s.cacheAnalysis(ctx, chapterID, chapter.Content, ca)
	return &ca, nil
}

// SubmitResponse stores an author's answer, marks the question answered and
// invalidates the cached writing profile so progression re-evaluates.
func (s *QuestionService) SubmitResponse(ctx context.Context, authorID, questionID, text string) (*model.Response, error) {
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

	response := &model.Response{
		QuestionID: questionID,
		ChapterID:  question.ChapterID,
		AuthorID:   authorID,
		Text:       text,
		Difficulty: question.Scored.Difficulty,
		Quality:    responseQuality(text),
	}
	if err := s.responses.Create(ctx, response); err != nil {
		return nil, err
	}
	if err := s.questions.MarkAnswered(ctx, questionID); err != nil {
		return nil, err
	}
	if err := s.profiles.Delete(ctx, authorID); err != nil {
		s.logger.Warn("profile cache invalidation failed", zap.String("authorId", authorID), zap.Error(err))
	}

	s.audit.Record(ctx, authorID, "response.submit", question.BookID, question.ChapterID, map[string]interface{}{
		"questionId": questionID,
	})
	return response, nil
}

// DraftChapter assembles the chapter's answered questions into a draft and
// stores it on the chapter.
func (s *QuestionService) DraftChapter(ctx context.Context, authorID, chapterID string) (*model.Chapter, error) {
	chapter, book, err := s.books.GetChapter(ctx, authorID, chapterID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questions.GetByChapter(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	var answers []QA
	for _, q := range questions {
		if !q.Answered {
			continue
		}
		responses, err := s.responses.GetByQuestion(ctx, q.ID)
		if err != nil {
			return nil, err
		}
		if len(responses) == 0 {
			continue
		}
		// Latest response wins if the author answered more than once.
		answers = append(answers, QA{
			Question: q.Scored.QuestionText,
			Answer:   responses[len(responses)-1].Text,
		})
	}

	chapter.Content = s.generator.GenerateDraft(ctx, book, chapter, answers)
	chapter.Status = model.ChapterStatusDrafted
	if err := s.books.chapters.Update(ctx, chapter); err != nil {
		return nil, err
	}
	if err := s.analyses.Invalidate(ctx, chapterID); err != nil {
		s.logger.Warn("analysis cache invalidation failed", zap.String("chapterId", chapterID), zap.Error(err))
	}

	s.audit.Record(ctx, authorID, "chapter.draft", book.ID, chapterID, map[string]interface{}{
		"answersUsed": len(answers),
	})
	s.broadcast(authorID, "draft_complete", map[string]interface{}{
		"chapterId": chapterID,
	})
	return chapter, nil
}

// resolveProfile returns the cached writing profile or infers one from the
// author's recent responses. Cache failures fall through to inference.
func (s *QuestionService) resolveProfile(ctx context.Context, authorID string) model.UserWritingProfile {
	cached, err := s.profiles.Get(ctx, authorID)
	if err != nil {
		s.logger.Warn("profile cache read failed", zap.String("authorId", authorID), zap.Error(err))
	}
	if cached != nil {
		return *cached
	}

	history, err := s.responses.GetByAuthor(ctx, authorID, profileHistoryLimit)
	if err != nil {
		s.logger.Warn("response history read failed", zap.String("authorId", authorID), zap.Error(err))
	}
	vals := make([]model.Response, 0, len(history))
	for _, r := range history {
		vals = append(vals, *r)
	}

	profile := model.UserWritingProfile{
		WritingLevel: s.adapter.AnalyzeUserProgression(vals),
		Guidance:     model.GuidanceStandard,
	}
	if err := s.profiles.Set(ctx, authorID, &profile); err != nil {
		s.logger.Warn("profile cache write failed", zap.String("authorId", authorID), zap.Error(err))
	}
	return profile
}

func (s *QuestionService) persistQuestions(ctx context.Context, bookID, chapterID string, scored []model.ScoredQuestion, orderOffset int) ([]*model.Question, error) {
	docs := make([]*model.Question, 0, len(scored))
	for i, q := range scored {
		docs = append(docs, &model.Question{
			BookID:    bookID,
			ChapterID: chapterID,
			Scored:    q,
			Metadata:  pipeline.BuildMetadata(q),
			Order:     orderOffset + i,
		})
	}
	if err := s.questions.CreateMany(ctx, docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *QuestionService) dropUnanswered(ctx context.Context, chapterID string) error {
	unanswered, err := s.questions.GetUnanswered(ctx, chapterID)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(unanswered))
	for _, q := range unanswered {
		ids = append(ids, q.ID)
	}
	return s.questions.DeleteMany(ctx, ids)
}

func (s *QuestionService) cacheAnalysis(ctx context.Context, chapterID, content string, ca model.ContentAnalysis) {
	if err := s.analyses.Set(ctx, chapterID, content, &ca); err != nil {
		s.logger.Warn("analysis cache write failed", zap.String("chapterId", chapterID), zap.Error(err))
	}
}

func (s *QuestionService) broadcast(authorID, msgType string, payload interface{}) {
	if s.ws == nil {
		return
	}
	s.ws.BroadcastToAuthor(authorID, msgType, payload)
}

// responseQuality scores an answer on length and vocabulary spread. Crude, but
// it only feeds progression analysis, which buckets coarsely anyway.
func responseQuality(text string) float64 {
	words := textutil.Tokenize(text)
	if len(words) == 0 {
		return 0
	}
	lengthScore := float64(len(words)) / 150.0
	if lengthScore > 1 {
		lengthScore = 1
	}
	meaningful := textutil.MeaningfulWords(text)
	unique := make(map[string]bool, len(meaningful))
	for _, w := range meaningful {
		unique[w] = true
	}
	varietyScore := 0.0
	if len(words) > 0 {
		varietyScore = float64(len(unique)) / float64(len(words))
		if varietyScore > 1 {
			varietyScore = 1
		}
	}
	return 0.6*lengthScore + 0.4*varietyScore
}
