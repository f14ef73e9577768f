package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"bookforge/internal/config"
	"bookforge/internal/model"
)

// GeneratorService produces AI question candidates, tables of contents and
// chapter drafts via the OpenAI API. Candidate generation reports failures to
// the caller so the pipeline's template fallback can take over; TOC and draft
// generation degrade to deterministic mock output instead of failing.
type GeneratorService struct {
	config *config.AIConfig
	client *openai.Client
	logger *zap.Logger
}

// NewGeneratorService creates a new generator service
func NewGeneratorService(cfg *config.AIConfig, logger *zap.Logger) *GeneratorService {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &GeneratorService{
		config: cfg,
		client: openai.NewClientWithConfig(clientCfg),
		logger: logger,
	}
}

// QA pairs an answered question with the author's response text.
type QA struct {
	Question string
	Answer   string
}

// GenerateCandidates asks the model for raw interview question candidates.
// An error (or missing API key) yields an empty list; the pipeline falls back
// to its template bank, so callers should log and continue.
func (s *GeneratorService) GenerateCandidates(ctx context.Context, book *model.Book, chapter *model.Chapter, count int) ([]model.CandidateQuestion, error) {
	if !s.config.IsEnabled() {
		return nil, fmt.Errorf("ai generation disabled: no api key")
	}

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.config.Models.Questions,
			Messages: []openai.ChatCompletionMessage{
				{
					Role: openai.ChatMessageRoleSystem,
					Content: "You are a writing coach interviewing a book author about a chapter. " +
						"Generate open-ended questions that help the author develop the chapter's characters, plot, setting and themes.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: s.buildCandidatePrompt(book, chapter, count),
				},
			},
			Tools: []openai.Tool{
				{
					Type: openai.ToolTypeFunction,
					Function: &openai.FunctionDefinition{
						Name:        "submit_questions",
						Description: "Submit generated interview questions",
						Parameters: map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"questions": map[string]interface{}{
									"type": "array",
									"items": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"question_text": map[string]interface{}{
												"type":        "string",
												"description": "The question to ask the author",
											},
											"question_type": map[string]interface{}{
												"type":        "string",
												"description": "One of: character, plot, setting, theme, research, general",
											},
											"difficulty": map[string]interface{}{
												"type":        "string",
												"description": "One of: easy, medium, hard",
											},
											"help_text": map[string]interface{}{
												"type":        "string",
												"description": "Optional guidance shown with the question",
											},
										},
										"required": []string{"question_text", "question_type", "difficulty"},
									},
								},
							},
							"required": []string{"questions"},
						},
					},
				},
			},
			ToolChoice: openai.ToolChoice{
				Type: openai.ToolTypeFunction,
				Function: openai.ToolFunction{
					Name: "submit_questions",
				},
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("candidate generation: %w", err)
	}
	if len(resp.Choices) == 0 || len(resp.Choices[0].Message.ToolCalls) == 0 {
		return nil, fmt.Errorf("candidate generation: empty response")
	}

	var toolArgs struct {
		Questions []struct {
			QuestionText string `json:"question_text"`
			QuestionType string `json:"question_type"`
			Difficulty   string `json:"difficulty"`
			HelpText     string `json:"help_text"`
		} `json:"questions"`
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.ToolCalls[0].Function.Arguments), &toolArgs); err != nil {
		return nil, fmt.Errorf("candidate generation: parse tool arguments: %w", err)
	}

	candidates := make([]model.CandidateQuestion, 0, len(toolArgs.Questions))
	for _, q := range toolArgs.Questions {
		candidates = append(candidates, model.CandidateQuestion{
			QuestionText: q.QuestionText,
			QuestionType: model.QuestionType(q.QuestionType),
			Difficulty:   model.Difficulty(q.Difficulty),
			HelpText:     q.HelpText,
		})
	}
	s.logger.Debug("generated question candidates",
		zap.String("chapterId", chapter.ID),
		zap.Int("count", len(candidates)))
	return candidates, nil
}

func (s *GeneratorService) buildCandidatePrompt(book *model.Book, chapter *model.Chapter, count int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generate %d interview questions for this chapter.\n\n", count))
	sb.WriteString(fmt.Sprintf("Book: %s (genre: %s, audience: %s)\n", book.Title, book.Genre, book.TargetAudience))
	sb.WriteString(fmt.Sprintf("Chapter: %s\n", chapter.Title))
	if chapter.Description != "" {
		sb.WriteString(fmt.Sprintf("Chapter description: %s\n", chapter.Description))
	}
	if chapter.Content != "" {
		sb.WriteString("\nChapter draft so far:\n")
		sb.WriteString(truncate(chapter.Content, 6000))
		sb.WriteString("\n")
	}
	sb.WriteString("\nRequirements:\n")
	sb.WriteString("- Questions must be open-ended, never yes/no\n")
	sb.WriteString("- Mix question types across character, plot, setting and theme\n")
	sb.WriteString("- Reference concrete details from the chapter where possible\n")
	sb.WriteString("- Use the submit_questions tool to return your questions\n")
	return sb.String()
}

// GenerateTOC proposes a chapter outline for a book. Falls back to a generic
// numbered outline when the API is unavailable.
func (s *GeneratorService) GenerateTOC(ctx context.Context, book *model.Book, chapterCount int) []*model.Chapter {
	if chapterCount <= 0 {
		chapterCount = 10
	}
	if !s.config.IsEnabled() {
		return s.mockTOC(book, chapterCount)
	}

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.config.Models.TOC,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are a developmental editor outlining books chapter by chapter.",
				},
				{
					Role: openai.ChatMessageRoleUser,
					Content: fmt.Sprintf(
						"Outline %d chapters for the book %q (genre: %s, audience: %s).\nPremise: %s\nUse the submit_toc tool.",
						chapterCount, book.Title, book.Genre, book.TargetAudience, book.Description),
				},
			},
			Tools: []openai.Tool{
				{
					Type: openai.ToolTypeFunction,
					Function: &openai.FunctionDefinition{
						Name:        "submit_toc",
						Description: "Submit the proposed table of contents",
						Parameters: map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"chapters": map[string]interface{}{
									"type": "array",
									"items": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"title":       map[string]interface{}{"type": "string"},
											"description": map[string]interface{}{"type": "string"},
										},
										"required": []string{"title", "description"},
									},
								},
							},
							"required": []string{"chapters"},
						},
					},
				},
			},
			ToolChoice: openai.ToolChoice{
				Type:     openai.ToolTypeFunction,
				Function: openai.ToolFunction{Name: "submit_toc"},
			},
		},
	)
	if err != nil || len(resp.Choices) == 0 || len(resp.Choices[0].Message.ToolCalls) == 0 {
		s.logger.Warn("toc generation failed, using mock outline", zap.Error(err))
		return s.mockTOC(book, chapterCount)
	}

	var toolArgs struct {
		Chapters []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"chapters"`
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.ToolCalls[0].Function.Arguments), &toolArgs); err != nil || len(toolArgs.Chapters) == 0 {
		s.logger.Warn("toc generation unparsable, using mock outline", zap.Error(err))
		return s.mockTOC(book, chapterCount)
	}

	chapters := make([]*model.Chapter, 0, len(toolArgs.Chapters))
	for i, c := range toolArgs.Chapters {
		chapters = append(chapters, &model.Chapter{
			BookID:      book.ID,
			Title:       c.Title,
			Description: c.Description,
			Status:      model.ChapterStatusOutline,
			Order:       i,
		})
	}
	return chapters
}

func (s *GeneratorService) mockTOC(book *model.Book, chapterCount int) []*model.Chapter {
	chapters := make([]*model.Chapter, 0, chapterCount)
	for i := 0; i < chapterCount; i++ {
		chapters = append(chapters, &model.Chapter{
			BookID:      book.ID,
			Title:       fmt.Sprintf("Chapter %d", i+1),
			Description: "Outline this chapter by answering its interview questions.",
			Status:      model.ChapterStatusOutline,
			Order:       i,
		})
	}
	return chapters
}

// GenerateDraft writes a chapter draft from the author's interview answers.
// Falls back to a structured assembly of the answers when the API is
// unavailable.
func (s *GeneratorService) GenerateDraft(ctx context.Context, book *model.Book, chapter *model.Chapter, answers []QA) string {
	if !s.config.IsEnabled() || len(answers) == 0 {
		return s.mockDraft(chapter, answers)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Write a draft of the chapter %q for the book %q (genre: %s).\n", chapter.Title, book.Title, book.Genre))
	if chapter.Description != "" {
		sb.WriteString("Chapter premise: " + chapter.Description + "\n")
	}
	sb.WriteString("\nThe author answered these interview questions:\n")
	for _, qa := range answers {
		sb.WriteString("Q: " + qa.Question + "\n")
		sb.WriteString("A: " + qa.Answer + "\n\n")
	}
	sb.WriteString("Write flowing prose grounded in the answers. Do not invent facts the author contradicted.")

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.config.Models.Draft,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are a ghostwriter drafting book chapters from author interviews.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: sb.String(),
				},
			},
		},
	)
	if err != nil || len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		s.logger.Warn("draft generation failed, using mock draft",
			zap.String("chapterId", chapter.ID), zap.Error(err))
		return s.mockDraft(chapter, answers)
	}
	return resp.Choices[0].Message.Content
}

func (s *GeneratorService) mockDraft(chapter *model.Chapter, answers []QA) string {
	var sb strings.Builder
	sb.WriteString("# " + chapter.Title + "\n\n")
	if chapter.Description != "" {
		sb.WriteString(chapter.Description + "\n\n")
	}
	for _, qa := range answers {
		sb.WriteString(qa.Answer + "\n\n")
	}
	return strings.TrimSpace(sb.String())
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
