// Package pipeline orchestrates question generation: content analysis,
// quality and relevance scoring, diversity filtering and level adaptation,
// with a static template fallback when the AI candidate source produces
// nothing usable. Every step is a pure function of its inputs; the pipeline
// holds no mutable state and is safe to share across requests.
package pipeline

import (
	"sort"

	"bookforge/internal/adapt"
	"bookforge/internal/analysis"
	"bookforge/internal/history"
	"bookforge/internal/model"
	"bookforge/internal/scoring"
)

// Pipeline composes the scoring core. The history service is optional; when
// present it re-sequences questions before level adaptation.
type Pipeline struct {
	analyzer  *analysis.Analyzer
	quality   *scoring.QualityScorer
	relevance *scoring.RelevanceScorer
	diversity *scoring.DiversityFilter
	adapter   *adapt.LevelAdapter
	history   *history.Service

	defaultCount int
}

// New builds a pipeline from the given configs.
func New(analysisCfg analysis.Config, scoringCfg scoring.Config) *Pipeline {
	return &Pipeline{
		analyzer:     analysis.NewAnalyzer(analysisCfg),
		quality:      scoring.NewQualityScorer(scoringCfg),
		relevance:    scoring.NewRelevanceScorer(scoringCfg),
		diversity:    scoring.NewDiversityFilter(scoringCfg),
		adapter:      adapt.NewLevelAdapter(),
		defaultCount: 8,
	}
}

// WithHistory attaches a historical trend service used for sequencing.
func (p *Pipeline) WithHistory(h *history.Service) *Pipeline {
	p.history = h
	return p
}

// Analyze runs content analysis alone, for callers that want the chapter
// breakdown without generating questions.
func (p *Pipeline) Analyze(chapter model.ChapterContext) model.ContentAnalysis {
	return p.analyzer.Analyze(chapter.Content, chapter.Title)
}

// Request carries one generation call's inputs. Candidates may be empty when
// the upstream AI source failed; the pipeline then falls back to templates.
type Request struct {
	Chapter        model.ChapterContext
	Candidates     []model.CandidateQuestion
	Profile        model.UserWritingProfile
	RequestedCount int
	MaxPerType     int
	MinQuality     float64
}

// Result is the ordered, adapted question set plus the chapter analysis that
// produced it.
type Result struct {
	Questions    []model.ScoredQuestion
	Analysis     model.ContentAnalysis
	UsedFallback bool
}

// Generate runs the full analyze, score, filter, adapt flow. It never fails:
// insufficient content yields neutral relevance, and an empty candidate list
// is replaced by the template bank so at least min(3, requested) questions
// come back.
func (p *Pipeline) Generate(req Request) Result {
	count := req.RequestedCount
	if count <= 0 {
		count = p.defaultCount
	}

	ca := p.analyzer.Analyze(req.Chapter.Content, req.Chapter.Title)

	candidates := normalizeCandidates(req.Candidates)
	usedFallback := false
	if len(candidates) == 0 {
		candidates = FallbackCandidates(count)
		usedFallback = true
	}

	scored := p.scoreAll(candidates, req.Chapter, ca)
	if req.MinQuality > 0 {
		kept := scored[:0]
		for _, q := range scored {
			if q.QualityScore >= req.MinQuality {
				kept = append(kept, q)
			}
		}
		scored = kept
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return combinedScore(scored[i]) > combinedScore(scored[j])
	})
	scored = p.diversity.EnsureDiversity(scored, req.MaxPerType, 0)
	if len(scored) > count {
		scored = scored[:count]
	}

	if min := minUsable(count); len(scored) < min {
		scored = p.topUp(scored, req.Chapter, ca, min)
		usedFallback = true
	}

	if p.history != nil {
		scored = p.history.OptimizeQuestionSequence(scored)
	}
	scored = p.adapter.Adapt(scored, req.Profile)

	return Result{Questions: scored, Analysis: ca, UsedFallback: usedFallback}
}

// RegenerationResult reports a regeneration run: answered questions are kept,
// unanswered ones are replaced.
type RegenerationResult struct {
	Preserved []model.Question
	Removed   []model.Question
	Questions []model.ScoredQuestion
	Analysis  model.ContentAnalysis

	PreservedCount int
	NewCount       int
	Total          int
	UsedFallback   bool
}

// Regenerate partitions existing questions by answered state and generates
// exactly enough replacements for the unanswered ones. Answered questions are
// never touched.
func (p *Pipeline) Regenerate(existing []model.Question, req Request) RegenerationResult {
	var preserved, removed []model.Question
	for _, q := range existing {
		if q.Answered {
			preserved = append(preserved, q)
		} else {
			removed = append(removed, q)
		}
	}

	out := RegenerationResult{
		Preserved:      preserved,
		Removed:        removed,
		PreservedCount: len(preserved),
	}
	if len(removed) > 0 {
		req.RequestedCount = len(removed)
		res := p.Generate(req)
		out.Questions = res.Questions
		out.Analysis = res.Analysis
		out.UsedFallback = res.UsedFallback
	}
	out.NewCount = len(out.Questions)
	out.Total = out.PreservedCount + out.NewCount
	return out
}

func (p *Pipeline) scoreAll(candidates []model.CandidateQuestion, chapter model.ChapterContext, ca model.ContentAnalysis) []model.ScoredQuestion {
	scored := make([]model.ScoredQuestion, 0, len(candidates))
	for _, c := range candidates {
		rel := p.relevance.Score(c, ca)
		scored = append(scored, model.ScoredQuestion{
			CandidateQuestion: c,
			QualityScore:      p.quality.Score(c, chapter),
			Relevance:         &rel,
		})
	}
	return scored
}

// topUp appends unused template questions until the set reaches min.
func (p *Pipeline) topUp(scored []model.ScoredQuestion, chapter model.ChapterContext, ca model.ContentAnalysis, min int) []model.ScoredQuestion {
	seen := make(map[string]bool, len(scored))
	for _, q := range scored {
		seen[q.QuestionText] = true
	}
	for _, c := range FallbackCandidates(25) {
		if len(scored) >= min {
			break
		}
		if seen[c.QuestionText] {
			continue
		}
		seen[c.QuestionText] = true
		rel := p.relevance.Score(c, ca)
		scored = append(scored, model.ScoredQuestion{
			CandidateQuestion: c,
			QualityScore:      p.quality.Score(c, chapter),
			Relevance:         &rel,
		})
	}
	return scored
}

func normalizeCandidates(in []model.CandidateQuestion) []model.CandidateQuestion {
	out := make([]model.CandidateQuestion, 0, len(in))
	for _, c := range in {
		if c.QuestionText == "" {
			continue
		}
		c.QuestionType = model.NormalizeQuestionType(string(c.QuestionType))
		c.Difficulty = model.NormalizeDifficulty(string(c.Difficulty))
		out = append(out, c)
	}
	return out
}

func combinedScore(q model.ScoredQuestion) float64 {
	rel := 0.5
	if q.Relevance != nil {
		rel = q.Relevance.RelevanceScore
	}
	return 0.5*q.QualityScore + 0.5*rel
}

func minUsable(count int) int {
	if count < 3 {
		return count
	}
	return 3
}

// BuildMetadata derives the persistence metadata for a finished question.
func BuildMetadata(q model.ScoredQuestion) model.QuestionMetadata {
	return model.QuestionMetadata{
		SuggestedResponseLength: suggestedLength(q.Difficulty),
		HelpText:                q.HelpText,
		Examples:                q.Examples,
	}
}

func suggestedLength(d model.Difficulty) string {
	switch d {
	case model.DifficultyEasy:
		return "2-3 sentences"
	case model.DifficultyHard:
		return "2-3 paragraphs"
	default:
		return "1-2 paragraphs"
	}
}
