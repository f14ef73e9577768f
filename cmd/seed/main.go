package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookforge/internal/config"
	"bookforge/internal/model"
	"bookforge/internal/repository"
	"bookforge/internal/service"
)

// Seeds a demo book and the historical chapter corpus the insight endpoints
// query against. Safe to re-run: it skips each part that already has data.
func main() {
	_ = godotenv.Load()

	cfg := config.DefaultServerConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)

	seedCorpus(ctx, repository.NewHistoryRepo(db))

	// Same derivation Login uses, so the seeded book shows up after login.
	authorID := service.AuthorIDFor(cfg.AuthorUsername)
	seedDemoBook(ctx, authorID, repository.NewBookRepo(db), repository.NewChapterRepo(db))
}

func seedCorpus(ctx context.Context, repo repository.HistoryRepo) {
	count, err := repo.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count corpus: %v", err)
	}
	if count > 0 {
		fmt.Printf("Corpus already has %d records, skipping\n", count)
		return
	}

	for _, record := range corpus() {
		rec := record
		if err := repo.Insert(ctx, &rec); err != nil {
			log.Fatalf("Failed to insert corpus record %q: %v", rec.Title, err)
		}
	}
	fmt.Printf("Seeded %d historical chapter records\n", len(corpus()))
}

func seedDemoBook(ctx context.Context, authorID string, books repository.BookRepo, chapters repository.ChapterRepo) {
	existing, err := books.GetByAuthor(ctx, authorID)
	if err != nil {
		log.Fatalf("Failed to query books: %v", err)
	}
	if len(existing) > 0 {
		fmt.Printf("Demo author already has %d books, skipping\n", len(existing))
		return
	}

	book := &model.Book{
		AuthorID:       authorID,
		Title:          "The Cartographer's Daughter",
		Genre:          "fantasy",
		TargetAudience: "young adult",
		Description: "A mapmaker's apprentice discovers her late mother's charts " +
			"describe places that do not exist yet.",
	}
	if err := books.Create(ctx, book); err != nil {
		log.Fatalf("Failed to insert demo book: %v", err)
	}

	demoChapters := []*model.Chapter{
		{
			BookID:      book.ID,
			Title:       "The Unfinished Map",
			Description: "Sera finds the chart her mother never completed and notices the ink is still wet.",
			Status:      model.ChapterStatusOutline,
			Order:       0,
		},
		{
			BookID:      book.ID,
			Title:       "Roads That Remember",
			Description: "Following the chart, Sera reaches a crossroads the map drew before the road was built.",
			Status:      model.ChapterStatusOutline,
			Order:       1,
		},
	}
	if err := chapters.CreateMany(ctx, demoChapters); err != nil {
		log.Fatalf("Failed to insert demo chapters: %v", err)
	}
	fmt.Printf("Seeded demo book %q with %d chapters for %s\n", book.Title, len(demoChapters), authorID)
}

func corpus() []model.HistoricalChapterRecord {
	return []model.HistoricalChapterRecord{
		{
			Genre: "fantasy",
			Title: "The Ember Gate",
			Content: "Captain Yara led the survivors through the mountain pass as the ember gate " +
				"glowed on the horizon. The old smith, Corin, argued that crossing it would wake " +
				"the sleeping king, but Yara had seen the army behind them and knew waiting meant " +
				"death. At the threshold she hesitated, remembering her brother's warning about " +
				"bargains made in firelight.",
			Questions: []model.HistoricalQuestion{
				{
					CandidateQuestion: model.CandidateQuestion{
						QuestionText: "What does Yara fear losing if she crosses the gate?",
						QuestionType: model.QuestionTypeCharacter,
						Difficulty:   model.DifficultyMedium,
					},
					Metrics: model.QuestionMetrics{AvgRating: 4.6, CompletionRate: 0.95, QualityScore: 0.82},
				},
				{
					CandidateQuestion: model.CandidateQuestion{
						QuestionText: "How does the sleeping king's bargain change the stakes of the escape?",
						QuestionType: model.QuestionTypePlot,
						Difficulty:   model.DifficultyHard,
					},
					Metrics: model.QuestionMetrics{AvgRating: 4.2, CompletionRate: 0.8, QualityScore: 0.78},
				},
				{
					CandidateQuestion: model.CandidateQuestion{
						QuestionText: "What does the mountain pass look, sound and smell like during the crossing?",
						QuestionType: model.QuestionTypeSetting,
						Difficulty:   model.DifficultyEasy,
					},
					Metrics: model.QuestionMetrics{AvgRating: 4.4, CompletionRate: 1.0, QualityScore: 0.75},
				},
			},
			AvgRating:      4.4,
			CompletionRate: 0.92,
		},
		{
			Genre: "mystery",
			Title: "The Locked Archive",
			Content: "Detective Ines Moreau found the archivist dead behind a door locked from the " +
				"inside, the only key still on its hook. The missing ledger pages pointed to someone " +
				"who knew the building's night routine. Her partner suspected the widow; Ines kept " +
				"returning to the janitor's too-careful answers.",
			Questions: []model.HistoricalQuestion{
				{
					CandidateQuestion: model.CandidateQuestion{
						QuestionText: "Why does Ines distrust the janitor more than the widow?",
						QuestionType: model.QuestionTypeCharacter,
						Difficulty:   model.DifficultyMedium,
					},
					Metrics: model.QuestionMetrics{AvgRating: 4.5, CompletionRate: 0.9, QualityScore: 0.8},
				},
				{
					CandidateQuestion: model.CandidateQuestion{
						QuestionText: "What sequence of events explains the locked door?",
						QuestionType: model.QuestionTypePlot,
						Difficulty:   model.DifficultyHard,
					},
					Metrics: model.QuestionMetrics{AvgRating: 4.1, CompletionRate: 0.75, QualityScore: 0.79},
				},
				{
					CandidateQuestion: model.CandidateQuestion{
						QuestionText: "What does the archive's atmosphere contribute to the sense of threat?",
						QuestionType: model.QuestionTypeSetting,
						Difficulty:   model.DifficultyMedium,
					},
					Metrics: model.QuestionMetrics{AvgRating: 3.9, CompletionRate: 0.85, QualityScore: 0.72},
				},
				{
					CandidateQuestion: model.CandidateQuestion{
						QuestionText: "What does the case reveal about who gets believed and why?",
						QuestionType: model.QuestionTypeTheme,
						Difficulty:   model.DifficultyHard,
					},
					Metrics: model.QuestionMetrics{AvgRating: 4.0, CompletionRate: 0.7, QualityScore: 0.77},
				},
			},
			AvgRating:      4.1,
			CompletionRate: 0.8,
		},
		{
			Genre: "memoir",
			Title: "Kitchen Winters",
			Content: "The winter my mother lost the restaurant, she taught me to make bread at " +
				"four in the morning before school. She never spoke about the bank letters on the " +
				"counter. I learned later that the kneading was how she kept her hands from shaking, " +
				"and that the loaves we gave to neighbors were her way of refusing to disappear.",
			Questions: []model.HistoricalQuestion{
				{
					CandidateQuestion: model.CandidateQuestion{
						QuestionText: "What did the early-morning baking mean to your mother at the time?",
						QuestionType: model.QuestionTypeCharacter,
						Difficulty:   model.DifficultyMedium,
					},
					Metrics: model.QuestionMetrics{AvgRating: 4.8, CompletionRate: 1.0, QualityScore: 0.85},
				},
				{
					CandidateQuestion: model.CandidateQuestion{
						QuestionText: "How did losing the restaurant change the family's daily life?",
						QuestionType: model.QuestionTypePlot,
						Difficulty:   model.DifficultyEasy,
					},
					Metrics: model.QuestionMetrics{AvgRating: 4.3, CompletionRate: 0.95, QualityScore: 0.76},
				},
				{
					CandidateQuestion: model.CandidateQuestion{
						QuestionText: "What does the bread-giving say about dignity in hard times?",
						QuestionType: model.QuestionTypeTheme,
						Difficulty:   model.DifficultyHard,
					},
					Metrics: model.QuestionMetrics{AvgRating: 4.5, CompletionRate: 0.85, QualityScore: 0.83},
				},
			},
			AvgRating:      4.5,
			CompletionRate: 0.93,
		},
		{
			Genre: "science fiction",
			Title: "Relay Station Nadir",
			Content: "The relay station had been silent for sixty years when Specialist Odum " +
				"docked. The logs showed the crew had voted to sever contact with Earth rather than " +
				"transmit what they had found in the signal. Odum's orders were to restore the link. " +
				"The station AI greeted her by name, though her mission was classified.",
			Questions: []model.HistoricalQuestion{
				{
					CandidateQuestion: model.CandidateQuestion{
						QuestionText: "Why would the crew choose isolation over transmitting their discovery?",
						QuestionType: model.QuestionTypePlot,
						Difficulty:   model.DifficultyHard,
					},
					Metrics: model.QuestionMetrics{AvgRating: 4.4, CompletionRate: 0.8, QualityScore: 0.81},
				},
				{
					CandidateQuestion: model.CandidateQuestion{
						QuestionText: "How does Odum react when the AI knows her name?",
						QuestionType: model.QuestionTypeCharacter,
						Difficulty:   model.DifficultyMedium,
					},
					Metrics: model.QuestionMetrics{AvgRating: 4.2, CompletionRate: 0.9, QualityScore: 0.77},
				},
				{
					CandidateQuestion: model.CandidateQuestion{
						QuestionText: "What real signal-relay constraints shape what the station could detect?",
						QuestionType: model.QuestionTypeResearch,
						Difficulty:   model.DifficultyHard,
					},
					Metrics: model.QuestionMetrics{AvgRating: 3.8, CompletionRate: 0.6, QualityScore: 0.74},
				},
			},
			AvgRating:      4.1,
			CompletionRate: 0.77,
		},
	}
}
