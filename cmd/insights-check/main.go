package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lumenjournal/insights/internal/llm"
	"github.com/lumenjournal/insights/internal/models"
	"github.com/lumenjournal/insights/internal/privacy"
	"github.com/lumenjournal/insights/internal/prompts"
	"github.com/lumenjournal/insights/internal/sentiment"
	"github.com/lumenjournal/insights/internal/themes"
)

// stubGenerator runs the prompt pipeline without an API key. It echoes a
// canned response resembling a verbose model reply so the cleanup pass has
// something to chew on.
type stubGenerator struct{}

func (stubGenerator) Complete(ctx context.Context, messages []llm.Message, opts llm.Options) (string, error) {
	return "What made you smile today? This prompt is perfect for you because it feels completely safe.", nil
}

// checkResult captures one entry's trip through the analysis pipeline.
type checkResult struct {
	Content   string                `json:"content"`
	Masked    string                `json:"masked"`
	Sentiment models.SentimentResult `json:"sentiment"`
	Themes    models.ThemeResult     `json:"themes"`
}

func main() {
	fmt.Println("🔎 Journal Insights - Offline Pipeline Check")
	fmt.Println("============================================")

	samples := []string{
		"Amazing day at work today! The project demo went great and my manager was thrilled.",
		"Feeling tired and stressed. Too many meetings, and I still need to call 555-123-4567 about the lease.",
		"Quiet evening with the family. We cooked dinner together and played games until late.",
		"Bad week so far. The gym has been my only escape from the awful deadlines.",
	}

	var results []checkResult
	for i, content := range samples {
		sentimentResult := sentiment.Analyze(content)
		themeResult := themes.ExtractThemes(content, sentimentResult.Label)
		masked := privacy.Mask(content)

		emoji := "😐"
		switch sentimentResult.Label {
		case models.SentimentVeryHappy, models.SentimentHappy:
			emoji = "😊"
		case models.SentimentSad, models.SentimentDepressed:
			emoji = "😞"
		}

		fmt.Printf("\n%d. %s\n", i+1, content)
		fmt.Printf("   %s Sentiment: %s (score %.2f, comparative %.3f)\n",
			emoji, sentimentResult.Label, sentimentResult.Score, sentimentResult.Comparative)
		fmt.Printf("   🏷️  Themes: %s\n", strings.Join(themeResult.Themes, ", "))
		if masked != content {
			fmt.Printf("   🔒 Masked: %s\n", masked)
		}

		results = append(results, checkResult{
			Content:   content,
			Masked:    masked,
			Sentiment: sentimentResult,
			Themes:    themeResult,
		})
	}

	// Exercise prompt generation end to end with the stub generator.
	generator := prompts.NewGenerator(stubGenerator{})
	prompt, err := generator.Generate(context.Background(), models.PromptContext{
		UserID:     "check-user",
		EntryCount: 1,
		HistoricalPatterns: &models.HistoricalPatterns{
			CommonThemes:   []string{},
			SentimentTrend: models.TrendUnknown,
		},
	})
	if err != nil {
		fmt.Printf("\n⚠️  Prompt generation failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\n✨ Generated prompt (post-cleanup): %s\n", prompt.PromptText)

	if err := saveResults(results); err != nil {
		fmt.Printf("\n⚠️  Warning: could not save results: %v\n", err)
	}

	fmt.Println("\n" + strings.Repeat("=", 44))
	fmt.Println("Pipeline check complete.")
}

func saveResults(results []checkResult) error {
	dir := "check_output"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	filename := filepath.Join(dir, fmt.Sprintf("pipeline_check_%s.json", time.Now().Format("2006-01-02_15-04-05")))
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return err
	}

	fmt.Printf("\n💾 Results saved to: %s\n", filename)
	return nil
}
