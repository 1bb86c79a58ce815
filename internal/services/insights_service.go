package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"content-tracker-report/internal/config"
	"content-tracker-report/internal/models"

	openai "github.com/sashabaranov/go-openai"
)

// InsightsService produces a short natural-language summary paragraph for a
// report header. Entirely optional: reports render fine without it.
type InsightsService struct {
	client      *openai.Client
	model       string
	temperature float64
}

// NewInsightsService creates a new insights service
func NewInsightsService(cfg config.OpenAIConfig) *InsightsService {
	return &InsightsService{
		client:      openai.NewClient(cfg.APIKey),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

// SummarizeReport asks the model for a one-paragraph summary of the report's
// aggregate numbers. Only counts are sent, never task content.
func (s *InsightsService) SummarizeReport(report *models.Report) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var stats strings.Builder
	fmt.Fprintf(&stats, "Month: %s. Total tasks: %d. Groups: %d.\n", report.Month, report.TotalTasks, report.GroupCount)
	for _, section := range report.Sections {
		fmt.Fprintf(&stats, "- %s: total %d, completed %d, in progress %d, pending %d\n",
			section.Title, section.Counts.Total, section.Counts.Completed,
			section.Counts.InProgress, section.Counts.Pending)
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: float32(s.temperature),
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You summarize social media content production reports. " +
					"Write one short paragraph (3-4 sentences) highlighting overall completion, " +
					"the strongest group, and any backlog. Plain prose, no lists, no markdown.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: stats.String(),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no summary returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
