package services

import (
	"context"
	"fmt"
	"strings"

	"intellidoc/internal/llm/generate"
	"intellidoc/internal/llm/prompts"
)

// PlaceholderSummary is recorded for a unit whose remote call failed when the
// run continues past remote errors.
const PlaceholderSummary = "summary unavailable"

// SummaryService turns one unit of content into a natural-language summary
// through a single remote call. Content is truncated before templating so a
// huge file cannot blow up the request.
type SummaryService struct {
	generator generate.Generator
	maxChars  int
}

func NewSummaryService(generator generate.Generator, maxChars int) *SummaryService {
	if maxChars <= 0 {
		maxChars = 12000
	}
	return &SummaryService{generator: generator, maxChars: maxChars}
}

func (s *SummaryService) truncate(content string) string {
	if len(content) <= s.maxChars {
		return content
	}
	return content[:s.maxChars] + "\n[content truncated]"
}

func (s *SummaryService) generate(ctx context.Context, system, user string) (string, error) {
	text, err := s.generator.Generate(ctx, system, user)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("empty summary from generator")
	}
	return text, nil
}

func (s *SummaryService) SummarizeFile(ctx context.Context, relPath, content string) (string, error) {
	system, user, err := prompts.FileSummary(relPath, s.truncate(content))
	if err != nil {
		return "", err
	}
	return s.generate(ctx, system, user)
}

func (s *SummaryService) SummarizeDirectory(ctx context.Context, relPath string, children []prompts.ChildSummary) (string, error) {
	system, user, err := prompts.DirectorySummary(relPath, children)
	if err != nil {
		return "", err
	}
	return s.generate(ctx, system, user)
}

func (s *SummaryService) SummarizeRoot(ctx context.Context, root string, listing []string) (string, error) {
	system, user, err := prompts.RootOverview(root, listing)
	if err != nil {
		return "", err
	}
	return s.generate(ctx, system, user)
}

// Answer handles one chat question against the findings context snapshot.
// The context is bounded by the same truncation limit as file content.
func (s *SummaryService) Answer(ctx context.Context, contextText, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("question is required")
	}
	system, user, err := prompts.Chat(s.truncate(contextText), question)
	if err != nil {
		return "", err
	}
	return s.generate(ctx, system, user)
}
