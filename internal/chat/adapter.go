// Package chat answers free-text questions about a finished scan. The core
// is a pure (question, context) -> answer function; the HTTP server is a
// thin wrapper around it.
package chat

import (
	"context"
	"fmt"
	"strings"

	"intellidoc/internal/models"
)

// Answerer is the slice of the summary service the adapter needs.
type Answerer interface {
	Answer(ctx context.Context, contextText, question string) (string, error)
}

// Adapter holds the findings context snapshot for the lifetime of the chat
// session. Each question is handled independently; there is no conversation
// memory across turns.
type Adapter struct {
	answerer Answerer
	context  string
}

func NewAdapter(answerer Answerer, contextText string) *Adapter {
	return &Adapter{answerer: answerer, context: contextText}
}

// ContextFromFindings flattens findings into the textual context embedded in
// every chat prompt.
func ContextFromFindings(f *models.Findings) string {
	var sb strings.Builder
	if f.RootOverview != "" {
		fmt.Fprintf(&sb, "Project Overview:\n%s\n\n", f.RootOverview)
	}
	for _, e := range f.Entries {
		if e.Status != models.StatusSummarized {
			continue
		}
		label := "File"
		if e.Kind == models.KindDirectory {
			label = "Directory"
		}
		fmt.Fprintf(&sb, "%s %s: %s\n\n", label, e.Path, e.Summary)
	}
	return sb.String()
}

func (a *Adapter) Answer(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("question is required")
	}
	return a.answerer.Answer(ctx, a.context, question)
}
