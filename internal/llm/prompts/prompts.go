// Package prompts renders the prompt templates sent to the generation
// backend. Templates are embedded so packaged executables do not need the
// source tree.
package prompts

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.txt
var embeddedTemplates embed.FS

const (
	fileSystemPrompt = "You are an AI assistant that analyzes a source code file."
	dirSystemPrompt  = "You are an AI assistant that analyzes code directories."
	rootSystemPrompt = "You are an AI assistant that summarizes a project."
	chatSystemPrompt = "You are an AI assistant that knows the following code summary:\n%s\n\nAnswer questions about this code. If not sure, provide your best guess."
)

var templates = template.Must(template.ParseFS(embeddedTemplates, "templates/*.txt"))

// ChildSummary is one already-summarized child fed into a directory prompt.
type ChildSummary struct {
	Name    string
	Summary string
}

func render(name string, data any) (string, error) {
	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return sb.String(), nil
}

// FileSummary builds the prompt pair for summarizing a single file.
func FileSummary(path, content string) (system, user string, err error) {
	user, err = render("file_summary.txt", struct {
		Path    string
		Content string
	}{path, content})
	return fileSystemPrompt, user, err
}

// DirectorySummary builds the prompt pair for summarizing a directory from
// its children's summaries.
func DirectorySummary(path string, children []ChildSummary) (system, user string, err error) {
	user, err = render("directory_summary.txt", struct {
		Path     string
		Children []ChildSummary
	}{path, children})
	return dirSystemPrompt, user, err
}

// RootOverview builds the prompt pair asking for the project's language and
// purpose from the bare listing of its paths.
func RootOverview(root string, listing []string) (system, user string, err error) {
	user, err = render("root_overview.txt", struct {
		Root    string
		Listing []string
	}{root, listing})
	return rootSystemPrompt, user, err
}

// Chat builds the prompt pair for one chat question. The findings context
// travels in the system prompt, the verbatim question in the user prompt.
func Chat(contextText, question string) (system, user string, err error) {
	user, err = render("chat.txt", struct {
		Question string
	}{question})
	return fmt.Sprintf(chatSystemPrompt, contextText), user, err
}
