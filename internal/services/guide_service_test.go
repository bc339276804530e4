package services

import (
	"strings"
	"testing"

	"intellidoc/internal/models"
)

func sampleFindings() *models.Findings {
	return &models.Findings{
		Root:         "/some/target",
		RootOverview: "A small Python project.",
		Entries: []models.PathEntry{
			{Path: "a.txt", Kind: models.KindFile, Status: models.StatusSummarized, Summary: "greets the reader"},
			{Path: "blob.bin", Kind: models.KindFile, Status: models.StatusUnreadable},
			{Path: "sub/b.py", Kind: models.KindFile, Status: models.StatusSummarized, Summary: "prints one"},
			{Path: "sub", Kind: models.KindDirectory, Status: models.StatusSummarized, Summary: "holds the script"},
			{Path: ".", Kind: models.KindDirectory, Status: models.StatusSummarized, Summary: "the whole project"},
		},
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	guide := NewGuideService()
	f := sampleFindings()

	first := guide.Compose(f)
	for i := 0; i < 5; i++ {
		if again := guide.Compose(f); again != first {
			t.Fatal("compose output changed between identical calls")
		}
	}
}

func TestComposeMentionsEveryPathExactlyOnce(t *testing.T) {
	guide := NewGuideService()
	md := guide.Compose(sampleFindings())

	for heading, want := range map[string]int{
		"### a.txt\n":    1,
		"### blob.bin\n": 1,
		"### sub/b.py\n": 1,
		"## sub/\n":      1,
		"## ./\n":        1,
	} {
		if got := strings.Count(md, heading); got != want {
			t.Errorf("heading %q appears %d times, want %d", heading, got, want)
		}
	}
}

func TestComposeGroupsDirectoryBeforeItsFiles(t *testing.T) {
	guide := NewGuideService()
	md := guide.Compose(sampleFindings())

	dirAt := strings.Index(md, "## sub/")
	fileAt := strings.Index(md, "### sub/b.py")
	if dirAt < 0 || fileAt < 0 {
		t.Fatal("expected both sub/ and sub/b.py in the guide")
	}
	if dirAt > fileAt {
		t.Fatal("directory description must come before its files")
	}
}

func TestComposeRendersStatusNotes(t *testing.T) {
	guide := NewGuideService()
	md := guide.Compose(sampleFindings())

	if !strings.Contains(md, "binary or unreadable") {
		t.Fatal("unreadable entries must carry a visible note")
	}
	if !strings.Contains(md, "A small Python project.") {
		t.Fatal("root overview missing from the guide")
	}
}

func TestComposeKeepsOrphanEntries(t *testing.T) {
	guide := NewGuideService()
	f := &models.Findings{
		Root: "/x",
		Entries: []models.PathEntry{
			{Path: "deep/orphan.go", Kind: models.KindFile, Status: models.StatusSummarized, Summary: "lonely"},
			{Path: ".", Kind: models.KindDirectory, Status: models.StatusSummarized, Summary: "root"},
		},
	}
	md := guide.Compose(f)
	if strings.Count(md, "deep/orphan.go") != 1 {
		t.Fatal("entry without a recorded parent must still appear exactly once")
	}
}
