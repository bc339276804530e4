package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"gorm.io/gorm/logger"

	"intellidoc/internal/chat"
	"intellidoc/internal/config"
	"intellidoc/internal/database"
	"intellidoc/internal/llm/client"
	"intellidoc/internal/llm/generate"
	"intellidoc/internal/llm/watsonx"
	"intellidoc/internal/models"
	"intellidoc/internal/repositories"
	"intellidoc/internal/services"
)

// App wires the services for one invocation and carries the run context
// through scan, artifact generation and the optional chat phase.
type App struct {
	cfg     config.Config
	logger  *slog.Logger
	git     *services.GitService
	guide   services.GuideService
	runs    services.RunService
	dbClose func() error
}

func NewApp(cfg config.Config, log *slog.Logger) *App {
	a := &App{
		cfg:    cfg,
		logger: log,
		git:    services.NewGitService(),
		guide:  services.NewGuideService(),
	}

	// Run history is convenience, not a run output: a broken DB must not
	// stop the scan.
	db, err := database.Init(database.Config{
		Path:     cfg.DatabasePath,
		LogLevel: logger.Warn,
	})
	if err != nil {
		log.Warn("run history disabled", "error", err)
		return a
	}
	a.runs = services.NewRunService(repositories.NewRunRepository(db))
	if sqlDB, err := db.DB(); err == nil {
		a.dbClose = sqlDB.Close
	}
	return a
}

// newGenerator builds the configured provider backend.
func (a *App) newGenerator(ctx context.Context) (generate.Generator, error) {
	params := generate.Params{
		DecodingMethod: generate.DefaultParams().DecodingMethod,
		MaxNewTokens:   a.cfg.MaxNewTokens,
	}
	modelOpts := client.ModelOptions{
		Model:        a.cfg.ModelID,
		MaxNewTokens: a.cfg.MaxNewTokens,
	}

	switch a.cfg.Provider {
	case config.ProviderWatsonx:
		return watsonx.NewClient(watsonx.Config{
			Endpoint:  a.cfg.Endpoint,
			APIKey:    a.cfg.APIKey,
			ProjectID: a.cfg.ProjectID,
			ModelID:   a.cfg.ModelID,
			Params:    params,
			Timeout:   a.cfg.RequestTimeout,
		})
	case config.ProviderOpenAI:
		return client.NewOpenAIClient(ctx, a.cfg.APIKey, modelOpts)
	case config.ProviderAnthropic:
		return client.NewClaudeClient(ctx, a.cfg.APIKey, modelOpts)
	case config.ProviderGemini:
		return client.NewGeminiClient(ctx, a.cfg.APIKey, modelOpts)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", a.cfg.Provider)
	}
}

// Run scans the target folder and writes the three artifacts. It returns the
// findings so a chat phase can reuse them without re-reading from disk.
func (a *App) Run(ctx context.Context, target string) (*models.Findings, error) {
	targetAbs, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("resolve target: %w", err)
	}

	gen, err := a.newGenerator(ctx)
	if err != nil {
		return nil, err
	}

	findingsSvc, err := services.NewFindingsService(targetAbs, a.cfg.SummariesPath(), a.cfg.FindingsPath())
	if err != nil {
		return nil, err
	}
	defer findingsSvc.Close()

	summaries := services.NewSummaryService(gen, a.cfg.MaxContentChars)
	walker := services.NewWalkerService(
		services.NewExclusionFilter(services.DefaultExclusions()...),
		services.NewFileClassifier(services.DefaultMaxFileBytes),
		summaries,
		findingsSvc,
		a.cfg.FailFast,
		a.logger,
	)

	a.logger.Info("starting analysis",
		"target", targetAbs,
		"provider", a.cfg.Provider,
		"model", a.cfg.ModelID,
	)
	if err := walker.Walk(ctx, targetAbs); err != nil {
		return nil, err
	}

	if err := findingsSvc.WriteJSON(); err != nil {
		return nil, err
	}
	findings := findingsSvc.Findings()
	if err := a.guide.WriteGuide(a.cfg.GuidePath(), findings); err != nil {
		return nil, err
	}
	// The log is flushed on close; a failure here means the artifact is
	// incomplete, which is as fatal as any other output-write error.
	if err := findingsSvc.Close(); err != nil {
		return nil, fmt.Errorf("close summaries log: %w", err)
	}
	a.logger.Info("artifacts written",
		"findings", a.cfg.FindingsPath(),
		"guide", a.cfg.GuidePath(),
		"summaries", a.cfg.SummariesPath(),
	)

	a.recordRun(targetAbs, findingsSvc)
	return findings, nil
}

func (a *App) recordRun(target string, findingsSvc *services.FindingsService) {
	if a.runs == nil {
		return
	}
	branch, commit, err := a.git.Metadata(target)
	if err != nil {
		a.logger.Warn("git metadata probe failed", "error", err)
	}
	files, dirs, unreadable, unavailable := findingsSvc.Counts()
	run := &models.Run{
		Target:        target,
		Timestamp:     a.cfg.Timestamp,
		Branch:        branch,
		Commit:        commit,
		Provider:      a.cfg.Provider,
		ModelID:       a.cfg.ModelID,
		FindingsPath:  a.cfg.FindingsPath(),
		GuidePath:     a.cfg.GuidePath(),
		SummariesPath: a.cfg.SummariesPath(),
		Files:         files,
		Directories:   dirs,
		Unreadable:    unreadable,
		Unavailable:   unavailable,
	}
	if _, err := a.runs.Record(run); err != nil {
		a.logger.Warn("could not record run history", "error", err)
	}
}

// LatestFindings reloads the findings artifact of the most recent recorded
// run, for chatting without a fresh scan.
func (a *App) LatestFindings() (*models.Findings, error) {
	if a.runs == nil {
		return nil, fmt.Errorf("run history is unavailable")
	}
	run, err := a.runs.Latest()
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, fmt.Errorf("no previous runs recorded; scan a folder first")
	}
	return services.LoadFindings(run.FindingsPath)
}

// Chat serves the local chat page over the given findings until interrupted.
func (a *App) Chat(ctx context.Context, findings *models.Findings) error {
	gen, err := a.newGenerator(ctx)
	if err != nil {
		return err
	}
	summaries := services.NewSummaryService(gen, a.cfg.MaxContentChars)
	adapter := chat.NewAdapter(summaries, chat.ContextFromFindings(findings))
	server := chat.NewServer(adapter, a.runs, a.cfg.ChatAddr, a.logger)
	return server.Start()
}

func (a *App) Close() {
	if a.dbClose != nil {
		if err := a.dbClose(); err != nil {
			a.logger.Warn("failed to close database", "error", err)
		}
	}
}
