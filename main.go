package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"intellidoc/internal/config"
	"intellidoc/internal/services"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		opts     config.Options
		withChat bool
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "intellidoc [target-folder]",
		Short: "Summarize a codebase with an LLM and generate a developer guide",
		Long: "intellidoc walks a folder tree, summarizes every readable file and directory\n" +
			"through a remote text-generation provider, and writes a JSON findings file,\n" +
			"a chronological summaries log and a Markdown developer guide. With --chat it\n" +
			"also serves a local page for asking questions about the scanned codebase.\n" +
			"Running --chat without a target folder reuses the latest recorded run.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)

			cfg, err := config.Load(opts, services.NewKeyringService())
			if err != nil {
				return err
			}

			app := NewApp(cfg, logger)
			defer app.Close()

			if len(args) == 0 {
				if !withChat {
					return fmt.Errorf("a target folder is required (or pass --chat to reuse the latest run)")
				}
				findings, err := app.LatestFindings()
				if err != nil {
					return err
				}
				return app.Chat(cmd.Context(), findings)
			}

			findings, err := app.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if withChat {
				return app.Chat(cmd.Context(), findings)
			}
			logger.Info("analysis complete; rerun with --chat for the interactive page")
			return nil
		},
	}

	cmd.Flags().BoolVar(&withChat, "chat", false, "serve the local chat page after the scan")
	cmd.Flags().StringVar(&opts.ChatAddr, "chat-addr", "127.0.0.1:7860", "address for the chat page")
	cmd.Flags().StringVar(&opts.Provider, "provider", config.ProviderWatsonx, "generation provider (watsonx, openai, anthropic, gemini)")
	cmd.Flags().StringVar(&opts.ModelID, "model", "", "model identifier (defaults per provider, or MODEL_ID)")
	cmd.Flags().IntVar(&opts.MaxNewTokens, "max-new-tokens", 512, "maximum generated tokens per summary")
	cmd.Flags().IntVar(&opts.MaxContentChars, "max-chars", 12000, "maximum characters of file content per prompt")
	cmd.Flags().DurationVar(&opts.RequestTimeout, "timeout", 2*time.Minute, "timeout per generation request")
	cmd.Flags().BoolVar(&opts.FailFast, "fail-fast", false, "abort the run on the first failed generation instead of recording a placeholder")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(newKeysCmd())

	return cmd
}

func newKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage provider API keys in the OS keyring",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <provider>",
		Short: "Read an API key from stdin and store it for a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.ErrOrStderr(), "API key: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			return services.NewKeyringService().StoreApiKey(args[0], strings.TrimSpace(line))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <provider>",
		Short: "Remove the stored API key for a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return services.NewKeyringService().DeleteApiKey(args[0])
		},
	})

	return cmd
}
