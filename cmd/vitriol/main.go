package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/chriscorrea/vitriol/internal/app"
	"github.com/chriscorrea/vitriol/internal/rationale"
	"github.com/chriscorrea/vitriol/internal/redact"

	"github.com/spf13/cobra"
)

// buildConfig constructs an app.Config from the flags shared by all commands
func buildConfig(cmd *cobra.Command) app.Config {
	modelPath, _ := cmd.Flags().GetString("model")
	threshold, _ := cmd.Flags().GetFloat64("threshold")
	topK, _ := cmd.Flags().GetInt("top-k")
	noRationale, _ := cmd.Flags().GetBool("no-rationale")
	doRedact, _ := cmd.Flags().GetBool("redact")
	redactMode, _ := cmd.Flags().GetString("redact-mode")
	jsonFlag, _ := cmd.Flags().GetBool("json")
	quiet, _ := cmd.Flags().GetBool("quiet")
	debug, _ := cmd.Flags().GetBool("debug")

	return app.Config{
		ModelPath:        modelPath,
		Threshold:        threshold,
		TopK:             topK,
		IncludeRationale: !noRationale,
		Redact:           doRedact,
		RedactMode:       redact.ParseMode(redactMode),
		JSON:             jsonFlag,
		Quiet:            quiet,
		Debug:            debug,
	}
}

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug bool) {
	level := slog.LevelError
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

var rootCmd = &cobra.Command{
	Use:   "vitriol [text...]",
	Short: "Classify short text as toxic or non-toxic",
	Long: `Vitriol classifies text snippets as toxic or non-toxic using a trained
linear model, explains its decisions by pointing at the spans of text that
drove the prediction, and can redact those spans.

Examples:
  vitriol "You are an idiot!"
  vitriol --redact --redact-mode mask "You are an idiot!"
  echo "thank you for your help" | vitriol --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := buildConfig(cmd)
		setupLogger(config.Debug)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		// positional arguments form the text; none means stdin
		text := strings.Join(args, " ")

		result, err := app.Run(ctx, config, text)
		if err != nil {
			return fmt.Errorf("classification failed: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan [sources...]",
	Short: "Scan documents, files, or URLs for toxic passages",
	Long: `Scan fetches each source (URL, file path, or "-" for stdin), extracts
readable text from HTML, splits it into passages, and classifies each one,
reporting the passages a reader would find toxic.

Examples:
  vitriol scan https://example.com/comments
  vitriol scan transcript.txt --redact
  cat dump.html | vitriol scan -`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := buildConfig(cmd)
		setupLogger(config.Debug)

		selector, _ := cmd.Flags().GetString("selector")
		keepAll, _ := cmd.Flags().GetBool("include-all")
		passageChars, _ := cmd.Flags().GetInt("passage-chars")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		sources := args
		if len(sources) == 0 {
			sources = []string{"-"}
		}

		result, err := app.Scan(ctx, app.ScanConfig{
			Config:       config,
			Sources:      sources,
			Selector:     selector,
			KeepAll:      keepAll,
			PassageChars: passageChars,
		})
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{rootCmd, scanCmd} {
		cmd.Flags().StringP("model", "m", "toxicity_model.json", "Path to the trained model artifact")
		cmd.Flags().Float64P("threshold", "t", rationale.DefaultThreshold, "Toxic-probability decision threshold")
		cmd.Flags().IntP("top-k", "k", rationale.DefaultTopK, "Maximum rationale spans to report")
		cmd.Flags().Bool("no-rationale", false, "Skip rationale extraction")
		cmd.Flags().BoolP("redact", "r", false, "Redact flagged spans in the output")
		cmd.Flags().String("redact-mode", "token", "Redaction mode: token or mask")
		cmd.Flags().Bool("json", false, "Output results as JSON")
		cmd.Flags().BoolP("quiet", "q", false, "Suppress progress messages")
		cmd.Flags().BoolP("debug", "D", false, "Enable debug logging")
		_ = cmd.Flags().MarkHidden("debug")

		// redaction needs rationale spans to splice
		cmd.MarkFlagsMutuallyExclusive("no-rationale", "redact")
	}

	scanCmd.Flags().StringP("selector", "s", "", "CSS selector for HTML content extraction")
	scanCmd.Flags().BoolP("include-all", "i", false, "Include all content without readability or boilerplate filtering")
	scanCmd.Flags().Int("passage-chars", app.DefaultPassageChars, "Maximum characters per scanned passage")

	rootCmd.AddCommand(scanCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
