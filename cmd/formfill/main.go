package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/oezhouyou/legal-form-fill/internal/config"
	"github.com/oezhouyou/legal-form-fill/internal/document"
	"github.com/oezhouyou/legal-form-fill/internal/extract"
	"github.com/oezhouyou/legal-form-fill/internal/fill"
	"github.com/oezhouyou/legal-form-fill/internal/progress"
	"github.com/oezhouyou/legal-form-fill/internal/schema"
	"github.com/oezhouyou/legal-form-fill/internal/server"
	"github.com/oezhouyou/legal-form-fill/internal/store"
)

const version = "1.0.0"

var (
	// Global flags
	configPath string
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "formfill",
	Short: "AI-powered legal document extraction and form filling",
	Long: `formfill extracts structured data from passport scans and USCIS G-28
forms using a vision LLM, then auto-populates the target web form through
a headless browser, streaming per-field progress over WebSocket.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill the target form from a JSON data file",
	Long: `Reads extracted form data from a JSON file and drives a headless
browser through the target form, printing the fill summary as JSON.`,
	RunE: runFill,
}

var extractCmd = &cobra.Command{
	Use:   "extract [file...]",
	Short: "Extract structured data from local document files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExtract,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("formfill %s\n", version)
	},
}

var (
	fillDataPath   string
	fillTargetURL  string
	extractDocType string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "formfill.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	fillCmd.Flags().StringVar(&fillDataPath, "data", "", "JSON file with extracted form data (required)")
	fillCmd.Flags().StringVar(&fillTargetURL, "url", "", "override the target form URL")
	_ = fillCmd.MarkFlagRequired("data")

	extractCmd.Flags().StringVar(&extractDocType, "type", "auto", "document type (auto | passport | g28)")

	rootCmd.AddCommand(serveCmd, fillCmd, extractCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.Storage.DatabasePath, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	docs := document.NewService(cfg.Storage, logger)
	hub := progress.NewHub()
	filler := fill.NewFiller(cfg.Form, cfg.Storage.UploadDir, hub, logger)

	ctx, cancel := signalContext()
	defer cancel()

	vision, err := extract.NewVisionClient(ctx, cfg.Vision, logger)
	if err != nil {
		return err
	}
	extractor := extract.NewExtractor(vision, docs, logger)

	logger.Info("starting formfill server",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("target_url", cfg.Form.TargetURL),
		zap.String("vision_provider", cfg.Vision.Provider))
	if cfg.Vision.APIKey == "" {
		logger.Warn("no vision API key configured, extraction will fail")
	}

	return server.New(cfg, docs, db, hub, filler, extractor, logger).Run(ctx)
}

func runFill(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if fillTargetURL != "" {
		cfg.Form.TargetURL = fillTargetURL
	}

	raw, err := os.ReadFile(fillDataPath)
	if err != nil {
		return fmt.Errorf("failed to read data file: %w", err)
	}
	data := schema.NewFormData()
	if err := json.Unmarshal(raw, data); err != nil {
		return fmt.Errorf("failed to parse data file: %w", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	hub := progress.NewHub()
	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)
	go func() {
		for ev := range sub.Events() {
			logger.Info("progress",
				zap.String("field", ev.Field),
				zap.String("status", string(ev.Status)),
				zap.Float64("pct", ev.Progress))
		}
	}()

	filler := fill.NewFiller(cfg.Form, cfg.Storage.UploadDir, hub, logger)
	result, err := filler.Fill(ctx, data)
	if err != nil {
		return err
	}

	return printJSON(result)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	docs := document.NewService(cfg.Storage, logger)
	vision, err := extract.NewVisionClient(ctx, cfg.Vision, logger)
	if err != nil {
		return err
	}
	extractor := extract.NewExtractor(vision, docs, logger)

	// Stage local files through the upload store so extraction sees the
	// same layout the HTTP API produces.
	files := make(map[string]string, len(args))
	for _, arg := range args {
		contents, err := os.ReadFile(arg)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", arg, err)
		}
		fileID, path, err := docs.SaveUpload(arg, contents)
		if err != nil {
			return err
		}

		docType := extractDocType
		if docType == "auto" {
			docType, err = docs.DetectType(path)
			if err != nil {
				return err
			}
		}
		files[fileID] = docType
	}

	result, err := extractor.Extract(ctx, files)
	if err != nil {
		return err
	}

	return printJSON(result)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
