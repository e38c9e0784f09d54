package build

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/embedpack/models"
	"github.com/dtnitsch/embedpack/pkg/bundler"
	"github.com/dtnitsch/embedpack/pkg/db"
	"github.com/dtnitsch/embedpack/pkg/manifest"
	"github.com/dtnitsch/embedpack/pkg/pipeline"
	"github.com/dtnitsch/embedpack/pkg/storage"
)

const defaultsFile = "embedpack.yaml"

func BuildAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	config := &models.BuildConfig{
		Page:      c.String("page"),
		OutDir:    c.String("out"),
		Namespace: c.String("namespace"),
		All:       c.Bool("all"),
		PagesDir:  c.String("pages-dir"),
	}

	defaults, err := models.LoadDefaults(defaultsFile)
	if err != nil {
		logger.Error("invalid defaults file", "path", defaultsFile, "error", err)
		os.Exit(1)
	}
	config.ApplyDefaults(defaults)

	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	// Build history is auxiliary reporting; a broken database must not stop
	// the build.
	database, err := db.Open()
	if err != nil {
		logger.Warn("build history unavailable", "error", err)
		database = nil
	} else {
		defer database.Close()
	}

	pipe := pipeline.New(config.Namespace, bundler.Service{}, logger)

	var results []*pipeline.PageResult
	if config.All {
		results, err = pipe.BuildAll(config.PagesDir, config.OutDir)
		if err != nil {
			logger.Error("batch build failed", "pages_dir", config.PagesDir, "error", err)
			os.Exit(2)
		}
	} else {
		res, err := pipe.BuildPage(config.Page, config.OutDir)
		if err != nil {
			logger.Error("build failed", "page", config.Page, "error", err)
			recordResults(database, config.Namespace, []*pipeline.PageResult{{Page: config.Page, Err: err}}, logger)
			os.Exit(2)
		}
		results = []*pipeline.PageResult{res}
	}

	recordResults(database, config.Namespace, results, logger)

	manifestPath, err := manifest.WriteSummary(config.OutDir, config.Namespace, results, &storage.Storage{})
	if err != nil {
		logger.Error("failed to write build manifest", "error", err)
	}

	printReport(results, manifestPath)
	return nil
}

func recordResults(database *db.DB, namespace string, results []*pipeline.PageResult, logger *slog.Logger) {
	if database == nil {
		return
	}
	for _, res := range results {
		rec := db.BuildRecord{
			Page:       res.Page,
			Namespace:  namespace,
			Status:     "success",
			DurationMS: res.Duration.Milliseconds(),
		}
		if res.Err != nil {
			rec.Status = "failed"
			rec.Error = res.Err.Error()
		} else {
			rec.BundleBytes = res.BundleBytes
			rec.LinkedBytes = res.LinkedBytes
			rec.StandaloneBytes = res.StandaloneBytes
		}
		if _, err := database.RecordBuild(rec); err != nil {
			logger.Warn("failed to record build", "page", res.Page, "error", err)
		}
	}
}

func printReport(results []*pipeline.PageResult, manifestPath string) {
	for _, res := range results {
		if res.Err != nil {
			fmt.Printf("FAILED  %s: %s\n", res.Page, res.Err)
			continue
		}
		fmt.Printf("OK      %s -> %s (bundle %d B, linked %d B, standalone %d B)\n",
			res.Page, res.OutDir, res.BundleBytes, res.LinkedBytes, res.StandaloneBytes)
	}
	if manifestPath != "" {
		fmt.Printf("\nBuild manifest: %s\n", manifestPath)
	}
	fmt.Println("Embed either index.html (with bundle.js uploaded alongside) or the self-contained standalone.html.")
}
