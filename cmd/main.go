package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"

	"github.com/yamato-dev/kura/pkg/chunker"
	cfgPkg "github.com/yamato-dev/kura/pkg/config"
	"github.com/yamato-dev/kura/pkg/extractor"
	"github.com/yamato-dev/kura/pkg/llm"
	"github.com/yamato-dev/kura/pkg/logging"
	"github.com/yamato-dev/kura/pkg/pipeline"
	"github.com/yamato-dev/kura/pkg/store"
	"github.com/yamato-dev/kura/pkg/tabular"
	"github.com/yamato-dev/kura/pkg/textnorm"
	"github.com/yamato-dev/kura/pkg/walker"
)

type Flags struct {
	ConfigPath  string
	SecretsPath string
	RootDir     string
	DBUrl       string
	SkipStore   bool
}

func main() {
	flags := parseFlags()

	if err := run(flags); err != nil {
		log.Fatal(err)
	}
}

func parseFlags() Flags {
	var flags Flags

	flag.StringVar(&flags.ConfigPath, "config", "", "Path to config file")
	flag.StringVar(&flags.SecretsPath, "secrets", "secrets.yaml", "Path to secrets file")
	flag.StringVar(&flags.RootDir, "root", "", "Source root directory (overrides config)")
	flag.StringVar(&flags.DBUrl, "db-url", "", "PostgreSQL connection string (overrides config)")
	flag.BoolVar(&flags.SkipStore, "skip-store", false, "Run ingestion without storing embeddings")
	flag.Parse()

	return flags
}

func getProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionSetItsString("docs"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func getSpinner(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func timeout(secs int) time.Duration {
	return time.Duration(secs) * time.Second
}

func run(flags Flags) error {
	// .env first so config env merging sees it
	_ = godotenv.Load()

	cfg, err := cfgPkg.LoadConfig(flags.ConfigPath)
	if err != nil {
		return err
	}
	if flags.RootDir != "" {
		cfg.Sources.RootDir = flags.RootDir
	}
	if flags.DBUrl != "" {
		cfg.Database.URL = flags.DBUrl
	}

	// Startup validation: a bad configuration aborts before any ingestion.
	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			color.Red("config error: %v", e)
		}
		return fmt.Errorf("invalid configuration (%d errors)", len(errs))
	}

	logger, err := logging.New(cfg.Log.Dir, cfg.Log.File)
	if err != nil {
		return err
	}
	defer logger.Close()

	// The embedding credential is resolved up front so a missing key
	// fails fast instead of mid-run.
	var embeddingKey string
	if !flags.SkipStore && cfg.Database.URL != "" {
		embeddingKey, err = cfgPkg.ResolveEmbeddingKey(flags.SecretsPath)
		if err != nil {
			return err
		}
	}

	registry := extractor.NewRegistry()
	registry.Restrict(cfg.Sources.Extensions)

	synthesizer := tabular.NewSynthesizer(tabular.Config{
		RosterMarkers:     cfg.Tabular.RosterMarkers,
		DepartmentColumns: cfg.Tabular.DepartmentColumns,
		PersonnelLabels:   cfg.Tabular.PersonnelLabels,
	})

	web := walker.NewWebLoader(walker.WebConfig{
		RateLimit: cfg.Web.RateLimit,
		Timeout:   timeout(cfg.Web.TimeoutSecs),
	}, logger)

	p := pipeline.New(
		cfg.Sources.RootDir,
		cfg.Sources.WebURLs,
		walker.New(registry, synthesizer, logger),
		web,
		textnorm.Default(),
		chunker.New(cfg.Chunker.ChunkSize, cfg.Chunker.ChunkOverlap),
		logger,
	)

	color.Blue("\nStarting ingestion run from %s\n", cfg.Sources.RootDir)
	ingestSpinner := getSpinner("Ingesting sources...")

	ctx := context.Background()
	result, err := p.Run(ctx)
	ingestSpinner.Finish()
	if err != nil {
		return fmt.Errorf("ingestion failed: %v", err)
	}

	color.Green("\n✓ Ingested %d documents\n", len(result.Documents))
	logger.Infof("ingested %d documents from %s and %d web pages",
		len(result.Documents), cfg.Sources.RootDir, len(cfg.Sources.WebURLs))

	if flags.SkipStore || cfg.Database.URL == "" {
		color.Cyan("Skipping embedding/storage (no database configured)")
		return nil
	}

	embedder, err := llm.NewEmbedderWithConfig(llm.EmbedderConfig{
		Model:  cfg.Embedder.Model,
		APIKey: embeddingKey,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize embedder: %v", err)
	}

	vectorStore, err := store.NewWithConfig(store.VectorStoreConfig{
		ConnString: cfg.Database.URL,
		TableName:  cfg.Database.TableName,
		VectorDim:  cfg.Database.VectorDim,
		BatchSize:  cfg.Database.BatchSize,
	}, embedder)
	if err != nil {
		return fmt.Errorf("failed to initialize vector store: %v", err)
	}
	defer vectorStore.Close()

	storageBar := getProgressBar(len(result.Documents), "Storing in vector database...")
	batchSize := cfg.Database.BatchSize
	for i := 0; i < len(result.Documents); i += batchSize {
		end := i + batchSize
		if end > len(result.Documents) {
			end = len(result.Documents)
		}
		batch := result.Documents[i:end]

		if err := vectorStore.Store(ctx, batch); err != nil {
			return fmt.Errorf("failed to store batch: %v", err)
		}
		storageBar.Add(len(batch))
	}
	storageBar.Finish()

	color.Green("\n✓ Storage complete (retriever k=%d)\n", cfg.Retriever.K)
	fmt.Fprintln(os.Stdout)
	return nil
}
