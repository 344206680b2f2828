package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"justel_spider/internal/config"
	"justel_spider/internal/fetcher"
	"justel_spider/internal/models"
	"justel_spider/internal/pipeline"
	"justel_spider/internal/store"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagConfig    string
	flagStartYear int
	flagEndYear   int
	flagLimit     int
	flagLang      string
	flagStage     string
	flagOut       string
	flagMongo     bool
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "justel_spider",
		Short: "Ingest Belgian federal legislation from the Justel portal",
		RunE:  run,
	}

	root.Flags().StringVar(&flagConfig, "config", "", "path to config.yaml (optional)")
	root.Flags().IntVar(&flagStartYear, "start-year", 0, "first year to discover (inclusive)")
	root.Flags().IntVar(&flagEndYear, "end-year", 0, "last year to discover (inclusive, default current year)")
	root.Flags().IntVar(&flagLimit, "limit", 0, "cap on entries processed past discovery (0 = no cap)")
	root.Flags().StringVar(&flagLang, "lang", "both", "content language: fr, nl or both")
	root.Flags().StringVar(&flagStage, "stage", "all", "stage to run: all, discover or content")
	root.Flags().StringVar(&flagOut, "out", "", "artifact output directory")
	root.Flags().BoolVar(&flagMongo, "mongo", false, "persist artifacts to MongoDB instead of files")

	if err := root.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	startYear := cfg.Logic.StartYear
	if flagStartYear > 0 {
		startYear = flagStartYear
	}
	endYear := time.Now().Year()
	if flagEndYear > 0 {
		endYear = flagEndYear
	}
	if endYear < startYear {
		return fmt.Errorf("end year %d before start year %d", endYear, startYear)
	}

	var langs []models.Language
	switch flagLang {
	case "fr":
		langs = []models.Language{models.LangFR}
	case "nl":
		langs = []models.Language{models.LangNL}
	case "both":
		langs = []models.Language{models.LangFR, models.LangNL}
	default:
		return fmt.Errorf("unknown language %q", flagLang)
	}

	var stage pipeline.Stage
	switch flagStage {
	case "all", "discover", "content":
		stage = pipeline.Stage(flagStage)
	default:
		return fmt.Errorf("unknown stage %q", flagStage)
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	f := fetcher.New(cfg, nil)
	f.LoadRobots(ctx)

	p := pipeline.New(cfg, f, st)
	return p.Run(ctx, pipeline.Options{
		StartYear: startYear,
		EndYear:   endYear,
		Limit:     flagLimit,
		Languages: langs,
		Stage:     stage,
	})
}

func loadConfig() (*config.Config, error) {
	if flagConfig == "" {
		return config.Default(), nil
	}
	cfg, err := config.LoadConfig(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func openStore(cfg *config.Config) (store.Store, error) {
	if flagMongo {
		uri := cfg.Storage.MongoURI
		if env := os.Getenv("MONGO_URI"); env != "" {
			uri = env
		}
		if uri == "" {
			return nil, fmt.Errorf("--mongo requires storage.mongo_uri or MONGO_URI")
		}
		return store.NewMongoStore(uri, cfg.Storage.Database)
	}

	dir := cfg.Storage.OutDir
	if flagOut != "" {
		dir = flagOut
	}
	return store.NewFileStore(dir)
}
