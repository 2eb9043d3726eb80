package app

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"civiceye/internal/config"
	"civiceye/internal/imageproc"
	"civiceye/internal/metrics"
	"civiceye/internal/services"
	categorizer "civiceye/pkg/categorizer"
)

// Version is the service version reported by GET / and the version command.
const Version = "1.0.0"

type App struct {
	Config *config.Config

	Classifier categorizer.ReportClassifier
	Catalog    categorizer.CategoryCatalog
	Metrics    *metrics.Metrics

	// --- Initialized Services ---
	ImageProcessor        *imageproc.Processor
	SuggestionService     *services.SuggestionService
	StatsService          *services.StatsService
	CategorizationService *services.CategorizationService
}

func NewApp(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	app := &App{Config: cfg}

	if err := app.initLogging(); err != nil {
		return nil, err
	}
	app.initClassifier()
	app.initMetrics()
	app.initCoreServices()

	log.WithField("categories", len(app.Catalog.Categories())).Info("Application initialization complete.")
	return app, nil
}

// --- Private Helper Methods ---

func (a *App) initLogging() error {
	return ConfigureLogging(a.Config.Log.Level, a.Config.Log.Format)
}

func (a *App) initClassifier() {
	kc := categorizer.NewKeywordClassifier()
	a.Classifier = kc
	a.Catalog = kc
}

func (a *App) initMetrics() {
	a.Metrics = metrics.New()
}

func (a *App) initCoreServices() {
	cfg := a.Config
	a.ImageProcessor = imageproc.New(cfg.Limits.MaxImages, cfg.Limits.MaxImageBytes, cfg.Limits.MaxImagePixels)
	a.SuggestionService = services.NewSuggestionService()
	a.StatsService = services.NewStatsService(cfg.Model.Version, cfg.Model.Accuracy)
	a.CategorizationService = services.NewCategorizationService(
		a.Classifier,
		a.ImageProcessor,
		a.SuggestionService,
		a.StatsService,
		a.Metrics,
		services.Limits{
			MaxTextChars: cfg.Limits.MaxTextChars,
			MaxImages:    cfg.Limits.MaxImages,
		},
	)
}

// ConfigureLogging applies the level and format to the standard logrus logger.
func ConfigureLogging(level, format string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	log.SetLevel(lvl)
	log.SetOutput(os.Stderr)
	if format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}
