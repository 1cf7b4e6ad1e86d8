package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/voyagent/voyagent/src/airports"
	"github.com/voyagent/voyagent/src/config"
	"github.com/voyagent/voyagent/src/groqclient"
	"github.com/voyagent/voyagent/src/mailer"
	"github.com/voyagent/voyagent/src/planner"
	"github.com/voyagent/voyagent/src/storage"
	"github.com/voyagent/voyagent/src/travelapi"
	"github.com/voyagent/voyagent/src/tripagent"
	"github.com/voyagent/voyagent/src/tripquery"
)

// app holds the wired collaborators shared by every command.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	db      *storage.DB
	service *planner.Service
}

// newApp loads configuration and wires the planner service and its
// collaborators from it.
func newApp(cli *CLI) (*app, error) {
	cfg, err := config.NewLoader(config.GetConfigPaths()).Load()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg, cli.LogLevel)

	if cfg.Model.APIKey == "" {
		return nil, fmt.Errorf("no model API key configured, set GROQ_API_KEY or model.api_key")
	}
	if cfg.Search.APIKey == "" {
		return nil, fmt.Errorf("no search API key configured, set SERPAPI_API_KEY or search.api_key")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.DatabasePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	db, err := storage.Open(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	groq, err := groqclient.NewClient(groqclient.Config{
		APIKey:     cfg.Model.APIKey,
		BaseURL:    cfg.Model.BaseURL,
		RetryCount: cfg.Model.MaxRetries,
		RetryDelay: time.Duration(cfg.Model.RetryDelayMs) * time.Millisecond,
		Timeout:    time.Duration(cfg.Model.TimeoutSeconds) * time.Second,
		Logger:     logger,
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	model := groq.Model(cfg.Model.Model)

	search, err := travelapi.NewClient(travelapi.Config{
		APIKey:  cfg.Search.APIKey,
		BaseURL: cfg.Search.BaseURL,
		Timeout: time.Duration(cfg.Search.TimeoutSeconds) * time.Second,
		Logger:  logger,
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	var resolver *airports.Resolver
	if cfg.Search.AirportDataPath != "" {
		resolver, err = airports.NewResolverFromFile(afero.NewOsFs(), cfg.Search.AirportDataPath, logger)
	} else {
		resolver, err = airports.NewResolver(logger)
	}
	if err != nil {
		db.Close()
		return nil, err
	}

	mail, err := mailer.NewClient(mailer.Config{
		APIKey:      cfg.Email.APIKey,
		BaseURL:     cfg.Email.BaseURL,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		Logger:      logger,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("no email API key configured, set SENDGRID_API_KEY or email.api_key: %w", err)
	}

	ag, err := tripagent.NewAgent(model, search, resolver, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	service := planner.NewService(planner.Config{
		DB:        db,
		Agent:     ag,
		Extractor: tripquery.NewExtractor(logger),
		Resolver:  resolver,
		Search:    search,
		Mailer:    mail,
		Currency:  cfg.Search.Currency,
		Logger:    logger,
	})

	return &app{cfg: cfg, logger: logger, db: db, service: service}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}
