package main

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/nurpe/fieldops-docs/internal/cache"
	"github.com/nurpe/fieldops-docs/internal/db"
	"github.com/nurpe/fieldops-docs/internal/excel"
	"github.com/nurpe/fieldops-docs/internal/pdf"
	"github.com/nurpe/fieldops-docs/internal/repository"
	"github.com/nurpe/fieldops-docs/internal/service"
	"github.com/nurpe/fieldops-docs/internal/sink"
)

type app struct {
	db    *gorm.DB
	cache *cache.RedisCache
	docs  *service.DocumentService
}

func (a *app) Close() {
	if err := a.cache.Close(); err != nil {
		log.Warn().Err(err).Msg("close cache")
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// buildApp wires the document service. archive overrides DOCS_ARCHIVE_DIR
// when not empty.
func buildApp(archive string) (*app, error) {
	database, err := db.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	documentCache, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}

	layout := pdf.DefaultLayout()
	layout.Size = cfg.Docs.PageSize
	layout.Compress = cfg.Docs.Compress
	pdfGenerator, err := pdf.NewGenerator(pdf.Options{CompanyName: cfg.Docs.CompanyName, Layout: layout}, log)
	if err != nil {
		return nil, fmt.Errorf("init pdf generator: %w", err)
	}

	if archive == "" {
		archive = cfg.Docs.ArchiveDir
	}

	clients := repository.NewClientRepository(database)
	docs := service.NewDocumentService(service.Deps{
		Clients:  clients,
		Orders:   repository.NewOrderRepository(database),
		Sessions: repository.NewWorkSessionRepository(database),
		Budgets:  repository.NewBudgetRepository(database),
		PDF:      pdfGenerator,
		Excel:    excel.NewGenerator(),
		Cache:    documentCache,
		Sink:     sink.NewDir(archive),
		Logo:     service.FileLogo(cfg.Docs.LogoPath),
	}, service.Settings{
		DefaultTaxRate: cfg.Docs.DefaultTaxRate,
		PausePolicy:    cfg.Docs.PausePolicy,
	}, log)

	log.Info().
		Bool("cache", documentCache.Enabled()).
		Str("archive", archive).
		Str("pause_policy", string(cfg.Docs.PausePolicy)).
		Msg("document service ready")
	return &app{db: database, cache: documentCache, docs: docs}, nil
}
