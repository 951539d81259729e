package main

import (
	"log"

	"go.uber.org/zap"

	"folio/api"
	"folio/config"
	"folio/document"
	"folio/ocr"
	"folio/pipeline"
	"folio/store"
	"folio/textlayer"
	"folio/transcript"
)

func main() {
	// =========
	// Config
	// =========
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// =========
	// Logging
	// =========
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// =========
	// Run journal
	// =========
	runs, err := store.Open(cfg.StorePath)
	if err != nil {
		log.Fatalf("Failed to open run store: %v", err)
	}
	defer runs.Close()

	// =========
	// Text layer
	// =========
	native := textlayer.NewClient(textlayer.NewLedongthucExtractor())

	// =========
	// Document loader
	// =========
	loader := document.NewFitzLoader(native, cfg.EnhancePages, logger)

	// =========
	// OCR engine
	// =========
	engine := ocr.NewTesseractEngine(logger)

	// =========
	// Persister
	// =========
	persister := transcript.NewPersister(cfg.OutputDir, logger)

	// =========
	// Pipeline
	// =========
	pipe := pipeline.New(loader, engine, native, persister, runs, pipeline.Options{
		Scale:            cfg.RenderScale,
		Languages:        cfg.Languages,
		Workers:          cfg.Workers,
		PreferNativeText: cfg.PreferNativeText,
	}, logger)

	// =========
	// HTTP shell
	// =========
	server := api.NewServer(pipe, cfg.AppPort, logger)
	if err := server.Start(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
