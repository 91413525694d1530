// Package container provides dependency injection for the fintastic-extract
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"

	"fintastic/extract/internal/batch"
	"fintastic/extract/internal/common"
	"fintastic/extract/internal/config"
	"fintastic/extract/internal/email"
	"fintastic/extract/internal/extract"
	"fintastic/extract/internal/gig"
	"fintastic/extract/internal/logging"
	"fintastic/extract/internal/statement"
	"fintastic/extract/internal/store"
	"fintastic/extract/internal/vocab"
)

// Container holds all application dependencies and provides methods to
// access them. It is immutable after creation: fields are private and only
// reachable through getters, so a wired dependency cannot be swapped out
// behind a component's back.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	vocabulary *vocab.Vocabulary
	parser     *statement.Parser
	processor  *batch.Processor
	classifier *email.Classifier
	detector   *gig.Detector
}

// NewContainer creates and wires all application dependencies. This is the
// main entry point for dependency injection in the application.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Logger first, everything else logs through it
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	logging.SetDefaultLogger(logger)
	vocab.SetLogger(logger)
	common.SetLogger(logger)

	vocabulary, err := vocab.Load(cfg.Vocab.File)
	if err != nil {
		return nil, fmt.Errorf("error loading vocabulary: %w", err)
	}

	parser := statement.NewParser(vocabulary, statement.Options{
		AmountStrategy: extract.Strategy(cfg.Extract.AmountStrategy),
		MaxPages:       cfg.Extract.MaxPages,
		MaxTextLength:  cfg.Extract.MaxTextLength,
	}, logger)

	classifier, err := email.NewClassifier(vocabulary, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating email classifier: %w", err)
	}

	c := &Container{
		logger:     logger,
		config:     cfg,
		vocabulary: vocabulary,
		parser:     parser,
		processor:  batch.NewProcessor(parser, logger),
		classifier: classifier,
		detector:   gig.NewDetector(vocabulary, logger),
	}

	logger.Info("Container initialized successfully",
		logging.Field{Key: "amount_strategy", Value: cfg.Extract.AmountStrategy},
		logging.Field{Key: "vocab_file", Value: cfg.Vocab.File})
	return c, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetVocabulary returns the loaded keyword vocabulary.
func (c *Container) GetVocabulary() *vocab.Vocabulary {
	return c.vocabulary
}

// GetParser returns the statement parser.
func (c *Container) GetParser() *statement.Parser {
	return c.parser
}

// GetProcessor returns the batch directory processor.
func (c *Container) GetProcessor() *batch.Processor {
	return c.processor
}

// GetClassifier returns the email classifier.
func (c *Container) GetClassifier() *email.Classifier {
	return c.classifier
}

// GetDetector returns the gig worker detector.
func (c *Container) GetDetector() *gig.Detector {
	return c.detector
}

// OpenStore opens the candidate database configured in store.path. The
// caller owns the returned store and must close it.
func (c *Container) OpenStore() (*store.Store, error) {
	return store.Open(c.config.Store.Path, c.logger)
}
