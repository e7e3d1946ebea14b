package config

import (
	"fmt"
	"os"

	"pdf-translate-server/internal/domain"
	"pdf-translate-server/internal/service"
	"pdf-translate-server/internal/store"
	"pdf-translate-server/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config         domain.Config
	Logger         domain.Logger
	SessionStore   domain.SessionStore
	Validator      domain.PDFValidator
	Extractor      domain.TextExtractor
	Translator     domain.DocumentTranslator
	SessionService *service.SessionService
}

// NewContainer creates a new dependency injection container. A missing
// DeepL credential is a fatal startup error.
func NewContainer() (*Container, error) {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	if config.GetDeepLAPIKey() == "" {
		return nil, fmt.Errorf("DEEPL_API_KEY is required")
	}
	if err := os.MkdirAll(config.GetTempDir(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory %s: %w", config.GetTempDir(), err)
	}

	sessionStore := store.NewMemoryStore(appLogger)

	var validator domain.PDFValidator
	if config.StrictValidation() {
		validator = service.NewStrictValidator(appLogger)
	} else {
		validator = service.NewHeaderValidator(appLogger)
	}

	extractor := service.NewPositionExtractor(appLogger)
	translator := service.NewDeepLTranslator(config, appLogger)

	sessionService := service.NewSessionService(
		sessionStore,
		validator,
		extractor,
		translator,
		config.GetTempDir(),
		appLogger,
	)

	return &Container{
		Config:         config,
		Logger:         appLogger,
		SessionStore:   sessionStore,
		Validator:      validator,
		Extractor:      extractor,
		Translator:     translator,
		SessionService: sessionService,
	}, nil
}
