package main

import (
	"fmt"
	"log"

	"github.com/pil1/IngridProduction-sub001/internal/cards"
	"github.com/pil1/IngridProduction-sub001/internal/config"
	"github.com/pil1/IngridProduction-sub001/internal/conversation"
	"github.com/pil1/IngridProduction-sub001/internal/domain"
	"github.com/pil1/IngridProduction-sub001/internal/email/noop"
	"github.com/pil1/IngridProduction-sub001/internal/email/ses"
	"github.com/pil1/IngridProduction-sub001/internal/enrich"
	"github.com/pil1/IngridProduction-sub001/internal/extractor"
	"github.com/pil1/IngridProduction-sub001/internal/extractor/claude"
	"github.com/pil1/IngridProduction-sub001/internal/extractor/docai"
	"github.com/pil1/IngridProduction-sub001/internal/extractor/openai"
	"github.com/pil1/IngridProduction-sub001/internal/guardrail"
	"github.com/pil1/IngridProduction-sub001/internal/handler"
	"github.com/pil1/IngridProduction-sub001/internal/port"
	"github.com/pil1/IngridProduction-sub001/internal/repository/postgres"
	"github.com/pil1/IngridProduction-sub001/internal/resolve"
	"github.com/pil1/IngridProduction-sub001/internal/router"
	"github.com/pil1/IngridProduction-sub001/internal/service"
	s3storage "github.com/pil1/IngridProduction-sub001/internal/storage/s3"
	"github.com/pil1/IngridProduction-sub001/internal/validator"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	categoryRepo := postgres.NewCategoryRepo(db)
	vendorRepo := postgres.NewVendorRepo(db)
	contactRepo := postgres.NewContactRepo(db)
	expenseRepo := postgres.NewExpenseRepo(db)
	suggestionRepo := postgres.NewSuggestionRepo(db)
	cardRepo := postgres.NewActionCardRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Extraction providers with multi-provider fallback
	registerExtractionProviders()
	fallback, err := buildExtractor(&cfg.Extractor)
	if err != nil {
		return fmt.Errorf("failed to build extractor chain: %w", err)
	}

	// Web enrichment is optional
	var enricher port.WebEnricher
	if cfg.Enrichment.Enabled {
		enricher, err = enrich.NewHTTPEnricher(&cfg.Enrichment)
		if err != nil {
			return fmt.Errorf("failed to initialize enricher: %w", err)
		}
	}

	// Email sender
	var sender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		sender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.FrontendURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		sender = noop.NewNoopSender()
	}

	// Resolution, validation, and card generation
	resolverOpts := &resolve.Options{
		Enricher:           enricher,
		NewConfidence:      cfg.Pipeline.NewEntityConfidence,
		EnrichedConfidence: cfg.Pipeline.EnrichedConfidence,
	}
	categoryResolver := resolve.NewResolver(domain.EntityKindCategory, resolverOpts)
	vendorResolver := resolve.NewResolver(domain.EntityKindVendor, resolverOpts)
	engine := validator.NewEngine(cfg.Pipeline.LargeAmountThreshold)
	generator := cards.NewGenerator(cfg.Pipeline.AcceptanceThreshold, cfg.Pipeline.CardTTL())

	// Conversation store and guardrail
	convStore := conversation.NewMemoryStore(cfg.Conversation.IdleTTL())
	filter := guardrail.NewFilter(false)

	// Initialize services
	suggestionSvc := service.NewSuggestionService(suggestionRepo, categoryRepo, vendorRepo, sender, cfg.Email.FromAddress)
	pipelineSvc := service.NewPipelineService(
		fallback, s3Client, cfg.S3.Bucket,
		categoryRepo, vendorRepo, cardRepo, convStore,
		categoryResolver, vendorResolver, engine, generator,
		suggestionSvc, cfg.Pipeline.MaxFileSizeMB,
	)
	cardSvc := service.NewCardService(cardRepo, expenseRepo, vendorRepo, contactRepo)
	conversationSvc := service.NewConversationService(convStore, cardRepo, filter)

	// Initialize handlers
	documentH := handler.NewDocumentHandler(pipelineSvc)
	suggestionH := handler.NewSuggestionHandler(suggestionSvc)
	cardH := handler.NewCardHandler(cardSvc)
	conversationH := handler.NewConversationHandler(conversationSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, documentH, suggestionH, cardH, conversationH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func registerExtractionProviders() {
	extractor.RegisterProvider("claude", func(cfg *config.ExtractorProviderConfig) (port.DocumentExtractor, error) {
		return claude.NewExtractor(cfg), nil
	})
	extractor.RegisterProvider("openai", func(cfg *config.ExtractorProviderConfig) (port.DocumentExtractor, error) {
		return openai.NewExtractor(cfg), nil
	})
	extractor.RegisterProvider("docai", func(cfg *config.ExtractorProviderConfig) (port.DocumentExtractor, error) {
		return docai.NewExtractor(cfg)
	})
}

func buildExtractor(cfg *config.ExtractorConfig) (port.DocumentExtractor, error) {
	var extractors []port.DocumentExtractor
	var names []string
	for _, providerCfg := range cfg.Chain() {
		e, err := extractor.NewExtractor(providerCfg)
		if err != nil {
			return nil, err
		}
		extractors = append(extractors, e)
		names = append(names, providerCfg.Provider)
	}
	if len(extractors) == 0 {
		return nil, fmt.Errorf("no extraction providers configured")
	}
	return extractor.NewFallbackExtractor(extractors, names), nil
}
