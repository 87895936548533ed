package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pil1/IngridProduction-sub001/internal/cards"
	"github.com/pil1/IngridProduction-sub001/internal/classify"
	"github.com/pil1/IngridProduction-sub001/internal/domain"
	"github.com/pil1/IngridProduction-sub001/internal/normalize"
	"github.com/pil1/IngridProduction-sub001/internal/port"
	"github.com/pil1/IngridProduction-sub001/internal/resolve"
	"github.com/pil1/IngridProduction-sub001/internal/validator"
)

const degradedConfidence = 0.5

// ProcessInput is one uploaded document plus its request metadata.
type ProcessInput struct {
	Filename       string
	ContentType    string
	FileBytes      []byte
	ConversationID *string
}

// ProcessResult is the full pipeline output for one document.
type ProcessResult struct {
	Analysis    *domain.DocumentAnalysis `json:"analysis"`
	Matches     []domain.EntityMatch     `json:"matches,omitempty"`
	Cards       []domain.ActionCard      `json:"cards,omitempty"`
	Suggestions []domain.SuggestedEntity `json:"suggestions,omitempty"`
	Degraded    bool                     `json:"degraded,omitempty"`
}

// PipelineService runs the document pipeline: validate, archive, extract,
// normalize, resolve, validate, and generate action cards.
type PipelineService struct {
	extractor        port.DocumentExtractor
	storage          port.ObjectStorage
	bucket           string
	categoryRepo     port.CategoryRepository
	vendorRepo       port.VendorRepository
	cardRepo         port.ActionCardRepository
	convStore        port.ConversationStore
	categoryResolver *resolve.Resolver
	vendorResolver   *resolve.Resolver
	engine           *validator.Engine
	generator        *cards.Generator
	suggestions      *SuggestionService
	maxFileSize      int64
}

// NewPipelineService wires the pipeline. storage may be nil (archiving is
// best-effort); convStore may be nil when the conversational front end is off.
func NewPipelineService(
	extractor port.DocumentExtractor,
	storage port.ObjectStorage,
	bucket string,
	categoryRepo port.CategoryRepository,
	vendorRepo port.VendorRepository,
	cardRepo port.ActionCardRepository,
	convStore port.ConversationStore,
	categoryResolver *resolve.Resolver,
	vendorResolver *resolve.Resolver,
	engine *validator.Engine,
	generator *cards.Generator,
	suggestions *SuggestionService,
	maxFileSizeMB int64,
) *PipelineService {
	return &PipelineService{
		extractor:        extractor,
		storage:          storage,
		bucket:           bucket,
		categoryRepo:     categoryRepo,
		vendorRepo:       vendorRepo,
		cardRepo:         cardRepo,
		convStore:        convStore,
		categoryResolver: categoryResolver,
		vendorResolver:   vendorResolver,
		engine:           engine,
		generator:        generator,
		suggestions:      suggestions,
		maxFileSize:      maxFileSizeMB * 1024 * 1024,
	}
}

// ProcessDocument runs the full pipeline for one upload. Input validation is
// fail-fast: no provider call happens for a rejected file.
func (s *PipelineService) ProcessDocument(ctx context.Context, sec domain.SecurityContext, input ProcessInput) (*ProcessResult, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	s.archive(ctx, sec, input)

	raw, err := s.extractor.Extract(ctx, port.ExtractInput{
		FileBytes:   input.FileBytes,
		ContentType: input.ContentType,
	})
	if err != nil {
		// Degraded path: classification from the filename alone, no fields.
		log.Printf("service.PipelineService: extraction failed for %s: %v", input.Filename, err)
		docType, _ := classify.Detect(input.Filename, input.ContentType, "")
		analysis := &domain.DocumentAnalysis{
			DocumentType: docType,
			Fields:       map[string]domain.ExtractedField{},
			Confidence:   degradedConfidence,
			Warnings:     []string{"extraction unavailable; manual entry required"},
		}
		s.appendConversationSummary(ctx, input.ConversationID, analysis, nil)
		return &ProcessResult{Analysis: analysis, Degraded: true}, nil
	}

	docType, typeConf := classify.Detect(input.Filename, input.ContentType, raw.Text)
	fields := normalize.Normalize(raw, docType)

	analysis := &domain.DocumentAnalysis{
		DocumentType: docType,
		Fields:       fields,
		Confidence:   combineConfidence(typeConf, normalize.OverallConfidence(fields)),
	}

	outcome := s.engine.Validate(analysis)
	analysis.Fields = outcome.Fields
	analysis.Warnings = append(analysis.Warnings, outcome.Warnings...)

	matches := s.resolveEntities(ctx, sec, analysis)

	generated, err := s.generator.Generate(analysis, matches, sec)
	if err != nil {
		return nil, fmt.Errorf("generating action cards: %w", err)
	}
	for i := range generated {
		generated[i].ConversationID = input.ConversationID
	}
	if len(generated) > 0 && s.cardRepo != nil {
		if err := s.cardRepo.CreateBatch(ctx, generated); err != nil {
			return nil, fmt.Errorf("persisting action cards: %w", err)
		}
	}

	suggestions := s.proposeSuggestions(ctx, sec, matches)

	s.appendConversationSummary(ctx, input.ConversationID, analysis, generated)

	return &ProcessResult{
		Analysis:    analysis,
		Matches:     matches,
		Cards:       generated,
		Suggestions: suggestions,
	}, nil
}

func (s *PipelineService) validateInput(input ProcessInput) error {
	if len(input.FileBytes) == 0 {
		return domain.ErrEmptyDocument
	}
	if s.maxFileSize > 0 && int64(len(input.FileBytes)) > s.maxFileSize {
		return domain.ErrFileTooLarge
	}
	if _, ok := domain.AllowedContentTypes[input.ContentType]; !ok {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(input.Filename)), ".")
		if _, ok := domain.AllowedExtensions[ext]; !ok {
			return domain.ErrUnsupportedFileType
		}
	}
	return nil
}

// archive stores the original upload. Failures are logged, never fatal.
func (s *PipelineService) archive(ctx context.Context, sec domain.SecurityContext, input ProcessInput) {
	if s.storage == nil || s.bucket == "" {
		return
	}
	key := fmt.Sprintf("%s/%s/%s", sec.CompanyID, time.Now().UTC().Format("2006/01/02"), uuid.NewString()+filepath.Ext(input.Filename))
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Body:        bytes.NewReader(input.FileBytes),
		ContentType: input.ContentType,
		Size:        int64(len(input.FileBytes)),
	})
	if err != nil {
		log.Printf("service.PipelineService: archiving %s failed: %v", input.Filename, err)
	}
}

// resolveEntities runs the match cascade for the vendor and category names on
// financial documents. Business cards have nothing to resolve.
func (s *PipelineService) resolveEntities(ctx context.Context, sec domain.SecurityContext, analysis *domain.DocumentAnalysis) []domain.EntityMatch {
	if analysis.DocumentType == domain.DocumentTypeBusinessCard {
		return nil
	}

	var matches []domain.EntityMatch

	if name := analysis.Field(domain.FieldVendorName).Value; name != "" {
		vendors, err := s.vendorRepo.ListByCompany(ctx, sec.CompanyID)
		if err != nil {
			log.Printf("service.PipelineService: listing vendors: %v", err)
		} else {
			refs := make([]resolve.ReferenceEntity, len(vendors))
			for i, v := range vendors {
				refs[i] = resolve.ReferenceEntity{ID: v.ID, Name: v.Name}
			}
			if m := s.vendorResolver.Resolve(ctx, name, refs); m != nil {
				matches = append(matches, *m)
			}
		}
	}

	if name := analysis.Field(domain.FieldCategory).Value; name != "" {
		categories, err := s.categoryRepo.ListByCompany(ctx, sec.CompanyID)
		if err != nil {
			log.Printf("service.PipelineService: listing categories: %v", err)
		} else {
			refs := make([]resolve.ReferenceEntity, len(categories))
			for i, c := range categories {
				refs[i] = resolve.ReferenceEntity{ID: c.ID, Name: c.Name}
			}
			if m := s.categoryResolver.Resolve(ctx, name, refs); m != nil {
				matches = append(matches, *m)
			}
		}
	}

	return matches
}

// proposeSuggestions records new-entity proposals for later review. Failures
// here never fail the pipeline; the analysis result is already complete.
func (s *PipelineService) proposeSuggestions(ctx context.Context, sec domain.SecurityContext, matches []domain.EntityMatch) []domain.SuggestedEntity {
	if s.suggestions == nil {
		return nil
	}
	var out []domain.SuggestedEntity
	for i := range matches {
		m := &matches[i]
		if m.MatchType != domain.MatchTypeNew && m.MatchType != domain.MatchTypeWebEnriched {
			continue
		}
		sg, err := s.suggestions.Propose(ctx, sec, m)
		if err != nil {
			log.Printf("service.PipelineService: proposing %s suggestion %q: %v", m.Kind, m.EntityName, err)
			continue
		}
		out = append(out, *sg)
	}
	return out
}

func (s *PipelineService) appendConversationSummary(ctx context.Context, convID *string, analysis *domain.DocumentAnalysis, generated []domain.ActionCard) {
	if s.convStore == nil || convID == nil {
		return
	}
	summary := fmt.Sprintf("Processed a %s (confidence %.0f%%).", analysis.DocumentType, analysis.Confidence*100)
	if len(generated) > 0 {
		summary += fmt.Sprintf(" %d action card(s) await review.", len(generated))
	}
	err := s.convStore.Append(ctx, *convID, domain.ConversationMessage{
		Role:    "assistant",
		Content: summary,
	})
	if err != nil {
		log.Printf("service.PipelineService: appending conversation summary: %v", err)
	}
}

// combineConfidence blends classification and field confidence. Field quality
// dominates; the type signal only nudges.
func combineConfidence(typeConf, fieldConf float64) float64 {
	if fieldConf == 0 {
		return typeConf
	}
	return 0.3*typeConf + 0.7*fieldConf
}
