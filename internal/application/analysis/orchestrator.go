// Package analysis drives the full analysis pipeline: text extraction,
// AI analysis, risk scoring, market enrichment and bidding advice, persisting
// every state transition so callers can poll progress.
package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	domain "github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/analysis"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/bidding"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/document"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/risk"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/monitoring/logging"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/intelligence/gateway"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/errors"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

// TextExtractor pulls plain text out of a stored document binary.
type TextExtractor interface {
	ExtractText(content []byte, contentType string) (string, error)
}

// Enricher runs the market enrichment pass. It never fails; slots it cannot
// fill stay nil.
type Enricher interface {
	Enrich(ctx context.Context, propertyData common.Metadata) common.Metadata
}

// EventPublisher announces completed runs. Publishing is best-effort.
type EventPublisher interface {
	PublishAnalysisCompleted(ctx context.Context, result *domain.Result) error
}

// Metrics records pipeline outcomes.
type Metrics interface {
	ObserveAnalysis(status domain.Status, duration time.Duration)
}

// Orchestrator owns one analysis run end to end.
type Orchestrator struct {
	gateway      gateway.Gateway
	analysisRepo domain.Repository
	docRepo      document.Repository
	storage      document.Storage
	extractor    TextExtractor
	enricher     Enricher
	events       EventPublisher // optional
	metrics      Metrics        // optional
	logger       logging.Logger
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithEventPublisher enables completion events.
func WithEventPublisher(p EventPublisher) Option {
	return func(o *Orchestrator) { o.events = p }
}

// WithMetrics enables pipeline metrics.
func WithMetrics(m Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// NewOrchestrator wires the pipeline dependencies.
func NewOrchestrator(
	gw gateway.Gateway,
	analysisRepo domain.Repository,
	docRepo document.Repository,
	storage document.Storage,
	extractor TextExtractor,
	enricher Enricher,
	log logging.Logger,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		gateway:      gw,
		analysisRepo: analysisRepo,
		docRepo:      docRepo,
		storage:      storage,
		extractor:    extractor,
		enricher:     enricher,
		logger:       log.Named("orchestrator"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes the pipeline for a session. Pipeline failures do not propagate
// as errors: the returned result carries the failed status and message. The
// returned error is non-nil only when the run could not start at all (result
// row not creatable, or the session's analysis is already complete).
func (o *Orchestrator) Run(ctx context.Context, sessionID common.ID) (*domain.Result, error) {
	result, err := o.prepareResult(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	log := o.logger.With(
		logging.String("session_id", sessionID.String()),
		logging.String("analysis_id", result.ID.String()))

	o.runPipeline(ctx, result, log)

	o.persistTerminal(ctx, result, log)
	if o.metrics != nil {
		o.metrics.ObserveAnalysis(result.Status, time.Since(start))
	}
	if result.Status == domain.StatusComplete && o.events != nil {
		if err := o.events.PublishAnalysisCompleted(ctx, result); err != nil {
			log.Warn("failed to publish completion event", logging.Err(err))
		}
	}
	return result, nil
}

// prepareResult loads or creates the session's result row and resets it to
// pending. A completed analysis is never re-run.
func (o *Orchestrator) prepareResult(ctx context.Context, sessionID common.ID) (*domain.Result, error) {
	existing, err := o.analysisRepo.GetBySession(ctx, sessionID)
	switch {
	case err == nil:
		if existing.Status == domain.StatusComplete {
			return nil, errors.New(errors.CodeAnalysisAlreadyComplete,
				"analysis already complete, delete the session to re-analyze")
		}
		// Reset the existing row for a fresh run, keeping its identity.
		fresh := domain.NewResult(sessionID)
		fresh.ID = existing.ID
		fresh.CreatedAt = existing.CreatedAt
		if err := o.analysisRepo.Update(ctx, fresh); err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabaseError, "reset analysis result")
		}
		return fresh, nil
	case errors.IsCode(err, errors.CodeAnalysisNotFound):
		fresh := domain.NewResult(sessionID)
		if err := o.analysisRepo.Create(ctx, fresh); err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabaseError, "create analysis result")
		}
		return fresh, nil
	default:
		return nil, err
	}
}

func (o *Orchestrator) runPipeline(ctx context.Context, result *domain.Result, log logging.Logger) {
	// ── Extraction ───────────────────────────────────────────────────────────
	o.advance(ctx, result, domain.StatusExtracting, log)

	docs, err := o.docRepo.GetBySession(ctx, result.SessionID)
	if err != nil {
		log.Error("failed to load documents", logging.Err(err))
		result.MarkFailed("Failed to load session documents")
		return
	}
	if len(docs) == 0 {
		result.MarkFailed("No documents found for this session")
		return
	}

	allText := o.extractAndClassify(ctx, docs, log)
	if strings.TrimSpace(allText) == "" {
		result.MarkFailed("Could not extract text from any documents")
		return
	}

	// ── AI analysis ──────────────────────────────────────────────────────────
	o.advance(ctx, result, domain.StatusAnalyzing, log)

	findings, err := o.analyze(ctx, result, allText, docs[0].DocumentType)
	if err != nil {
		log.Error("AI analysis failed", logging.Err(err))
		result.MarkFailed(fmt.Sprintf("AI analysis failed: %v", err))
		return
	}

	// ── First-pass scoring ───────────────────────────────────────────────────
	o.advance(ctx, result, domain.StatusScoring, log)

	score := risk.Compute(findings)
	result.RiskScore = &score
	if price, ok := result.AskingPrice(); ok {
		result.BiddingAdvice = bidding.Preliminary(price)
	}

	// ── Enrichment and second-pass scoring ───────────────────────────────────
	if result.HasAddress() {
		o.advance(ctx, result, domain.StatusEnriching, log)
		marketData := o.enricher.Enrich(ctx, result.PropertyData)
		result.MarketData = marketData

		o.advance(ctx, result, domain.StatusScoring, log)
		combined := append(findings, risk.MarketFindings(marketData)...)
		rescored := risk.Compute(combined)
		result.RiskScore = &rescored
		if price, ok := result.AskingPrice(); ok {
			result.BiddingAdvice = bidding.Generate(price, rescored, marketData)
		}
	}

	result.MarkComplete()
}

// extractAndClassify runs per-document extraction and classification in
// upload order. A failing document is logged and skipped; the concatenation
// of the surviving texts is returned.
func (o *Orchestrator) extractAndClassify(ctx context.Context, docs []*document.Document, log logging.Logger) string {
	var sb strings.Builder
	for _, doc := range docs {
		if err := o.processDocument(ctx, doc); err != nil {
			log.Error("failed to process document",
				logging.String("filename", doc.Filename),
				logging.Err(err))
			continue
		}
		fmt.Fprintf(&sb, "\n\n--- %s (%s) ---\n%s", doc.Filename, doc.DocumentType, doc.ExtractedText)
	}
	return sb.String()
}

func (o *Orchestrator) processDocument(ctx context.Context, doc *document.Document) error {
	if doc.ExtractedText == "" {
		content, err := o.storage.Retrieve(ctx, doc.FilePath)
		if err != nil {
			return err
		}
		text, err := o.extractor.ExtractText(content, doc.ContentType)
		if err != nil {
			return err
		}
		doc.ExtractedText = text
		if err := o.docRepo.Save(ctx, doc); err != nil {
			return err
		}
	}

	docType, err := o.gateway.ClassifyDocument(ctx, doc.ExtractedText)
	if err != nil {
		return err
	}
	doc.DocumentType = docType
	return o.docRepo.Save(ctx, doc)
}

// analyze runs the three AI calls of the analyzing phase. Any gateway error
// here is fatal for the run.
func (o *Orchestrator) analyze(ctx context.Context, result *domain.Result, allText string, docType document.Type) ([]risk.Finding, error) {
	propertyData, err := o.gateway.ExtractPropertyData(ctx, allText, docType)
	if err != nil {
		return nil, err
	}
	result.PropertyData = propertyData

	candidates, err := o.gateway.DetectRisks(ctx, allText, docType)
	if err != nil {
		return nil, err
	}
	findings := gateway.FindingsFromCandidates(candidates)

	sw, err := o.gateway.IdentifyStrengthsWeaknesses(ctx, allText, propertyData)
	if err != nil {
		return nil, err
	}
	result.Strengths = sw.Strengths
	result.Weaknesses = sw.Weaknesses
	if result.Strengths == nil {
		result.Strengths = []string{}
	}
	if result.Weaknesses == nil {
		result.Weaknesses = []string{}
	}
	return findings, nil
}

// advance transitions the result and persists the intermediate state.
// Persistence failures on intermediate states are logged, not fatal; the
// terminal persist is the one that matters.
func (o *Orchestrator) advance(ctx context.Context, result *domain.Result, next domain.Status, log logging.Logger) {
	if err := result.Transition(next); err != nil {
		// Transitions are driven by this orchestrator in order; an illegal
		// one is a programming error.
		log.Error("illegal pipeline transition", logging.Err(err))
		return
	}
	if err := o.analysisRepo.Update(ctx, result); err != nil {
		log.Warn("failed to persist pipeline state",
			logging.String("status", string(next)),
			logging.Err(err))
	}
}

// persistTerminal writes the final result, surviving a canceled run context.
func (o *Orchestrator) persistTerminal(ctx context.Context, result *domain.Result, log logging.Logger) {
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := o.analysisRepo.Update(persistCtx, result); err != nil {
		log.Error("failed to persist terminal analysis state",
			logging.String("status", string(result.Status)),
			logging.Err(err))
	}
}
