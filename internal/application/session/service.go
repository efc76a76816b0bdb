// Package session implements the session lifecycle use cases: creation,
// data export, and the erasure cascade.
package session

import (
	"context"
	"time"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/analysis"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/document"
	domain "github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/session"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/monitoring/logging"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/errors"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

// BinaryStore erases a session's uploaded binaries from object storage and
// reports how many objects were removed.
type BinaryStore interface {
	DeleteSessionObjects(ctx context.Context, sessionID common.ID) (int, error)
}

// ExportedDocument is the document metadata included in a data export. The
// binary itself is not embedded; exports carry what the platform knows, not
// what the buyer already has.
type ExportedDocument struct {
	ID           common.ID     `json:"id"`
	Filename     string        `json:"filename"`
	DocumentType document.Type `json:"document_type"`
	ContentType  string        `json:"content_type"`
	UploadedAt   time.Time     `json:"uploaded_at"`
}

// Export is the full data-portability payload for one session.
type Export struct {
	Session    *domain.Session    `json:"session"`
	Documents  []ExportedDocument `json:"documents"`
	Analysis   *analysis.Result   `json:"analysis,omitempty"`
	ExportedAt time.Time          `json:"exported_at"`
}

// ErasureReport summarizes what the erasure cascade removed.
type ErasureReport struct {
	Files           int  `json:"files"`
	Documents       int  `json:"documents"`
	AnalysisRemoved bool `json:"analysis_removed"`
}

// Service owns the session lifecycle.
type Service struct {
	sessions     domain.Repository
	documents    document.Repository
	analysisRepo analysis.Repository
	storage      BinaryStore
	logger       logging.Logger
}

// NewService wires a session Service.
func NewService(
	sessions domain.Repository,
	documents document.Repository,
	analysisRepo analysis.Repository,
	storage BinaryStore,
	log logging.Logger,
) *Service {
	return &Service{
		sessions:     sessions,
		documents:    documents,
		analysisRepo: analysisRepo,
		storage:      storage,
		logger:       log.Named("session_service"),
	}
}

// Create starts a fresh anonymous session.
func (s *Service) Create(ctx context.Context) (*domain.Session, error) {
	sess := domain.New()
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	s.logger.Info("session created", logging.String("session_id", sess.ID.String()))
	return sess, nil
}

// Get returns the session, or a CodeNotFound error.
func (s *Service) Get(ctx context.Context, id common.ID) (*domain.Session, error) {
	return s.sessions.Get(ctx, id)
}

// ExportData collects everything stored for a session into one portable
// payload. A session without an analysis exports with a nil Analysis.
func (s *Service) ExportData(ctx context.Context, id common.ID) (*Export, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	docs, err := s.documents.GetBySession(ctx, id)
	if err != nil {
		return nil, err
	}
	exported := make([]ExportedDocument, 0, len(docs))
	for _, doc := range docs {
		exported = append(exported, ExportedDocument{
			ID:           doc.ID,
			Filename:     doc.Filename,
			DocumentType: doc.DocumentType,
			ContentType:  doc.ContentType,
			UploadedAt:   doc.UploadedAt,
		})
	}

	export := &Export{
		Session:    sess,
		Documents:  exported,
		ExportedAt: time.Now().UTC(),
	}

	result, err := s.analysisRepo.GetBySession(ctx, id)
	switch {
	case err == nil:
		export.Analysis = result
	case errors.IsCode(err, errors.CodeAnalysisNotFound):
		// Nothing analyzed yet.
	default:
		return nil, err
	}

	return export, nil
}

// Erase removes everything derived from a session: object storage binaries,
// document rows, the analysis result, and the session row itself. Storage is
// swept first so a partial failure can be retried; the session row goes last
// because its removal makes the session unreachable.
func (s *Service) Erase(ctx context.Context, id common.ID) (*ErasureReport, error) {
	if _, err := s.sessions.Get(ctx, id); err != nil {
		return nil, err
	}

	report := &ErasureReport{}

	docs, err := s.documents.GetBySession(ctx, id)
	if err != nil {
		return nil, err
	}

	files, err := s.storage.DeleteSessionObjects(ctx, id)
	report.Files = files
	if err != nil {
		return nil, err
	}

	if err := s.documents.DeleteBySession(ctx, id); err != nil {
		return nil, err
	}
	report.Documents = len(docs)

	switch _, err := s.analysisRepo.GetBySession(ctx, id); {
	case err == nil:
		if err := s.analysisRepo.DeleteBySession(ctx, id); err != nil {
			return nil, err
		}
		report.AnalysisRemoved = true
	case !errors.IsCode(err, errors.CodeAnalysisNotFound):
		return nil, err
	}

	if err := s.sessions.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("session erased",
		logging.String("session_id", id.String()),
		logging.Int("files", report.Files),
		logging.Int("documents", report.Documents))
	return report, nil
}
