// Package documents implements the upload use cases: storing a buyer's
// property documents, listing them, serving their binaries back, and
// removing individual uploads.
package documents

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/document"
	sessiondomain "github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/session"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/monitoring/logging"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/errors"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

// contentTypeByExtension maps the accepted upload extensions to the content
// type stored alongside the binary. Extraction dispatches on these values, so
// an extension outside this map is rejected at upload time rather than
// failing mid-analysis.
var contentTypeByExtension = map[string]string{
	".pdf":  "application/pdf",
	".html": "text/html",
	".htm":  "text/html",
	".txt":  "text/plain",
}

// Service owns the document upload lifecycle for a session.
type Service struct {
	sessions  sessiondomain.Repository
	documents document.Repository
	storage   document.Storage
	maxSize   int64
	logger    logging.Logger
}

// NewService wires a documents Service. maxSize caps a single upload in
// bytes.
func NewService(
	sessions sessiondomain.Repository,
	documents document.Repository,
	storage document.Storage,
	maxSize int64,
	log logging.Logger,
) *Service {
	return &Service{
		sessions:  sessions,
		documents: documents,
		storage:   storage,
		maxSize:   maxSize,
		logger:    log.Named("documents_service"),
	}
}

// Upload validates and stores one document: binary to object storage first,
// then the metadata row. A declared documentType is advisory and falls back
// to "other" for unknown labels; classification during analysis may override
// it.
func (s *Service) Upload(
	ctx context.Context,
	sessionID common.ID,
	filename string,
	declaredType string,
	content []byte,
) (*document.Document, error) {
	if _, err := s.sessions.Get(ctx, sessionID); err != nil {
		return nil, err
	}

	if len(content) == 0 {
		return nil, errors.New(errors.CodeInvalidParam, "uploaded file is empty")
	}
	if s.maxSize > 0 && int64(len(content)) > s.maxSize {
		return nil, errors.Newf(errors.CodeInvalidParam,
			"file exceeds the %d MB upload limit", s.maxSize>>20)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := contentTypeByExtension[ext]
	if !ok {
		return nil, errors.Newf(errors.CodeDocumentUnsupportedType,
			"unsupported file type %q; accepted: pdf, html, txt", ext)
	}

	doc := &document.Document{
		ID:           common.NewID(),
		SessionID:    sessionID,
		Filename:     filename,
		ContentType:  contentType,
		DocumentType: document.ParseType(declaredType),
		UploadedAt:   time.Now().UTC(),
	}
	doc.FilePath = document.ObjectPath(sessionID, doc.ID, filename)

	if err := s.storage.Store(ctx, doc.FilePath, contentType,
		bytes.NewReader(content), int64(len(content))); err != nil {
		return nil, err
	}
	if err := s.documents.Save(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document uploaded",
		logging.String("session_id", sessionID.String()),
		logging.String("document_id", doc.ID.String()),
		logging.String("filename", filename),
		logging.Int("bytes", len(content)))
	return doc, nil
}

// List returns the session's documents ordered by upload time.
func (s *Service) List(ctx context.Context, sessionID common.ID) ([]*document.Document, error) {
	if _, err := s.sessions.Get(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.documents.GetBySession(ctx, sessionID)
}

// Content returns the stored binary and its content type. A document that
// exists but belongs to a different session is reported as not found; one
// session must never see another's uploads.
func (s *Service) Content(ctx context.Context, sessionID, documentID common.ID) ([]byte, string, error) {
	doc, err := s.get(ctx, sessionID, documentID)
	if err != nil {
		return nil, "", err
	}
	content, err := s.storage.Retrieve(ctx, doc.FilePath)
	if err != nil {
		return nil, "", err
	}
	return content, doc.ContentType, nil
}

// Delete removes one document: the binary first, then the row. A missing
// binary does not block removing the row.
func (s *Service) Delete(ctx context.Context, sessionID, documentID common.ID) error {
	doc, err := s.get(ctx, sessionID, documentID)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, doc.FilePath); err != nil {
		return err
	}
	if err := s.documents.Delete(ctx, documentID); err != nil {
		return err
	}
	s.logger.Info("document deleted",
		logging.String("session_id", sessionID.String()),
		logging.String("document_id", documentID.String()))
	return nil
}

func (s *Service) get(ctx context.Context, sessionID, documentID common.ID) (*document.Document, error) {
	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.SessionID != sessionID {
		return nil, errors.Newf(errors.CodeDocumentNotFound,
			"document %s not found", documentID)
	}
	return doc, nil
}
