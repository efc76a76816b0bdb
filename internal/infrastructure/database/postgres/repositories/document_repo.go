package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/document"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/monitoring/logging"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/errors"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

// DocumentRepository persists document rows in the documents table.
type DocumentRepository struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

var _ document.Repository = (*DocumentRepository)(nil)

// NewDocumentRepository builds a DocumentRepository on the shared pool.
func NewDocumentRepository(pool *pgxpool.Pool, log logging.Logger) *DocumentRepository {
	return &DocumentRepository{pool: pool, logger: log.Named("document_repo")}
}

func (r *DocumentRepository) GetBySession(ctx context.Context, sessionID common.ID) ([]*document.Document, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, session_id, filename, file_path, content_type, document_type,
		        COALESCE(extracted_text, ''), uploaded_at
		   FROM documents
		  WHERE session_id = $1
		  ORDER BY uploaded_at`, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "select session documents")
	}
	defer rows.Close()

	var docs []*document.Document
	for rows.Next() {
		var doc document.Document
		if err := rows.Scan(&doc.ID, &doc.SessionID, &doc.Filename, &doc.FilePath,
			&doc.ContentType, &doc.DocumentType, &doc.ExtractedText, &doc.UploadedAt); err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabaseError, "scan document row")
		}
		docs = append(docs, &doc)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "iterate document rows")
	}
	return docs, nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id common.ID) (*document.Document, error) {
	var doc document.Document
	err := r.pool.QueryRow(ctx,
		`SELECT id, session_id, filename, file_path, content_type, document_type,
		        COALESCE(extracted_text, ''), uploaded_at
		   FROM documents
		  WHERE id = $1`, id).
		Scan(&doc.ID, &doc.SessionID, &doc.Filename, &doc.FilePath,
			&doc.ContentType, &doc.DocumentType, &doc.ExtractedText, &doc.UploadedAt)
	if err == pgx.ErrNoRows {
		return nil, errors.Newf(errors.CodeDocumentNotFound, "document %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "select document")
	}
	return &doc, nil
}

func (r *DocumentRepository) Save(ctx context.Context, doc *document.Document) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO documents
		        (id, session_id, filename, file_path, content_type, document_type,
		         extracted_text, uploaded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8)
		 ON CONFLICT (id) DO UPDATE
		    SET document_type  = EXCLUDED.document_type,
		        extracted_text = EXCLUDED.extracted_text`,
		doc.ID, doc.SessionID, doc.Filename, doc.FilePath, doc.ContentType,
		doc.DocumentType, doc.ExtractedText, doc.UploadedAt)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "save document")
	}
	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id common.ID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "delete document")
	}
	return nil
}

func (r *DocumentRepository) DeleteBySession(ctx context.Context, sessionID common.ID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE session_id = $1`, sessionID)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "delete session documents")
	}
	return nil
}
