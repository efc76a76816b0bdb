// Package document implements the document bounded context: the uploaded
// real-estate documents of a session and the contracts for persisting and
// storing them.
package document

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

// Type classifies a document by its real-estate role, as determined by the
// AI gateway's classification call.
type Type string

const (
	TypePurchaseAgreement Type = "purchase_agreement"
	TypeEnergyLabel       Type = "energy_label"
	TypeInspectionReport  Type = "inspection_report"
	TypeHOADocuments      Type = "hoa_documents"
	TypePropertyListing   Type = "property_listing"
	TypeOther             Type = "other"
)

// ParseType converts a raw classification string into a Type, falling back
// to TypeOther for anything unrecognized. Classification output is advisory;
// an unknown label never fails a run.
func ParseType(s string) Type {
	switch Type(s) {
	case TypePurchaseAgreement, TypeEnergyLabel, TypeInspectionReport,
		TypeHOADocuments, TypePropertyListing, TypeOther:
		return Type(s)
	}
	return TypeOther
}

// Document is an uploaded file belonging to an analysis session. The binary
// content lives in object storage under FilePath; ExtractedText is cached on
// the row after the first extraction so re-runs skip the storage round trip.
type Document struct {
	ID            common.ID `json:"id"`
	SessionID     common.ID `json:"session_id"`
	Filename      string    `json:"filename"`
	FilePath      string    `json:"file_path"`
	ContentType   string    `json:"content_type"`
	DocumentType  Type      `json:"document_type"`
	ExtractedText string    `json:"extracted_text,omitempty"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

// ObjectPath builds the canonical object-storage key for a document binary.
// All of a session's binaries share the SessionPrefix so the erasure cascade
// can sweep them with one prefix listing.
func ObjectPath(sessionID, documentID common.ID, filename string) string {
	return fmt.Sprintf("%s%s_%s", SessionPrefix(sessionID), documentID, sanitizeFilename(filename))
}

// SessionPrefix is the object-key prefix holding all of a session's binaries.
func SessionPrefix(sessionID common.ID) string {
	return fmt.Sprintf("sessions/%s/", sessionID)
}

// sanitizeFilename keeps object keys flat and predictable. Path separators
// and control characters in user-supplied filenames are replaced.
func sanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r == '/' || r == '\\':
			b.WriteByte('_')
		case r < 0x20 || r == 0x7f:
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "document"
	}
	return b.String()
}

// Repository persists document rows.
type Repository interface {
	// GetBySession returns the session's documents ordered by upload time.
	GetBySession(ctx context.Context, sessionID common.ID) ([]*Document, error)

	// GetByID returns one document, or a CodeDocumentNotFound error.
	GetByID(ctx context.Context, id common.ID) (*Document, error)

	// Save inserts or updates a document row.
	Save(ctx context.Context, doc *Document) error

	// Delete removes one document row.
	Delete(ctx context.Context, id common.ID) error

	// DeleteBySession removes all document rows for a session.
	DeleteBySession(ctx context.Context, sessionID common.ID) error
}

// Storage stores and retrieves document binaries. Backed by MinIO in
// production; the orchestrator only retrieves.
type Storage interface {
	// Store writes the content under the given object path.
	Store(ctx context.Context, path string, contentType string, content io.Reader, size int64) error

	// Retrieve returns the binary content stored at path.
	Retrieve(ctx context.Context, path string) ([]byte, error)

	// Delete removes the object at path. Deleting a missing object is not
	// an error.
	Delete(ctx context.Context, path string) error
}
