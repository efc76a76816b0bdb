package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/document"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/errors"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

// DocumentService is the slice of the documents application service the HTTP
// layer needs.
type DocumentService interface {
	Upload(ctx context.Context, sessionID common.ID, filename, declaredType string, content []byte) (*document.Document, error)
	List(ctx context.Context, sessionID common.ID) ([]*document.Document, error)
	Content(ctx context.Context, sessionID, documentID common.ID) ([]byte, string, error)
	Delete(ctx context.Context, sessionID, documentID common.ID) error
}

// DocumentMetrics counts successful uploads.
type DocumentMetrics interface {
	ObserveDocumentUploaded()
}

// DocumentHandler serves the per-session document endpoints.
type DocumentHandler struct {
	documents DocumentService
	metrics   DocumentMetrics
	maxBody   int64
}

// NewDocumentHandler wires a DocumentHandler. maxBody caps the multipart
// body in bytes; metrics may be nil.
func NewDocumentHandler(documents DocumentService, metrics DocumentMetrics, maxBody int64) *DocumentHandler {
	return &DocumentHandler{documents: documents, metrics: metrics, maxBody: maxBody}
}

// RegisterRoutes mounts the document endpoints on the API group.
func (h *DocumentHandler) RegisterRoutes(g *gin.RouterGroup) {
	g.POST("/sessions/:sessionID/documents", h.Upload)
	g.GET("/sessions/:sessionID/documents", h.List)
	g.GET("/sessions/:sessionID/documents/:documentID", h.Content)
	g.DELETE("/sessions/:sessionID/documents/:documentID", h.Delete)
}

// Upload handles POST /sessions/:sessionID/documents. The body is multipart
// form data with a "file" part and an optional "document_type" field.
func (h *DocumentHandler) Upload(c *gin.Context) {
	if h.maxBody > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, errors.Wrap(err, errors.CodeInvalidParam,
			`multipart upload requires a "file" part`))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, errors.Wrap(err, errors.CodeInvalidParam, "unreadable upload"))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		respondError(c, errors.Wrap(err, errors.CodeInvalidParam, "unreadable upload"))
		return
	}

	doc, err := h.documents.Upload(c.Request.Context(), sessionID(c),
		fileHeader.Filename, c.PostForm("document_type"), content)
	if err != nil {
		respondError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ObserveDocumentUploaded()
	}
	c.JSON(http.StatusCreated, doc)
}

// ListDocumentsResponse wraps the document listing.
type ListDocumentsResponse struct {
	Documents []*document.Document `json:"documents"`
	Total     int                  `json:"total"`
}

// List handles GET /sessions/:sessionID/documents.
func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.documents.List(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if docs == nil {
		docs = []*document.Document{}
	}
	c.JSON(http.StatusOK, ListDocumentsResponse{Documents: docs, Total: len(docs)})
}

// Content handles GET /sessions/:sessionID/documents/:documentID, serving
// the stored binary back under its original content type.
func (h *DocumentHandler) Content(c *gin.Context) {
	content, contentType, err := h.documents.Content(c.Request.Context(),
		sessionID(c), common.ID(c.Param("documentID")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, content)
}

// Delete handles DELETE /sessions/:sessionID/documents/:documentID.
func (h *DocumentHandler) Delete(c *gin.Context) {
	err := h.documents.Delete(c.Request.Context(),
		sessionID(c), common.ID(c.Param("documentID")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
