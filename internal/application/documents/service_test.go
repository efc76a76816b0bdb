package documents

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/document"
	domain "github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/session"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/monitoring/logging"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/errors"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// Mocks
// ─────────────────────────────────────────────────────────────────────────────

type mockSessionRepo struct {
	sessions map[common.ID]*domain.Session
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[common.ID]*domain.Session)}
}

func (m *mockSessionRepo) Create(ctx context.Context, sess *domain.Session) error {
	m.sessions[sess.ID] = sess
	return nil
}

func (m *mockSessionRepo) Get(ctx context.Context, id common.ID) (*domain.Session, error) {
	sess, ok := m.sessions[id]
	if !ok {
		return nil, errors.Newf(errors.CodeNotFound, "session %s not found", id)
	}
	return sess, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, id common.ID) error {
	delete(m.sessions, id)
	return nil
}

type mockDocRepo struct {
	docs    map[common.ID]*document.Document
	deleted []common.ID
}

func newMockDocRepo() *mockDocRepo {
	return &mockDocRepo{docs: make(map[common.ID]*document.Document)}
}

func (m *mockDocRepo) GetBySession(ctx context.Context, sessionID common.ID) ([]*document.Document, error) {
	var out []*document.Document
	for _, doc := range m.docs {
		if doc.SessionID == sessionID {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (m *mockDocRepo) GetByID(ctx context.Context, id common.ID) (*document.Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, errors.Newf(errors.CodeDocumentNotFound, "document %s not found", id)
	}
	return doc, nil
}

func (m *mockDocRepo) Save(ctx context.Context, doc *document.Document) error {
	m.docs[doc.ID] = doc
	return nil
}

func (m *mockDocRepo) Delete(ctx context.Context, id common.ID) error {
	delete(m.docs, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockDocRepo) DeleteBySession(ctx context.Context, sessionID common.ID) error {
	for id, doc := range m.docs {
		if doc.SessionID == sessionID {
			delete(m.docs, id)
		}
	}
	return nil
}

type mockStorage struct {
	objects  map[string][]byte
	storeErr error
	deleted  []string
}

func newMockStorage() *mockStorage {
	return &mockStorage{objects: make(map[string][]byte)}
}

func (m *mockStorage) Store(ctx context.Context, path, contentType string, content io.Reader, size int64) error {
	if m.storeErr != nil {
		return m.storeErr
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	m.objects[path] = data
	return nil
}

func (m *mockStorage) Retrieve(ctx context.Context, path string) ([]byte, error) {
	data, ok := m.objects[path]
	if !ok {
		return nil, errors.New(errors.CodeDocumentNotFound, "object not found")
	}
	return data, nil
}

func (m *mockStorage) Delete(ctx context.Context, path string) error {
	delete(m.objects, path)
	m.deleted = append(m.deleted, path)
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Fixture
// ─────────────────────────────────────────────────────────────────────────────

type fixture struct {
	sessions *mockSessionRepo
	docs     *mockDocRepo
	storage  *mockStorage
	svc      *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		sessions: newMockSessionRepo(),
		docs:     newMockDocRepo(),
		storage:  newMockStorage(),
	}
	f.svc = NewService(f.sessions, f.docs, f.storage, 25<<20, logging.NewNopLogger())
	return f
}

func (f *fixture) seedSession(t *testing.T) *domain.Session {
	t.Helper()
	sess := domain.New()
	require.NoError(t, f.sessions.Create(context.Background(), sess))
	return sess
}

// ─────────────────────────────────────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────────────────────────────────────

func TestUpload(t *testing.T) {
	f := newFixture(t)
	sess := f.seedSession(t)

	doc, err := f.svc.Upload(context.Background(), sess.ID, "koopakte.pdf", "purchase_agreement", []byte("%PDF-1.7"))
	require.NoError(t, err)

	assert.Equal(t, sess.ID, doc.SessionID)
	assert.Equal(t, "koopakte.pdf", doc.Filename)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, document.TypePurchaseAgreement, doc.DocumentType)
	assert.Equal(t, document.ObjectPath(sess.ID, doc.ID, "koopakte.pdf"), doc.FilePath)
	assert.False(t, doc.UploadedAt.IsZero())

	assert.Equal(t, []byte("%PDF-1.7"), f.storage.objects[doc.FilePath])
	saved, err := f.docs.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc, saved)
}

func TestUploadUnknownTypeLabelFallsBackToOther(t *testing.T) {
	f := newFixture(t)
	sess := f.seedSession(t)

	doc, err := f.svc.Upload(context.Background(), sess.ID, "listing.html", "funda_page", []byte("<html></html>"))
	require.NoError(t, err)
	assert.Equal(t, document.TypeOther, doc.DocumentType)
	assert.Equal(t, "text/html", doc.ContentType)
}

func TestUploadUnknownSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Upload(context.Background(), common.NewID(), "a.pdf", "", []byte("x"))
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))
}

func TestUploadEmptyFile(t *testing.T) {
	f := newFixture(t)
	sess := f.seedSession(t)

	_, err := f.svc.Upload(context.Background(), sess.ID, "a.pdf", "", nil)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
}

func TestUploadTooLarge(t *testing.T) {
	f := newFixture(t)
	f.svc = NewService(f.sessions, f.docs, f.storage, 8, logging.NewNopLogger())
	sess := f.seedSession(t)

	_, err := f.svc.Upload(context.Background(), sess.ID, "a.pdf", "", []byte("123456789"))
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
}

func TestUploadUnsupportedExtension(t *testing.T) {
	f := newFixture(t)
	sess := f.seedSession(t)

	_, err := f.svc.Upload(context.Background(), sess.ID, "photo.JPG", "", []byte("xx"))
	assert.True(t, errors.IsCode(err, errors.CodeDocumentUnsupportedType))
	assert.Empty(t, f.storage.objects)
}

func TestUploadStorageFailureSkipsRow(t *testing.T) {
	f := newFixture(t)
	f.storage.storeErr = errors.New(errors.CodeDocumentStorageFailed, "disk gone")
	sess := f.seedSession(t)

	_, err := f.svc.Upload(context.Background(), sess.ID, "a.pdf", "", []byte("xx"))
	assert.True(t, errors.IsCode(err, errors.CodeDocumentStorageFailed))
	assert.Empty(t, f.docs.docs)
}

func TestList(t *testing.T) {
	f := newFixture(t)
	sess := f.seedSession(t)
	other := f.seedSession(t)

	_, err := f.svc.Upload(context.Background(), sess.ID, "a.pdf", "", []byte("a"))
	require.NoError(t, err)
	_, err = f.svc.Upload(context.Background(), other.ID, "b.pdf", "", []byte("b"))
	require.NoError(t, err)

	docs, err := f.svc.List(context.Background(), sess.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a.pdf", docs[0].Filename)
}

func TestContent(t *testing.T) {
	f := newFixture(t)
	sess := f.seedSession(t)
	doc, err := f.svc.Upload(context.Background(), sess.ID, "notes.txt", "", []byte("scheefstand bij de fundering"))
	require.NoError(t, err)

	content, contentType, err := f.svc.Content(context.Background(), sess.ID, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "text/plain", contentType)
	assert.True(t, strings.Contains(string(content), "fundering"))
}

func TestContentWrongSession(t *testing.T) {
	f := newFixture(t)
	sess := f.seedSession(t)
	other := f.seedSession(t)
	doc, err := f.svc.Upload(context.Background(), sess.ID, "a.pdf", "", []byte("a"))
	require.NoError(t, err)

	_, _, err = f.svc.Content(context.Background(), other.ID, doc.ID)
	assert.True(t, errors.IsCode(err, errors.CodeDocumentNotFound))
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	sess := f.seedSession(t)
	doc, err := f.svc.Upload(context.Background(), sess.ID, "a.pdf", "", []byte("a"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), sess.ID, doc.ID))

	assert.Equal(t, []string{doc.FilePath}, f.storage.deleted)
	assert.Equal(t, []common.ID{doc.ID}, f.docs.deleted)
	_, _, err = f.svc.Content(context.Background(), sess.ID, doc.ID)
	assert.True(t, errors.IsCode(err, errors.CodeDocumentNotFound))
}

func TestDeleteUnknownDocument(t *testing.T) {
	f := newFixture(t)
	sess := f.seedSession(t)

	err := f.svc.Delete(context.Background(), sess.ID, common.NewID())
	assert.True(t, errors.IsCode(err, errors.CodeDocumentNotFound))
}
