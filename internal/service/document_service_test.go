package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"car_rental/internal/logger"
	"car_rental/internal/model"
	"car_rental/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(MaxFileSize * 2)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func newDocumentFixture(t *testing.T) (DocumentService, *fakeDocuments, *fakeNotifications, string) {
	profiles := newFakeProfiles(
		&model.Profile{ID: "customerA", Role: model.RoleClient},
		&model.Profile{ID: "customerB", Role: model.RoleClient},
		&model.Profile{ID: "admin1", Role: model.RoleAdmin},
	)
	docs := &fakeDocuments{}
	notifications := &fakeNotifications{}
	notifier := NewNotificationService(notifications, profiles, logger.NewNop())
	dir := t.TempDir()
	return NewDocumentService(docs, NewAccessGuard(profiles), notifier, dir, logger.NewNop()), docs, notifications, dir
}

var licenceRequest = model.CreateDocumentRequest{DocumentType: "drivers_license", DocumentName: "Licence front"}

func TestDocumentService_UploadStoresFile(t *testing.T) {
	svc, docs, _, dir := newDocumentFixture(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "customerA", licenceRequest, fileHeader(t, "scan.PDF", []byte("%PDF-1.4")))
	require.NoError(t, err)
	require.Len(t, docs.rows, 1)
	assert.False(t, doc.IsVerified)

	path, name, err := svc.GetFilePath(ctx, doc.ID, "customerA")
	require.NoError(t, err)
	assert.Equal(t, doc.ID+".pdf", name)
	assert.Equal(t, filepath.Join(dir, "documents", "customerA", name), path)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(content))

	_, _, err = svc.GetFilePath(ctx, doc.ID, "customerB")
	assert.ErrorIs(t, err, ErrNotFound)
	_, _, err = svc.GetFilePath(ctx, doc.ID, "admin1")
	assert.NoError(t, err)
}

func TestDocumentService_UploadRejectsBadFiles(t *testing.T) {
	svc, docs, _, _ := newDocumentFixture(t)
	ctx := context.Background()

	_, err := svc.Upload(ctx, "customerA", licenceRequest, fileHeader(t, "run.exe", []byte("MZ")))
	assert.ErrorIs(t, err, ErrInvalidFileFormat)

	_, err = svc.Upload(ctx, "customerA", licenceRequest, fileHeader(t, "huge.png", make([]byte, MaxFileSize+1)))
	assert.ErrorIs(t, err, ErrFileSizeExceeded)
	assert.Empty(t, docs.rows)
}

func TestDocumentService_CreateAndList(t *testing.T) {
	svc, _, _, _ := newDocumentFixture(t)
	ctx := context.Background()

	req := licenceRequest
	_, err := svc.Create(ctx, "customerA", req)
	assert.ErrorIs(t, err, ErrValidation)

	req.DocumentURL = "https://files.example.com/a.png"
	req.ExpiryDate = ptr("2030-01-01")
	doc, err := svc.Create(ctx, "customerA", req)
	require.NoError(t, err)
	assert.Equal(t, "2030-01-01", *doc.ExpiryDate)

	_, err = svc.Create(ctx, "customerB", req)
	require.NoError(t, err)

	res, err := svc.List(ctx, "customerA", model.DocumentFilters{}, utils.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)

	res, err = svc.List(ctx, "admin1", model.DocumentFilters{}, utils.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)

	// external URLs have no local file to stream
	_, _, err = svc.GetFilePath(ctx, doc.ID, "customerA")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDocumentService_VerifyIsAdminOnly(t *testing.T) {
	svc, docs, notifications, _ := newDocumentFixture(t)
	ctx := context.Background()
	req := licenceRequest
	req.DocumentURL = "https://files.example.com/a.png"
	doc, err := svc.Create(ctx, "customerA", req)
	require.NoError(t, err)

	_, err = svc.Verify(ctx, "customerA", model.VerifyDocumentRequest{ID: doc.ID, IsVerified: ptr(true)})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.False(t, docs.rows[0].IsVerified)

	verified, err := svc.Verify(ctx, "admin1", model.VerifyDocumentRequest{ID: doc.ID, IsVerified: ptr(true), Notes: ptr("looks good")})
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
	assert.Equal(t, "admin1", *verified.VerifiedBy)

	got := notifications.forUser("customerA")
	require.Len(t, got, 1)
	assert.Equal(t, model.NotificationDocumentVerified, got[0].Type)
	assert.Contains(t, got[0].Message, "verified")

	_, err = svc.Verify(ctx, "admin1", model.VerifyDocumentRequest{ID: "missing", IsVerified: ptr(false)})
	assert.ErrorIs(t, err, ErrNotFound)
}
