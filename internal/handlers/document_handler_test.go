package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfdesk/internal/handlers"
	"pdfdesk/internal/models"
	"pdfdesk/internal/services"
)

// stubDocs stands in for the document service behind DocumentHandler.
type stubDocs struct {
	uploaded *multipart.FileHeader
	docs     []*models.Document
	err      error
}

func (s *stubDocs) Upload(_ context.Context, _ string, fh *multipart.FileHeader) (*models.Document, error) {
	s.uploaded = fh
	if s.err != nil {
		return nil, s.err
	}
	return &models.Document{ID: "d1", ExtractedURLs: []string{}}, nil
}

func (s *stubDocs) List(context.Context) ([]*models.Document, error) { return s.docs, s.err }

func (s *stubDocs) GenerateReport(context.Context, *models.Claims) (string, error) {
	return "uploads/report.pdf", s.err
}

func docRouter(docs services.DocumentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewDocumentHandler(docs)
	r := gin.New()
	r.POST("/document", h.Upload)
	r.GET("/document", h.List)
	r.GET("/document/generate", h.Generate)
	return r
}

func call(t *testing.T, r *gin.Engine, method, path string) (int, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func TestDocumentHandler_ListFromService(t *testing.T) {
	stub := &stubDocs{docs: []*models.Document{{ID: "a"}, {ID: "b"}}}

	code, body := call(t, docRouter(stub), "GET", "/document")
	assert.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 2, body["totalDocuments"])
}

func TestDocumentHandler_UploadWithoutFile(t *testing.T) {
	stub := &stubDocs{}

	code, body := call(t, docRouter(stub), "POST", "/document")
	assert.Equal(t, http.StatusOK, code)
	assert.Nil(t, stub.uploaded, "a missing form file reaches the service as nil")
	assert.Equal(t, "d1", body["data"].(map[string]any)["id"])
}

func TestDocumentHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		method  string
		path    string
		code    int
		message string
	}{
		{
			name:   "validation on upload",
			err:    &services.Error{Kind: services.KindValidation, Message: "Document is required"},
			method: "POST", path: "/document",
			code: http.StatusBadRequest, message: "Document is required",
		},
		{
			name:   "dependency on list",
			err:    &services.Error{Kind: services.KindDependency, Message: "Failed to fetch documents", Err: errors.New("db down")},
			method: "GET", path: "/document",
			code: http.StatusInternalServerError, message: "Failed to fetch documents",
		},
		{
			name:   "untyped error on generate",
			err:    errors.New("boom"),
			method: "GET", path: "/document/generate",
			code: http.StatusInternalServerError, message: "Internal server error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := call(t, docRouter(&stubDocs{err: tt.err}), tt.method, tt.path)
			assert.Equal(t, tt.code, code)
			assert.EqualValues(t, tt.code, body["status"])
			assert.Equal(t, tt.message, body["message"])
			assert.NotContains(t, body["message"], "db down")
		})
	}
}
