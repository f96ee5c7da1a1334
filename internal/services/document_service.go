package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"go.uber.org/zap"

	"pdfdesk/internal/models"
	"pdfdesk/internal/pdf"
	"pdfdesk/internal/repositories"
)

type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

type ReportWriter interface {
	WriteUserReport(path string, r pdf.UserReport) error
}

type FileStore interface {
	SaveUpload(fh *multipart.FileHeader, at time.Time) (string, error)
	ReadFile(path string) ([]byte, error)
	Path(name string) string
}

type DocumentService interface {
	Upload(ctx context.Context, userID string, fh *multipart.FileHeader) (*models.Document, error)
	List(ctx context.Context) ([]*models.Document, error)
	GenerateReport(ctx context.Context, claims *models.Claims) (string, error)
}

type documentService struct {
	repo      repositories.DocumentRepository
	files     FileStore
	extractor TextExtractor
	reports   ReportWriter
	log       *zap.Logger

	now func() time.Time
}

func NewDocumentService(repo repositories.DocumentRepository, files FileStore, extractor TextExtractor, reports ReportWriter, log *zap.Logger) DocumentService {
	return newDocumentService(repo, files, extractor, reports, log)
}

func newDocumentService(repo repositories.DocumentRepository, files FileStore, extractor TextExtractor, reports ReportWriter, log *zap.Logger) *documentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &documentService{
		repo:      repo,
		files:     files,
		extractor: extractor,
		reports:   reports,
		log:       log,
		now:       time.Now,
	}
}

// Upload stores the file, extracts its text and links and records a Document
// owned by userID.
func (s *documentService) Upload(ctx context.Context, userID string, fh *multipart.FileHeader) (*models.Document, error) {
	if fh == nil {
		return nil, validationError("Document is required")
	}

	path, err := s.files.SaveUpload(fh, s.now())
	if err != nil {
		return nil, dependencyError("Failed to store document", err)
	}
	data, err := s.files.ReadFile(path)
	if err != nil {
		return nil, dependencyError("Failed to read document", err)
	}

	text, err := s.extractor.ExtractText(data)
	if err != nil {
		if errors.Is(err, pdf.ErrUnreadablePDF) {
			return nil, &Error{Kind: KindValidation, Message: "Document is not a readable PDF", Err: err}
		}
		return nil, internalError(err)
	}

	doc := &models.Document{
		UserID:        userID,
		PDFURL:        path,
		PDFContent:    text,
		ExtractedURLs: pdf.ExtractURLs(text),
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, internalError(err)
	}
	s.log.Info("document uploaded",
		zap.String("document_id", doc.ID),
		zap.String("user_id", userID),
		zap.Int("urls", len(doc.ExtractedURLs)))
	return doc, nil
}

// List returns every stored document regardless of owner.
func (s *documentService) List(ctx context.Context) ([]*models.Document, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err)
	}
	return docs, nil
}

// GenerateReport renders the caller's identity, as carried by the token, to
// "<first>_<last>_<unix-ms>.pdf" and returns the written path. Two calls in the
// same millisecond for the same name overwrite each other.
func (s *documentService) GenerateReport(_ context.Context, claims *models.Claims) (string, error) {
	if claims == nil {
		return "", &Error{Kind: KindUnauthorized, Message: "Not authorized to access this route"}
	}
	now := s.now()
	path := s.files.Path(fmt.Sprintf("%s_%s_%d.pdf", claims.FirstName, claims.LastName, now.UnixMilli()))

	err := s.reports.WriteUserReport(path, pdf.UserReport{
		FirstName:   claims.FirstName,
		LastName:    claims.LastName,
		Email:       claims.Email,
		Role:        claims.UserRole,
		IsVerify:    claims.IsVerify,
		GeneratedAt: now,
	})
	if err != nil {
		return "", dependencyError("Failed to generate PDF", err)
	}
	s.log.Info("report generated", zap.String("user_id", claims.UserID), zap.String("path", path))
	return path, nil
}
