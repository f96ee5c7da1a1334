package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"pdfdesk/internal/models"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) error
	List(ctx context.Context) ([]*models.Document, error)
}

type documentRepository struct{ db *sql.DB }

func NewDocumentRepository(db *sql.DB) DocumentRepository { return &documentRepository{db: db} }

func (r *documentRepository) Create(ctx context.Context, doc *models.Document) error {
	const q = `
		INSERT INTO documents (id, user_id, pdf_url, pdf_content, extracted_urls, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	if doc.ExtractedURLs == nil {
		doc.ExtractedURLs = []string{}
	}
	if _, err := r.db.ExecContext(ctx, q,
		doc.ID,
		doc.UserID,
		doc.PDFURL,
		doc.PDFContent,
		pq.Array(doc.ExtractedURLs),
		doc.CreatedAt,
	); err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

// List returns every document, oldest first. It is intentionally not scoped to
// an owner.
func (r *documentRepository) List(ctx context.Context) ([]*models.Document, error) {
	const q = `SELECT id, user_id, pdf_url, pdf_content, extracted_urls, created_at
			   FROM documents ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	res := make([]*models.Document, 0)
	for rows.Next() {
		var d models.Document
		var urls pq.StringArray
		if err := rows.Scan(&d.ID, &d.UserID, &d.PDFURL, &d.PDFContent, &urls, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("list documents: %w", err)
		}
		d.ExtractedURLs = []string(urls)
		if d.ExtractedURLs == nil {
			d.ExtractedURLs = []string{}
		}
		res = append(res, &d)
	}
	return res, rows.Err()
}
