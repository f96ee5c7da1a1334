package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfdesk/internal/models"
)

func TestDocumentRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	repo := NewDocumentRepository(db)

	mock.ExpectExec(`(?s)^\s*INSERT\s+INTO\s+documents`).
		WithArgs(sqlmock.AnyArg(), "user-1", "uploads/1_a.pdf", "text", "{}", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	doc := &models.Document{UserID: "user-1", PDFURL: "uploads/1_a.pdf", PDFContent: "text"}
	require.NoError(t, repo.Create(context.Background(), doc))
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, []string{}, doc.ExtractedURLs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	repo := NewDocumentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "pdf_url", "pdf_content", "extracted_urls", "created_at"}).
		AddRow("d1", "u1", "uploads/a.pdf", "see https://a.test", []byte("{https://a.test,https://b.test}"), time.Now()).
		AddRow("d2", "u2", "uploads/b.pdf", "", []byte("{}"), time.Now())
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*user_id.*FROM\s+documents`).WillReturnRows(rows)

	docs, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, docs[0].ExtractedURLs)
	assert.Equal(t, []string{}, docs[1].ExtractedURLs)
}
