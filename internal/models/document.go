package models

import "time"

// Document is an uploaded PDF plus the text and links pulled out of it at upload time.
type Document struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	PDFURL        string    `json:"pdfUrl"`
	PDFContent    string    `json:"pdfContent"`
	ExtractedURLs []string  `json:"extractedUrls"`
	CreatedAt     time.Time `json:"createdAt"`
}
