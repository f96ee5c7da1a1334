package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"pdfdesk/internal/middleware"
	"pdfdesk/internal/services"
)

// UploadField is the multipart field carrying the PDF.
const UploadField = "pdfUrl"

type DocumentHandler struct {
	docs services.DocumentService
}

func NewDocumentHandler(docs services.DocumentService) *DocumentHandler {
	return &DocumentHandler{docs: docs}
}

// @Summary      Upload PDF
// @Description  Stores the file and records its text and the links found in it
// @Tags         Documents
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        pdfUrl  formData  file  true  "PDF file"
// @Success      200     {object}  map[string]interface{}
// @Failure      400     {object}  handlers.Envelope
// @Failure      500     {object}  handlers.Envelope
// @Router       /document/document [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	var fh *multipart.FileHeader
	if f, err := c.FormFile(UploadField); err == nil {
		fh = f
	}
	doc, err := h.docs.Upload(c.Request.Context(), currentUserID(c), fh)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Document uploaded successfully", gin.H{"data": doc})
}

// @Summary      List documents
// @Tags         Documents
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /document/document [get]
func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.docs.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Fetched documents successfully", gin.H{
		"data":           docs,
		"totalDocuments": len(docs),
	})
}

// @Summary      Generate profile PDF
// @Description  Writes a one page PDF with the caller's token identity
// @Tags         Documents
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  handlers.Envelope
// @Failure      500  {object}  handlers.Envelope
// @Router       /document/document/generate [get]
func (h *DocumentHandler) Generate(c *gin.Context) {
	claims, _ := middleware.ClaimsFromContext(c)
	if _, err := h.docs.GenerateReport(c.Request.Context(), claims); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "PDF generated successfully", nil)
}
