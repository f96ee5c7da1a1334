package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// FooterTimeLayout renders like "18 October 2026, 09:41 am".
const FooterTimeLayout = "02 January 2006, 03:04 pm"

// UserReport is the content of the single page "User Detail PDF".
type UserReport struct {
	FirstName   string
	LastName    string
	Email       string
	Role        string
	IsVerify    bool
	GeneratedAt time.Time
}

// ReportGenerator writes user reports with gofpdf. With an empty FontPath the
// built-in Helvetica (cp1252) is used, otherwise the TTF is embedded.
type ReportGenerator struct {
	FontPath string
	fontName string
}

func NewReportGenerator(fontPath string) *ReportGenerator {
	name := "Helvetica"
	if fontPath != "" {
		name = "ReportSans"
	}
	return &ReportGenerator{FontPath: fontPath, fontName: name}
}

// WriteUserReport renders r into path. The parent directory is created when
// missing; a failed write may leave a partial file behind.
func (g *ReportGenerator) WriteUserReport(path string, r UserReport) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", g.fontDir())
	pdf.SetTitle("User Detail PDF", true)
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(false, 0)
	tr := g.setupFont(pdf)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	pdf.AddPage()

	pdf.SetFont(g.fontName, "", 20)
	pdf.CellFormat(0, 12, tr("User Detail PDF"), "", 1, "C", false, 0, "")
	pdf.Ln(14)

	pdf.SetFont(g.fontName, "", 14)
	for _, line := range []string{
		"First name: " + orDash(r.FirstName),
		"Last name: " + orDash(r.LastName),
		"Email: " + orDash(r.Email),
		"Role: " + orDash(r.Role),
		"Verification Status: " + strconv.FormatBool(r.IsVerify),
	} {
		pdf.CellFormat(0, 8, tr(line), "", 1, "L", false, 0, "")
	}

	_, pageH := pdf.GetPageSize()
	pdf.SetFont(g.fontName, "", 12)
	pdf.SetXY(18, pageH-18)
	pdf.CellFormat(0, 6, tr("PDF generated: "+r.GeneratedAt.Format(FooterTimeLayout)), "", 0, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func (g *ReportGenerator) setupFont(pdf *gofpdf.Fpdf) func(string) string {
	if g.FontPath == "" {
		return pdf.UnicodeTranslatorFromDescriptor("")
	}
	pdf.AddUTF8Font(g.fontName, "", filepath.Base(g.FontPath))
	return func(s string) string { return s }
}

// fontDir is handed to gofpdf, which joins it with the font file name.
func (g *ReportGenerator) fontDir() string {
	if g.FontPath == "" {
		return ""
	}
	return filepath.Dir(g.FontPath)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
