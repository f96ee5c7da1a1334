package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	pdfread "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrUnreadablePDF is returned when the input cannot be parsed as a PDF.
var ErrUnreadablePDF = errors.New("unreadable pdf")

func init() {
	// pdfcpu would otherwise create a config dir under the user's home.
	api.DisableConfigDir()
}

// TextExtractor pulls the plain text out of every page of a PDF.
type TextExtractor struct{}

func NewTextExtractor() *TextExtractor { return &TextExtractor{} }

func (TextExtractor) ExtractText(data []byte) (string, error) {
	return ExtractText(data)
}

// ExtractText validates data with pdfcpu and then decodes the text of every
// page through the fonts it uses (ToUnicode CMaps, Identity-H, Differences).
// Text objects, line moves and pages are separated by newlines.
func ExtractText(data []byte) (string, error) {
	if err := validate(data); err != nil {
		return "", err
	}
	r, err := openReader(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadablePDF, err)
	}

	var (
		pages  []string
		failed int
	)
	n := r.NumPage()
	for i := 1; i <= n; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := pageText(p)
		if err != nil {
			// text read before the failure is kept
			failed++
		}
		if text != "" {
			pages = append(pages, text)
		}
	}
	if n > 0 && failed == n {
		return "", fmt.Errorf("%w: no page content could be read", ErrUnreadablePDF)
	}
	return strings.Join(pages, "\n"), nil
}

func validate(data []byte) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreadablePDF, err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnreadablePDF, err)
	}
	return nil
}

// openReader converts the reader's panics on malformed input into errors.
func openReader(data []byte) (r *pdfread.Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%v", p)
		}
	}()
	return pdfread.NewReader(bytes.NewReader(data), int64(len(data)))
}

func pageText(p pdfread.Page) (text string, err error) {
	content := p.V.Key("Contents")
	if content.IsNull() {
		return "", nil
	}
	var w textWalker
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%v", rec)
		}
		text = strings.TrimRight(w.out.String(), "\n")
	}()
	w.walk(content, p.Resources(), 0)
	return
}

const (
	// kerning below this (thousandths of an em) inside a TJ array reads as a space
	tjSpaceThreshold = -200
	maxFormDepth     = 8
)

type textWalker struct {
	out   textWriter
	lastY float64
	haveY bool
}

// walk interprets one content stream against its resource dictionary.
// Form XObjects drawn with Do are walked with their own resources.
func (w *textWalker) walk(content, res pdfread.Value, depth int) {
	encoders := map[string]pdfread.TextEncoding{}
	var enc pdfread.TextEncoding
	show := func(raw string) {
		if enc != nil {
			raw = enc.Decode(raw)
		}
		w.out.show(raw)
	}

	pdfread.Interpret(content, func(stk *pdfread.Stack, op string) {
		n := stk.Len()
		args := make([]pdfread.Value, n)
		for i := n - 1; i >= 0; i-- {
			args[i] = stk.Pop()
		}

		switch op {
		case "Tf":
			if n < 2 {
				return
			}
			name := args[0].Name()
			e, ok := encoders[name]
			if !ok {
				e = pdfread.Font{V: res.Key("Font").Key(name)}.Encoder()
				encoders[name] = e
			}
			enc = e
		case "Tj":
			if n > 0 {
				show(args[n-1].RawString())
			}
		case "'", "\"":
			w.out.newline()
			if n > 0 {
				show(args[n-1].RawString())
			}
		case "TJ":
			if n == 0 {
				return
			}
			arr := args[n-1]
			for i := 0; i < arr.Len(); i++ {
				el := arr.Index(i)
				switch el.Kind() {
				case pdfread.String:
					show(el.RawString())
				case pdfread.Integer, pdfread.Real:
					if el.Float64() < tjSpaceThreshold {
						w.out.space()
					}
				}
			}
		case "Td", "TD":
			if n >= 2 && args[1].Float64() != 0 {
				w.out.newline()
			}
		case "Tm":
			if n < 6 {
				return
			}
			y := args[5].Float64()
			if w.haveY && y != w.lastY {
				w.out.newline()
			}
			w.lastY, w.haveY = y, true
		case "T*", "ET":
			w.out.newline()
		case "Do":
			if n == 0 || depth >= maxFormDepth {
				return
			}
			xobj := res.Key("XObject").Key(args[0].Name())
			if xobj.Kind() != pdfread.Stream || xobj.Key("Subtype").Name() != "Form" {
				return
			}
			formRes := xobj.Key("Resources")
			if formRes.IsNull() {
				formRes = res
			}
			w.walk(xobj, formRes, depth+1)
		}
	})
}

type textWriter struct {
	sb strings.Builder
}

func (w *textWriter) show(s string) {
	w.sb.WriteString(s)
}

func (w *textWriter) space() {
	if s := w.sb.String(); s != "" && !strings.HasSuffix(s, " ") && !strings.HasSuffix(s, "\n") {
		w.sb.WriteByte(' ')
	}
}

func (w *textWriter) newline() {
	if s := w.sb.String(); s != "" && !strings.HasSuffix(s, "\n") {
		w.sb.WriteByte('\n')
	}
}

func (w *textWriter) String() string { return w.sb.String() }
