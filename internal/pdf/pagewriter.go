package pdf

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	fontFamily = "Helvetica"
	pageStamp  = "Página %d/%d"
)

var ErrSealed = errors.New("document already sealed")

// Layout describes the page geometry in millimetres.
type Layout struct {
	Orientation string
	Size        string
	Margin      float64
	// MinSpace is the space reserved at the bottom of each page for the page stamp.
	MinSpace float64
	Compress bool
}

func DefaultLayout() Layout {
	return Layout{
		Orientation: "P",
		Size:        "A4",
		Margin:      15,
		MinSpace:    12,
		Compress:    true,
	}
}

// PageWriter keeps a vertical cursor over a gofpdf document and breaks pages
// before a block would run into the bottom margin. Layout is a single top to
// bottom pass; page numbers are stamped when the writer is sealed.
type PageWriter struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	layout Layout
	header func(w *PageWriter)

	pageWidth  float64
	pageHeight float64
	y          float64
	sealed     bool
	headers    int
}

func NewPageWriter(layout Layout, header func(w *PageWriter)) *PageWriter {
	doc := gofpdf.New(layout.Orientation, "mm", layout.Size, "")
	doc.SetMargins(layout.Margin, layout.Margin, layout.Margin)
	doc.SetAutoPageBreak(false, layout.Margin)
	doc.SetCompression(layout.Compress)
	doc.SetFont(fontFamily, "", 10)

	w, h := doc.GetPageSize()
	return &PageWriter{
		pdf:        doc,
		tr:         doc.UnicodeTranslatorFromDescriptor(""),
		layout:     layout,
		header:     header,
		pageWidth:  w,
		pageHeight: h,
	}
}

// PDF exposes the underlying document for drawing inside a block.
func (w *PageWriter) PDF() *gofpdf.Fpdf {
	return w.pdf
}

func (w *PageWriter) Left() float64 {
	return w.layout.Margin
}

func (w *PageWriter) ContentWidth() float64 {
	return w.pageWidth - 2*w.layout.Margin
}

func (w *PageWriter) Y() float64 {
	return w.y
}

func (w *PageWriter) PageCount() int {
	return w.pdf.PageCount()
}

// HeaderCount reports how many times the per-page header has been drawn.
func (w *PageWriter) HeaderCount() int {
	return w.headers
}

func (w *PageWriter) bottom() float64 {
	return w.pageHeight - w.layout.Margin - w.layout.MinSpace
}

func (w *PageWriter) Remaining() float64 {
	if w.pdf.PageCount() == 0 {
		return 0
	}
	return w.bottom() - w.y
}

// NewPage starts a page, resets the cursor and repeats the header.
func (w *PageWriter) NewPage() {
	if w.sealed {
		return
	}
	w.pdf.AddPage()
	w.y = w.layout.Margin
	if w.header != nil {
		w.headers++
		w.header(w)
	}
}

// EnsureSpace starts a new page when fewer than height millimetres remain.
// It reports whether a break happened.
func (w *PageWriter) EnsureSpace(height float64) bool {
	if w.pdf.PageCount() == 0 {
		w.NewPage()
		return true
	}
	if w.Remaining() < height {
		w.NewPage()
		return true
	}
	return false
}

// WriteBlock reserves height on the current page (breaking first if needed),
// lets draw paint at the block's origin and advances the cursor.
func (w *PageWriter) WriteBlock(height float64, draw func(x, y, width float64)) error {
	if w.sealed {
		return ErrSealed
	}
	w.EnsureSpace(height)
	draw(w.Left(), w.y, w.ContentWidth())
	w.y += height
	return w.pdf.Error()
}

// Advance moves the cursor without drawing. Used for headers and spacing.
func (w *PageWriter) Advance(height float64) {
	w.y += height
}

func (w *PageWriter) SetFont(style string, size float64) {
	w.pdf.SetFont(fontFamily, style, size)
}

// Text writes one line of text as a block.
func (w *PageWriter) Text(text string, style string, size, height float64, align string) error {
	return w.WriteBlock(height, func(x, y, width float64) {
		w.SetFont(style, size)
		w.pdf.SetXY(x, y)
		w.pdf.CellFormat(width, height, w.tr(text), "", 0, align, false, 0, "")
	})
}

// TextAt draws text at an absolute position without touching the cursor.
func (w *PageWriter) TextAt(x, y, width, height float64, text, align string) {
	w.pdf.SetXY(x, y)
	w.pdf.CellFormat(width, height, w.tr(text), "", 0, align, false, 0, "")
}

// Paragraph wraps text to the content width; each wrapped line is its own
// block so long paragraphs can continue on the next page.
func (w *PageWriter) Paragraph(text string, size, lineHeight float64) error {
	w.EnsureSpace(lineHeight)
	w.SetFont("", size)
	lines := w.pdf.SplitLines([]byte(w.tr(text)), w.ContentWidth())
	for _, line := range lines {
		raw := string(line)
		err := w.WriteBlock(lineHeight, func(x, y, width float64) {
			w.SetFont("", size)
			w.pdf.SetXY(x, y)
			w.pdf.CellFormat(width, lineHeight, raw, "", 0, "L", false, 0, "")
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Rule draws a horizontal line at the cursor.
func (w *PageWriter) Rule(space float64) error {
	return w.WriteBlock(space, func(x, y, width float64) {
		w.pdf.SetDrawColor(160, 160, 160)
		w.pdf.Line(x, y+space/2, x+width, y+space/2)
		w.pdf.SetDrawColor(0, 0, 0)
	})
}

// Fit shortens text until it fits in width, measured with the current font.
func (w *PageWriter) Fit(text string, width float64) string {
	encoded := w.tr(text)
	if w.pdf.GetStringWidth(encoded) <= width {
		return encoded
	}
	const ellipsis = "..."
	cut := []byte(encoded)
	for len(cut) > 0 {
		cut = cut[:len(cut)-1]
		candidate := string(cut) + ellipsis
		if w.pdf.GetStringWidth(candidate) <= width {
			return candidate
		}
	}
	return ""
}

// Seal stamps "Página X/N" on every page and returns the document bytes.
// The writer cannot be drawn on afterwards.
func (w *PageWriter) Seal() ([]byte, error) {
	if w.sealed {
		return nil, ErrSealed
	}
	if w.pdf.PageCount() == 0 {
		w.NewPage()
	}

	total := w.pdf.PageCount()
	stampY := w.pageHeight - w.layout.Margin - 6
	for page := 1; page <= total; page++ {
		w.pdf.SetPage(page)
		// font state is per page stream, so force it to be re-emitted
		w.SetFont("", 7)
		w.SetFont("I", 8)
		w.pdf.SetTextColor(90, 90, 90)
		w.TextAt(w.Left(), stampY, w.ContentWidth(), 6, fmt.Sprintf(pageStamp, page, total), "R")
		w.pdf.SetTextColor(0, 0, 0)
	}
	w.sealed = true

	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
