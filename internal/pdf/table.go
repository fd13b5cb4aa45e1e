package pdf

import "errors"

var ErrColumnMismatch = errors.New("row does not match table columns")

type Column struct {
	Title string
	// Width is a fraction of the content width.
	Width float64
	Align string
}

type Table struct {
	Columns      []Column
	RowHeight    float64
	HeaderHeight float64
	FontSize     float64
}

func (t Table) widths(total float64) []float64 {
	result := make([]float64, len(t.Columns))
	for i, col := range t.Columns {
		result[i] = col.Width * total
	}
	return result
}

// DrawTable renders the header and rows. After a page break in the middle of
// the rows the header row is drawn again at the top of the new page.
func (w *PageWriter) DrawTable(t Table, rows [][]string) error {
	for _, row := range rows {
		if len(row) != len(t.Columns) {
			return ErrColumnMismatch
		}
	}

	w.EnsureSpace(t.HeaderHeight + t.RowHeight)
	if err := w.tableHeader(t); err != nil {
		return err
	}

	for i, row := range rows {
		if w.EnsureSpace(t.RowHeight) {
			if err := w.tableHeader(t); err != nil {
				return err
			}
		}
		fill := i%2 == 1
		err := w.WriteBlock(t.RowHeight, func(x, y, width float64) {
			w.SetFont("", t.FontSize)
			w.pdf.SetFillColor(245, 245, 245)
			cx := x
			for c, cw := range t.widths(width) {
				w.pdf.SetXY(cx, y)
				text := w.Fit(row[c], cw-2)
				w.pdf.CellFormat(cw, t.RowHeight, text, "B", 0, t.Columns[c].Align, fill, 0, "")
				cx += cw
			}
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (w *PageWriter) tableHeader(t Table) error {
	return w.WriteBlock(t.HeaderHeight, func(x, y, width float64) {
		w.SetFont("B", t.FontSize)
		w.pdf.SetFillColor(225, 232, 240)
		cx := x
		for c, cw := range t.widths(width) {
			w.pdf.SetXY(cx, y)
			w.pdf.CellFormat(cw, t.HeaderHeight, w.tr(t.Columns[c].Title), "1", 0, t.Columns[c].Align, true, 0, "")
			cx += cw
		}
	})
}
