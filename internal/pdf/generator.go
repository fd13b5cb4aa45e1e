package pdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nurpe/fieldops-docs/internal/format"
	"github.com/nurpe/fieldops-docs/internal/model"
	"github.com/nurpe/fieldops-docs/internal/pricing"
	"github.com/nurpe/fieldops-docs/internal/workday"
)

const (
	KindBudget       = "Orcamento"
	KindServiceOrder = "OrdemServico"
	KindWorkdays     = "Dias"
)

// Document is a sealed PDF plus a suggested file name.
type Document struct {
	FileName string
	Content  []byte
	Pages    int
}

type Options struct {
	CompanyName string
	Layout      Layout
}

type Generator struct {
	opts Options
	log  zerolog.Logger
	now  func() time.Time
}

func NewGenerator(opts Options, log zerolog.Logger) (*Generator, error) {
	switch strings.ToUpper(opts.Layout.Size) {
	case "A4", "A5", "LETTER", "LEGAL":
	default:
		return nil, fmt.Errorf("unsupported page size %q", opts.Layout.Size)
	}
	if opts.Layout.Margin <= 0 {
		return nil, fmt.Errorf("page margin must be positive")
	}
	return &Generator{opts: opts, log: log, now: time.Now}, nil
}

type BudgetInput struct {
	Budget  model.Budget
	Summary pricing.Summary
	Logo    []byte
}

type OrderInput struct {
	Document model.OrderDocument
	Totals   workday.Totals
	Logo     []byte
}

var budgetTable = Table{
	Columns: []Column{
		{Title: "Descrição", Width: 0.44, Align: "L"},
		{Title: "Tipo", Width: 0.12, Align: "L"},
		{Title: "Qtd.", Width: 0.12, Align: "R"},
		{Title: "Preço unit.", Width: 0.16, Align: "R"},
		{Title: "Total", Width: 0.16, Align: "R"},
	},
	RowHeight:    7,
	HeaderHeight: 8,
	FontSize:     9,
}

var workdayTable = Table{
	Columns: []Column{
		{Title: "Data", Width: 0.24, Align: "L"},
		{Title: "Ida", Width: 0.19, Align: "R"},
		{Title: "Trabalho", Width: 0.19, Align: "R"},
		{Title: "Regresso", Width: 0.19, Align: "R"},
		{Title: "Km", Width: 0.19, Align: "R"},
	},
	RowHeight:    7,
	HeaderHeight: 8,
	FontSize:     9,
}

func (g *Generator) Budget(in BudgetInput) (*Document, error) {
	b := in.Budget
	title := fmt.Sprintf("ORÇAMENTO Nº %d", b.Number)
	w := NewPageWriter(g.opts.Layout, g.header(title, b.CreatedAt, g.logo(in.Logo)))

	w.NewPage()
	if err := g.section(w, "Cliente"); err != nil {
		return nil, err
	}
	lines := []string{
		b.ClientName,
		"NIF: " + format.Value(b.ClientTaxID),
		"Morada: " + format.Value(b.ClientAddr),
	}
	if b.OrderNumber != nil {
		lines = append(lines, fmt.Sprintf("Ordem de serviço: Nº %d", *b.OrderNumber))
	}
	if b.Equipment != "" {
		lines = append(lines, "Equipamento: "+b.Equipment)
	}
	if err := g.lines(w, lines); err != nil {
		return nil, err
	}
	w.Advance(4)

	if err := g.section(w, "Serviços e despesas"); err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(in.Summary.Lines))
	for _, line := range in.Summary.Lines {
		rows = append(rows, []string{
			line.Description,
			kindLabel(line.Kind),
			format.Number(line.Quantity, 2),
			format.Currency(line.UnitPrice),
			format.Currency(line.Total),
		})
	}
	if err := w.DrawTable(budgetTable, rows); err != nil {
		return nil, err
	}
	w.Advance(3)

	totals := [][2]string{{"Subtotal", format.Currency(in.Summary.Subtotal)}}
	if in.Summary.ShowTax {
		totals = append(totals, [2]string{
			fmt.Sprintf("IVA (%s)", format.Percent(in.Summary.TaxRate)),
			format.Currency(in.Summary.TaxAmount),
		})
	}
	totals = append(totals, [2]string{"Total", format.Currency(in.Summary.Total)})
	for i, t := range totals {
		style := ""
		if i == len(totals)-1 {
			style = "B"
		}
		if err := g.amountLine(w, t[0], t[1], style); err != nil {
			return nil, err
		}
	}

	if strings.TrimSpace(b.Notes) != "" {
		w.Advance(4)
		if err := g.section(w, "Observações"); err != nil {
			return nil, err
		}
		if err := w.Paragraph(b.Notes, 10, 5); err != nil {
			return nil, err
		}
	}

	return g.seal(w, KindBudget, b.ClientName, b.Number)
}

func (g *Generator) ServiceOrder(in OrderInput) (*Document, error) {
	doc := in.Document
	order := doc.Order
	title := fmt.Sprintf("ORDEM DE SERVIÇO Nº %d", order.Number)
	w := NewPageWriter(g.opts.Layout, g.header(title, order.CreatedAt, g.logo(in.Logo)))

	w.NewPage()
	if err := g.section(w, "Cliente"); err != nil {
		return nil, err
	}
	if err := g.lines(w, clientLines(doc.Client)); err != nil {
		return nil, err
	}
	w.Advance(3)

	if err := g.section(w, "Equipamento"); err != nil {
		return nil, err
	}
	if err := g.lines(w, []string{
		"Equipamento: " + format.Value(doc.Equipment.Label()),
		"Nº de série: " + format.Value(doc.Equipment.SerialNumber),
		"Descrição: " + format.Value(doc.Equipment.Description),
	}); err != nil {
		return nil, err
	}
	w.Advance(3)

	if err := g.section(w, "Serviço"); err != nil {
		return nil, err
	}
	info := []string{
		"Tipo de serviço: " + format.Value(order.ServiceType),
		"Prioridade: " + priorityLabel(order.Priority),
		"Estado: " + statusLabel(order.Status),
	}
	if order.ClosedAt != nil {
		info = append(info, "Fechada em: "+format.Date(*order.ClosedAt))
	}
	info = append(info, checklistLines(order.Checklist)...)
	if err := g.lines(w, info); err != nil {
		return nil, err
	}
	w.Advance(3)

	if len(in.Totals.Rows) > 0 {
		if err := g.section(w, "Dias de trabalho"); err != nil {
			return nil, err
		}
		rows := make([][]string, 0, len(in.Totals.Rows))
		for _, r := range in.Totals.Rows {
			rows = append(rows, []string{
				format.Date(r.Date),
				r.Outbound,
				r.Work,
				r.Return,
				format.Number(r.DistanceKm, 1),
			})
		}
		if err := w.DrawTable(workdayTable, rows); err != nil {
			return nil, err
		}
		w.Advance(3)
	}

	for _, t := range [][2]string{
		{"Horas de trabalho", format.Hours(in.Totals.WorkHours)},
		{"Horas de viagem", format.Hours(in.Totals.TravelHours)},
		{"Distância total", format.Number(in.Totals.DistanceKm, 1) + " km"},
	} {
		if err := g.amountLine(w, t[0], t[1], "B"); err != nil {
			return nil, err
		}
	}

	for _, block := range [][2]string{{"Resultado", order.Result}, {"Observações", order.Notes}} {
		if strings.TrimSpace(block[1]) == "" {
			continue
		}
		w.Advance(4)
		if err := g.section(w, block[0]); err != nil {
			return nil, err
		}
		if err := w.Paragraph(block[1], 10, 5); err != nil {
			return nil, err
		}
	}

	w.Advance(10)
	w.EnsureSpace(30)
	if err := g.signatureBlock(w, "Técnico", ""); err != nil {
		return nil, err
	}
	if err := g.signatureBlock(w, "Cliente", doc.Client.Name); err != nil {
		return nil, err
	}

	return g.seal(w, KindServiceOrder, doc.Client.Name, order.Number)
}

func (g *Generator) seal(w *PageWriter, kind, client string, number int64) (*Document, error) {
	content, err := w.Seal()
	if err != nil {
		return nil, err
	}
	return &Document{
		FileName: FileName(kind, client, number),
		Content:  content,
		Pages:    w.PageCount(),
	}, nil
}

// logo validates the asset once per document. A broken logo is logged and
// the document is produced without it.
func (g *Generator) logo(data []byte) *Image {
	if len(data) == 0 {
		return nil
	}
	img, err := LoadImage("logo", data)
	if err != nil {
		g.log.Warn().Err(err).Msg("skipping logo")
		return nil
	}
	return img
}

func (g *Generator) header(title string, date time.Time, logo *Image) func(w *PageWriter) {
	if date.IsZero() {
		date = g.now()
	}
	return func(w *PageWriter) {
		top := w.Y()
		textX := w.Left()
		if logo != nil {
			if err := w.embed(logo, w.Left(), top, 16); err != nil {
				g.log.Warn().Err(err).Msg("failed to embed logo")
			} else {
				textX = w.Left() + 16*float64(logo.Width)/float64(max(logo.Height, 1)) + 4
			}
		}
		width := w.Left() + w.ContentWidth() - textX

		w.SetFont("B", 14)
		w.TextAt(textX, top, width, 7, title, "R")
		w.SetFont("", 10)
		w.TextAt(textX, top+7, width, 5, format.Value(g.opts.CompanyName), "R")
		w.TextAt(textX, top+12, width, 5, "Data: "+format.Date(date), "R")
		w.Advance(18)
		if err := w.Rule(4); err != nil {
			g.log.Warn().Err(err).Msg("failed to draw header rule")
		}
	}
}

func (g *Generator) section(w *PageWriter, title string) error {
	w.EnsureSpace(16)
	return w.Text(title, "B", 12, 8, "L")
}

func (g *Generator) lines(w *PageWriter, lines []string) error {
	for _, line := range lines {
		if err := w.Text(line, "", 10, 5, "L"); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) amountLine(w *PageWriter, label, value, style string) error {
	return w.WriteBlock(6, func(x, y, width float64) {
		w.SetFont(style, 10)
		w.TextAt(x, y, width*0.75, 6, label+":", "R")
		w.TextAt(x+width*0.75, y, width*0.25, 6, value, "R")
	})
}

func (g *Generator) signatureBlock(w *PageWriter, label, name string) error {
	return w.Text(fmt.Sprintf("%s: ______________________ /%s/", label, format.Value(name)), "", 10, 9, "L")
}

func clientLines(c model.Client) []string {
	return []string{
		c.Name,
		"NIF: " + format.Value(c.TaxID),
		"Morada: " + format.Value(c.Address),
		"Telefone: " + format.Value(c.Phone),
		"Email: " + format.Value(c.Email),
	}
}

func checklistLines(c model.Checklist) []string {
	mark := func(v bool) string {
		if v {
			return "[x]"
		}
		return "[ ]"
	}
	return []string{
		mark(c.BudgetRequested) + " Orçamento pedido",
		mark(c.Warranty) + " Garantia",
		mark(c.NeedsParts) + " Necessita peças",
		mark(c.ClientSigned) + " Assinado pelo cliente",
	}
}

func kindLabel(kind model.ItemKind) string {
	if kind == model.ItemKindExpense {
		return "Despesa"
	}
	return "Serviço"
}

func priorityLabel(p model.Priority) string {
	switch p {
	case model.PriorityLow:
		return "Baixa"
	case model.PriorityHigh:
		return "Alta"
	default:
		return "Normal"
	}
}

func statusLabel(s model.OrderStatus) string {
	if s == model.OrderStatusClosed {
		return "Fechada"
	}
	return "Aberta"
}

// FileName builds "{Kind}_{Client}_{Number}.pdf".
func FileName(kind, client string, number int64) string {
	return FileNameExt(kind, client, number, "pdf")
}

func FileNameExt(kind, client string, number int64, ext string) string {
	name := sanitizeFileName(client)
	if name == "" {
		name = "cliente"
	}
	return fmt.Sprintf("%s_%s_%d.%s", kind, name, number, ext)
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range foldAccents(input) {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		default:
			if len(result) > 0 && result[len(result)-1] != '-' {
				result = append(result, '-')
			}
		}
	}
	return strings.Trim(string(result), "-")
}

var accentFolder = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a", "ä", "a",
	"Á", "A", "À", "A", "Â", "A", "Ã", "A", "Ä", "A",
	"é", "e", "ê", "e", "è", "e", "É", "E", "Ê", "E",
	"í", "i", "Í", "I", "ó", "o", "ô", "o", "õ", "o",
	"Ó", "O", "Ô", "O", "Õ", "O", "ú", "u", "ü", "u",
	"Ú", "U", "ç", "c", "Ç", "C",
)

func foldAccents(s string) string {
	return accentFolder.Replace(s)
}
