package quote

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"

	"quote-generator-api/utils"
)

const pdfFontFamily = "quote"

// PDFGenerator produces a printable A4 version of a quote. Without a UTF-8
// font the core Helvetica font is used and characters outside cp1252 are
// replaced.
type PDFGenerator struct {
	fontPath string
	logger   *slog.Logger
}

func NewPDFGenerator(fontPath string, logger *slog.Logger) *PDFGenerator {
	return &PDFGenerator{fontPath: fontPath, logger: logger}
}

func (g *PDFGenerator) Generate(q Quote) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Price Quote "+q.QuoteID, true)

	family := "Helvetica"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if g.fontPath != "" {
		g.logger.Debug("quote pdf: load font", "path", g.fontPath)
		pdf.AddUTF8Font(pdfFontFamily, "", g.fontPath)
		pdf.AddUTF8Font(pdfFontFamily, "B", g.fontPath)
		family = pdfFontFamily
		tr = func(s string) string { return s }
	}
	if err := pdf.Error(); err != nil {
		return nil, errors.Wrap(err, "failed to load pdf font")
	}
	pdf.AddPage()

	money := func(v float64) string { return utils.FormatAmount(v) + " ILS" }

	pdf.SetFont(family, "B", 16)
	pdf.Cell(0, 10, tr("Price Quote"))
	pdf.Ln(10)

	pdf.SetFont(family, "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("No. %s, %s", q.QuoteID, q.Date)))
	pdf.Ln(6)
	if q.ClientName != "" {
		pdf.Cell(0, 6, tr("Client: "+q.ClientName))
		pdf.Ln(6)
	}
	if q.Vendor != "" {
		pdf.Cell(0, 6, tr("Vendor: "+q.Vendor))
		pdf.Ln(6)
	}
	if q.Goal != "" {
		pdf.MultiCell(0, 6, tr("Goal: "+q.Goal), "", "L", false)
	}
	pdf.Ln(4)

	switch p := q.Pricing.(type) {
	case *Fixed:
		pdf.SetFont(family, "B", 12)
		pdf.Cell(0, 7, tr("Fixed-price project"))
		pdf.Ln(8)
		pdf.SetFont(family, "", 11)
		pdf.Cell(0, 6, tr(fmt.Sprintf("Total: %s, valid for %d days", money(p.Total), p.ValidityDays)))
		pdf.Ln(6)
		if p.Terms != "" {
			pdf.MultiCell(0, 6, tr("Payment terms: "+p.Terms), "", "L", false)
		}
		if len(p.Items) > 0 {
			pdf.Ln(2)
			tableHeader(pdf, family, tr, "Component", "Description", "Price")
			for _, it := range p.Items {
				tableRow(pdf, tr, it.Name, it.Description, money(it.Price))
			}
			tableFooter(pdf, family, tr, money(p.ItemsTotal()))
		}
	case *Discovery:
		pdf.SetFont(family, "B", 12)
		pdf.Cell(0, 7, tr("Paid discovery, then project"))
		pdf.Ln(8)
		pdf.SetFont(family, "", 11)
		flow := "no"
		if p.FlowDiagram {
			flow = "yes"
		}
		pdf.Cell(0, 6, tr(fmt.Sprintf("Discovery price: %s, meetings: %d, flow diagram: %s", money(p.Price), p.Meetings, flow)))
		pdf.Ln(6)
		if p.Delivery != "" {
			pdf.MultiCell(0, 6, tr("Delivery after discovery: "+p.Delivery), "", "L", false)
		}
		pdf.Cell(0, 6, tr(fmt.Sprintf("Valid for %d days", p.ValidityDays)))
		pdf.Ln(6)
	case *Hours:
		pdf.SetFont(family, "B", 12)
		pdf.Cell(0, 7, tr("Hours retainer"))
		pdf.Ln(8)
		pdf.SetFont(family, "", 11)
		pdf.Cell(0, 6, tr(fmt.Sprintf("Hourly rate: %s, usable for %d days", money(p.Rate()), p.ValidityDays)))
		pdf.Ln(8)
		tableHeader(pdf, family, tr, "Pack", "Notes", "Total")
		for _, pk := range p.Packs() {
			tableRow(pdf, tr, strconv.Itoa(pk.Hours)+" hours", pk.Note, money(pk.Sum))
		}
		tableFooter(pdf, family, tr, money(p.Total()))
		if p.Reporting != "" {
			pdf.Ln(2)
			pdf.MultiCell(0, 6, tr("Reporting: "+p.Reporting), "", "L", false)
		}
	default:
		pdf.Cell(0, 6, tr("No pricing model selected."))
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont(family, "", 9)
	pdf.Cell(0, 5, tr("Generated: "+time.Now().Format(time.RFC3339)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		g.logger.Error("quote pdf: output failed", "error", err)
		return nil, errors.Wrap(err, "failed to render pdf")
	}
	return buf.Bytes(), nil
}

func tableHeader(pdf *gofpdf.Fpdf, family string, tr func(string) string, a, b, c string) {
	pdf.SetFont(family, "B", 10)
	pdf.CellFormat(50, 7, tr(a), "B", 0, "L", false, 0, "")
	pdf.CellFormat(100, 7, tr(b), "B", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, tr(c), "B", 1, "R", false, 0, "")
	pdf.SetFont(family, "", 10)
}

func tableRow(pdf *gofpdf.Fpdf, tr func(string) string, a, b, c string) {
	pdf.CellFormat(50, 6, tr(trim(a, 28)), "", 0, "L", false, 0, "")
	pdf.CellFormat(100, 6, tr(trim(b, 60)), "", 0, "L", false, 0, "")
	pdf.CellFormat(40, 6, tr(c), "", 1, "R", false, 0, "")
}

func tableFooter(pdf *gofpdf.Fpdf, family string, tr func(string) string, total string) {
	pdf.SetFont(family, "B", 10)
	pdf.CellFormat(150, 7, tr("Total"), "T", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, tr(total), "T", 1, "R", false, 0, "")
	pdf.SetFont(family, "", 10)
}

func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
