// Package export renders calculator results as printable PDF reports.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// Row is one labelled value in a report table.
type Row struct {
	Label string
	Value string
}

// Report is the content of a single calculation report.
type Report struct {
	Title       string
	Inputs      []Row
	Results     []Row
	Notes       []string
	ShareURL    string
	GeneratedAt time.Time
}

// ErrEmptyReport is returned when a report has no result rows.
var ErrEmptyReport = errors.New("report has no results")

// Page layout constants (A4 portrait in mm).
const (
	pageWidth   = 210.0
	marginLeft  = 15.0
	marginRight = 15.0
	marginTop   = 15.0
	contentW    = pageWidth - marginLeft - marginRight
	labelW      = contentW * 0.6
	rowHeight   = 7.0
	qrSize      = 32.0
)

// Render writes r as a PDF document to w.
func Render(w io.Writer, r Report) error {
	if len(r.Results) == 0 {
		return ErrEmptyReport
	}
	if r.GeneratedAt.IsZero() {
		r.GeneratedAt = time.Now()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginTop)
	pdf.SetTitle(r.Title, true)
	pdf.AddPage()

	// Core fonts are cp1252; units such as mm² and °C need translating.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	renderHeader(pdf, tr, r)
	renderTable(pdf, tr, "Inputs", r.Inputs)
	renderTable(pdf, tr, "Results", r.Results)
	renderNotes(pdf, tr, r.Notes)

	if r.ShareURL != "" {
		if err := renderShareCode(pdf, r.ShareURL); err != nil {
			return err
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return pdf.Output(w)
}

func renderHeader(pdf *fpdf.Fpdf, tr func(string) string, r Report) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 10, tr(r.Title), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(contentW, 5, "Generated "+r.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)
}

func renderTable(pdf *fpdf.Fpdf, tr func(string) string, heading string, rows []Row) {
	if len(rows) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 8, heading, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetDrawColor(200, 200, 200)
	for i, row := range rows {
		fill := i%2 == 0
		pdf.SetFillColor(242, 242, 242)
		pdf.CellFormat(labelW, rowHeight, tr(row.Label), "B", 0, "L", fill, 0, "")
		pdf.CellFormat(contentW-labelW, rowHeight, tr(row.Value), "B", 1, "R", fill, 0, "")
	}
	pdf.Ln(4)
}

func renderNotes(pdf *fpdf.Fpdf, tr func(string) string, notes []string) {
	if len(notes) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 8, "Recommendations", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, n := range notes {
		pdf.MultiCell(contentW, 5, tr("- "+n), "", "L", false)
	}
	pdf.Ln(4)
}

// renderShareCode places a QR code of url under the content so a printed
// report can be reopened in the browser.
func renderShareCode(pdf *fpdf.Fpdf, url string) error {
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("encode share QR: %w", err)
	}

	const imgName = "share-qr"
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))

	y := pdf.GetY()
	pdf.ImageOptions(imgName, marginLeft, y, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetXY(marginLeft+qrSize+4, y+qrSize/2-3)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(110, 110, 110)
	pdf.MultiCell(contentW-qrSize-4, 4, url, "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	return nil
}
