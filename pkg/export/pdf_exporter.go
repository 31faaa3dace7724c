package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Letter page geometry in points.
const (
	pageWidth      = 612.0
	pageHeight     = 792.0
	pageMargin     = 50.0
	footerReserve  = 80.0
	dateColumn     = 90.0
	minColumn      = 60.0
	dataRowHeight  = 25.0
	headerLineStep = 10.0
	headerPadding  = 10.0
	signatureY     = pageHeight - 100
	dateLayout     = "2006-01-02"
)

// SheetColumn is one accommodation column: its header and the dates it was provided.
type SheetColumn struct {
	Header   string
	Provided map[string]bool
}

// ServiceLogSheet is the content of one student's service log PDF.
type ServiceLogSheet struct {
	StudentFirstName string
	StudentLastName  string
	ClassName        string
	ClassLine        string
	PeriodLine       string
	Dates            []string
	Columns          []SheetColumn
	SignedOn         time.Time
}

// PDFExporter renders per-student accommodation service logs.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render lays the sheet out on Letter pages. Accommodation columns are split
// into chunks that fit the page width and date rows continue onto new pages
// with the header repeated. The last page carries a signature line.
func (e *PDFExporter) Render(sheet ServiceLogSheet) ([]byte, error) {
	if len(sheet.Dates) == 0 {
		return nil, fmt.Errorf("pdf requires at least one date")
	}

	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	y := pageMargin
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(pageMargin, y+18, "Accommodation Services Log")
	y += 30

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(pageMargin, y+12, tr(fmt.Sprintf("Student: %s. %s", initial(sheet.StudentFirstName), sheet.StudentLastName)))
	y += 18

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(pageMargin, y+10, tr(sheet.ClassLine))
	y += 15
	if sheet.PeriodLine != "" {
		pdf.Text(pageMargin, y+10, tr(sheet.PeriodLine))
		y += 15
	}
	pdf.Text(pageMargin, y+10, fmt.Sprintf("Date Range: %s - %s", shortDate(sheet.Dates[0]), shortDate(sheet.Dates[len(sheet.Dates)-1])))
	y += 30

	if len(sheet.Columns) == 0 {
		pdf.SetTextColor(128, 128, 128)
		pdf.Text(pageMargin, y+10, "No accommodations defined for this student.")
	} else {
		e.renderTables(pdf, tr, sheet, y)
	}

	signedOn := sheet.SignedOn
	if signedOn.IsZero() {
		signedOn = time.Now()
	}
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(1)
	pdf.Line(pageMargin, signatureY, pageWidth-pageMargin, signatureY)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(77, 77, 77)
	pdf.Text(pageMargin, signatureY+15, "Teacher Signature")
	pdf.Text(pageWidth-pageMargin-100, signatureY+15, "Date: "+signedOn.Format("1/2/2006"))

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) renderTables(pdf *gofpdf.Fpdf, tr func(string) string, sheet ServiceLogSheet, y float64) {
	tableWidth := pageWidth - 2*pageMargin
	available := tableWidth - dateColumn
	perChunk := chunkSize(available)
	chunks := chunkColumns(sheet.Columns, perChunk)
	total := len(sheet.Columns)

	for ci, chunk := range chunks {
		colWidth := available / float64(len(chunk))
		rangeLabel := ""
		if len(chunks) > 1 {
			first := ci*perChunk + 1
			last := first + len(chunk) - 1
			rangeLabel = fmt.Sprintf("Accommodations %d-%d of %d", first, last, total)
			pdf.SetFont("Helvetica", "", 9)
			pdf.SetTextColor(102, 102, 102)
			pdf.Text(pageMargin, y+5, rangeLabel)
			y += 15
		}

		pdf.SetFont("Helvetica", "B", 8)
		wrapped := make([][]string, len(chunk))
		maxLines := 1
		for i, col := range chunk {
			for _, line := range pdf.SplitLines([]byte(tr(col.Header)), colWidth-10) {
				wrapped[i] = append(wrapped[i], string(line))
			}
			if len(wrapped[i]) > maxLines {
				maxLines = len(wrapped[i])
			}
		}
		headerHeight := 2*headerPadding + float64(maxLines)*headerLineStep
		if headerHeight < dataRowHeight {
			headerHeight = dataRowHeight
		}

		drawHeader := func(top float64) float64 {
			pdf.SetFillColor(230, 230, 230)
			pdf.Rect(pageMargin, top, tableWidth, headerHeight, "F")
			pdf.SetTextColor(0, 0, 0)
			pdf.SetDrawColor(0, 0, 0)
			pdf.SetLineWidth(1)
			pdf.SetFont("Helvetica", "B", 10)
			pdf.Text(pageMargin+5, top+headerHeight/2+5, "Date")
			pdf.Line(pageMargin+dateColumn, top, pageMargin+dateColumn, top+headerHeight)
			pdf.SetFont("Helvetica", "B", 8)
			for i := range chunk {
				x := pageMargin + dateColumn + float64(i)*colWidth
				pdf.Line(x, top, x, top+headerHeight)
				for li, line := range wrapped[i] {
					pdf.Text(x+5, top+headerPadding+8+float64(li)*headerLineStep, line)
				}
			}
			pdf.Line(pageWidth-pageMargin, top, pageWidth-pageMargin, top+headerHeight)
			pdf.Line(pageMargin, top+headerHeight, pageWidth-pageMargin, top+headerHeight)
			return top + headerHeight
		}

		y = drawHeader(y)
		for di, date := range sheet.Dates {
			if y+dataRowHeight > pageHeight-pageMargin-footerReserve {
				pdf.AddPage()
				y = pageMargin
				if rangeLabel != "" {
					pdf.SetFont("Helvetica", "", 9)
					pdf.SetTextColor(102, 102, 102)
					pdf.Text(pageMargin, y+5, rangeLabel+" (continued)")
					y += 15
				}
				y = drawHeader(y)
			}

			if di%2 == 0 {
				pdf.SetFillColor(247, 247, 247)
				pdf.Rect(pageMargin, y, tableWidth, dataRowHeight, "F")
			}
			pdf.SetFont("Helvetica", "", 9)
			pdf.SetTextColor(0, 0, 0)
			pdf.Text(pageMargin+5, y+17, rowDate(date))

			pdf.SetDrawColor(204, 204, 204)
			pdf.Line(pageMargin+dateColumn, y, pageMargin+dateColumn, y+dataRowHeight)
			for i, col := range chunk {
				x := pageMargin + dateColumn + float64(i)*colWidth
				pdf.Line(x, y, x, y+dataRowHeight)
				if col.Provided[date] {
					// "4" is the heavy check mark in ZapfDingbats.
					pdf.SetFont("ZapfDingbats", "", 14)
					pdf.SetTextColor(0, 128, 0)
					pdf.Text(x+colWidth/2-5, y+17, "4")
				}
			}
			pdf.Line(pageWidth-pageMargin, y, pageWidth-pageMargin, y+dataRowHeight)
			pdf.Line(pageMargin, y+dataRowHeight, pageWidth-pageMargin, y+dataRowHeight)
			y += dataRowHeight
		}

		if ci < len(chunks)-1 {
			pdf.AddPage()
			y = pageMargin
			pdf.SetFont("Helvetica", "B", 12)
			pdf.SetTextColor(0, 0, 0)
			pdf.Text(pageMargin, y+12, tr(fmt.Sprintf("%s %s - %s", sheet.StudentFirstName, sheet.StudentLastName, sheet.ClassName)))
			y += 25
		}
	}
}

// chunkSize is how many accommodation columns fit in width.
func chunkSize(width float64) int {
	n := int(width / minColumn)
	if n < 1 {
		return 1
	}
	return n
}

func chunkColumns(columns []SheetColumn, size int) [][]SheetColumn {
	var chunks [][]SheetColumn
	for i := 0; i < len(columns); i += size {
		end := i + size
		if end > len(columns) {
			end = len(columns)
		}
		chunks = append(chunks, columns[i:end])
	}
	return chunks
}

func initial(name string) string {
	for _, r := range name {
		return string(r)
	}
	return ""
}

func shortDate(raw string) string {
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return raw
	}
	return d.Format("1/2/2006")
}

func rowDate(raw string) string {
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return raw
	}
	return d.Format("Mon, 1/2/2006")
}
