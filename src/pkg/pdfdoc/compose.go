// Package pdfdoc composes the paginated sales report PDF.
package pdfdoc

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"sales-reporter/src/pkg/charts"
	"sales-reporter/src/pkg/rows"
	"sales-reporter/src/pkg/util"
)

// MaxSampleRows caps the sample-rows table at the end of the document.
const MaxSampleRows = 20

// A4 portrait layout constants, in millimeters.
const (
	pageWidth    = 210.0
	pageMargin   = 15.0
	contentWidth = pageWidth - 2*pageMargin
)

/*
CategoryLine is one row of the top-categories table.
*/
type CategoryLine struct {
	Label   string
	Revenue decimal.Decimal
}

/*
Summary carries the aggregate numbers the document displays.
*/
type Summary struct {
	TotalRevenue  decimal.Decimal
	OrderCount    int
	TopCategories []CategoryLine
}

/*
Document describes a finished report file. Immutable once built.
*/
type Document struct {
	Path    string    `json:"path"`
	Title   string    `json:"title"`
	BuiltAt time.Time `json:"built_at"`
}

/*
ComposeError reports a document that could not be written.
*/
type ComposeError struct {
	Path string
	Err  error
}

func (e *ComposeError) Error() string {
	return fmt.Sprintf("compose document '%s': %s", e.Path, e.Err)
}

func (e *ComposeError) Unwrap() error {
	return e.Err
}

/*
Compose builds the report PDF at destinationPath.

Section order: title, summary (total revenue and order count), top-categories
table, category-share chart, daily-trend chart, sample-rows table (first 20
rows), footer attribution.

The destination directory is created if missing and an existing file at
destinationPath is overwritten. The document is written to a staging file and
renamed into place, so a failure never leaves a partial file at the
destination.
*/
func Compose(summary Summary, shareChart charts.Artifact, trendChart charts.Artifact, table rows.SalesTable, title string, destinationPath string) (document Document, err error) {
	tl.Log(
		tl.Info1, palette.Blue, "Composing report document '%s' into '%s'",
		title, destinationPath,
	)

	mkdirErr := os.MkdirAll(filepath.Dir(destinationPath), 0o755)
	if mkdirErr != nil {
		return document, &ComposeError{Path: destinationPath, Err: mkdirErr}
	}

	builtAt := time.Now()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	writeTitle(pdf, title)
	writeSummary(pdf, summary)
	writeTopCategories(pdf, summary.TopCategories)
	writeChart(pdf, "Sales by Model", shareChart, 90.0)
	writeChart(pdf, "Sales Over Time", trendChart, contentWidth)
	writeSampleRows(pdf, table)
	writeFooter(pdf)

	stagingPath := destinationPath + ".tmp"
	outputErr := pdf.OutputFileAndClose(stagingPath)
	if outputErr != nil {
		_ = os.Remove(stagingPath)
		return document, &ComposeError{Path: destinationPath, Err: outputErr}
	}

	renameErr := os.Rename(stagingPath, destinationPath)
	if renameErr != nil {
		_ = os.Remove(stagingPath)
		return document, &ComposeError{Path: destinationPath, Err: renameErr}
	}

	tl.Log(
		tl.Info1, palette.Green, "Saved report document to '%s'",
		destinationPath,
	)

	document = Document{Path: destinationPath, Title: title, BuiltAt: builtAt}
	return document, nil
}

func writeTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentWidth, 10, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func writeSummary(pdf *fpdf.Fpdf, summary Summary) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(35, 6, "Total Revenue:", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "$"+formatAmount(summary.TotalRevenue), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(35, 6, "Orders:", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("%d", summary.OrderCount), "", 1, "L", false, 0, "")
	pdf.Ln(5)
}

func writeTopCategories(pdf *fpdf.Fpdf, categories []CategoryLine) {
	writeHeading(pdf, "Top Models")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(242, 242, 242)
	pdf.SetDrawColor(128, 128, 128)
	pdf.CellFormat(110, 7, "Model", "1", 0, "L", true, 0, "")
	pdf.CellFormat(70, 7, "Revenue ($)", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, category := range categories {
		pdf.CellFormat(110, 7, category.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 7, formatAmount(category.Revenue), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)
}

/*
writeChart embeds a chart image at the given width in millimeters, centered on
the page. The height follows from the artifact's fixed aspect ratio.
*/
func writeChart(pdf *fpdf.Fpdf, heading string, artifact charts.Artifact, widthMM float64) {
	writeHeading(pdf, heading)

	heightMM := widthMM * float64(artifact.Height) / float64(artifact.Width)
	x := pageMargin + (contentWidth-widthMM)/2

	options := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.ImageOptions(artifact.Path, x, pdf.GetY(), widthMM, heightMM, true, options, 0, "")
	pdf.Ln(5)
}

func writeSampleRows(pdf *fpdf.Fpdf, table rows.SalesTable) {
	writeHeading(pdf, "Sample Sales Rows")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetDrawColor(128, 128, 128)
	writeSampleCells(pdf, true, "Date", "Order", "Model", "Qty", "Unit Price", "Total")

	pdf.SetFont("Helvetica", "", 9)
	rowCount := util.Clamp(len(table), 0, MaxSampleRows)
	for index := 0; index < rowCount; index += 1 {
		row := table[index]
		writeSampleCells(pdf, false,
			row.Date,
			orPlaceholder(row.OrderID),
			orPlaceholder(row.Model),
			fmt.Sprintf("%d", row.Quantity),
			formatAmount(row.UnitPrice),
			formatAmount(row.Total),
		)
	}
	pdf.Ln(5)
}

func writeSampleCells(pdf *fpdf.Fpdf, fill bool, date string, order string, model string, qty string, unitPrice string, total string) {
	pdf.CellFormat(30, 6, date, "1", 0, "L", fill, 0, "")
	pdf.CellFormat(28, 6, order, "1", 0, "L", fill, 0, "")
	pdf.CellFormat(47, 6, model, "1", 0, "L", fill, 0, "")
	pdf.CellFormat(15, 6, qty, "1", 0, "R", fill, 0, "")
	pdf.CellFormat(30, 6, unitPrice, "1", 0, "R", fill, 0, "")
	pdf.CellFormat(30, 6, total, "1", 1, "R", fill, 0, "")
}

func writeHeading(pdf *fpdf.Fpdf, heading string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentWidth, 8, heading, "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func writeFooter(pdf *fpdf.Fpdf) {
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(contentWidth, 6, "Generated by Sales Report Automation", "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

/*
orPlaceholder substitutes "-" for an empty table cell.
*/
func orPlaceholder(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

/*
formatAmount renders a decimal amount with two decimals and comma thousand
separators.

Example:

	1234.5 -> "1,234.50"
*/
func formatAmount(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	fixed := amount.StringFixed(2)
	integerPart := fixed[:len(fixed)-3]
	fractionPart := fixed[len(fixed)-3:]

	return sign + groupThousands(integerPart, ",") + fractionPart
}

/*
groupThousands groups digits in a base-10 string using the provided separator.
*/
func groupThousands(raw string, sep string) string {
	if len(raw) <= 3 {
		return raw
	}

	grouped := ""
	firstGroupLen := len(raw) % 3
	if firstGroupLen == 0 {
		firstGroupLen = 3
	}

	grouped += raw[:firstGroupLen]
	for index := firstGroupLen; index < len(raw); index += 3 {
		grouped += sep + raw[index:index+3]
	}

	return grouped
}
