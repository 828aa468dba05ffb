// Package receipt renders a saved calculation as a fixed-layout PDF
// document suitable for handing to a customer.
package receipt

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/printforge/printcost/internal/history"
)

// Render produces the PDF bytes for one saved calculation.
func Render(e history.Entry) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 12, "3D Print Receipt", "", 1, "C", false, 0, "")

	pdf.SetLineWidth(0.5)
	pdf.Line(20, 28, 190, 28)

	money := func(v float64) string {
		return tr(fmt.Sprintf("%s %.2f", e.Currency.Symbol, v))
	}
	line := func(text string) {
		pdf.SetX(20)
		pdf.CellFormat(0, 9, tr(text), "", 1, "L", false, 0, "")
	}
	heading := func(text string) {
		pdf.SetFont("Helvetica", "B", 14)
		line(text)
		pdf.SetFont("Helvetica", "", 14)
	}

	pdf.SetY(34)
	heading("Print Details")
	line("Print Name: " + e.Data.PrintName)
	line("Customer Name: " + orNA(e.Data.CustomerName))
	line("Date: " + orNA(e.Data.PurchaseDate))

	pdf.Ln(6)
	heading("Cost Breakdown")
	line("Material Cost: " + money(e.Costs.MaterialCost))
	line("Electricity Cost: " + money(e.Costs.ElectricityCost))
	line("Labor Cost: " + money(e.Costs.LaborCost))
	line("Post-Processing Cost: " + money(e.Costs.PostProcessingCost))

	pdf.Ln(4)
	pdf.SetLineWidth(0.3)
	y := pdf.GetY()
	pdf.Line(20, y, 190, y)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 16)
	line("Total Cost (before markup): " + money(e.Costs.TotalCost))
	pdf.SetFont("Helvetica", "", 14)
	line("Markup Price: " + money(e.Costs.MarkupPrice))

	pdf.Ln(6)
	pdf.SetLineWidth(0.5)
	y = pdf.GetY()
	pdf.Line(20, y, 190, y)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 20)
	line("Final Price: " + money(e.Costs.FinalPrice))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
