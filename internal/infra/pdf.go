package infra

// pdf.go — invoice PDF generation using go-pdf/fpdf.
// Renders an A4 invoice for a completed repair order:
//   - Shop header (name / address / phone from system settings)
//   - Invoice number, order reception/completion dates
//   - Customer and vehicle block
//   - Line item table (description, qty, unit price, labor, line total)
//   - Bold total
//   - Optional VietQR payment block for the outstanding balance
//
// The output file is saved to storagePath/invoice_{number}.pdf.

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"garagedesk/internal/model"
	"garagedesk/internal/money"

	"github.com/go-pdf/fpdf"
)

// InvoicePDFData bundles everything the renderer needs; the worker assembles
// it from the order (with vehicle, customer, and items preloaded), the
// invoice row, and shop settings.
type InvoicePDFData struct {
	Order    *model.RepairOrder
	Number   int
	ShopName string
	ShopAddr string
	ShopTel  string
	QRPNG    []byte // optional VietQR image
}

// GenerateInvoicePDF writes the invoice to storagePath and returns the
// absolute path of the generated file.
func GenerateInvoicePDF(data InvoicePDFData, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("invoice_%d.pdf", data.Number)
	filePath := filepath.Join(storagePath, fileName)

	order := data.Order
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	shopName := data.ShopName
	if shopName == "" {
		shopName = "GarageDesk"
	}
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 9, shopName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if data.ShopAddr != "" {
		pdf.CellFormat(contentW, 5, data.ShopAddr, "", 1, "L", false, 0, "")
	}
	if data.ShopTel != "" {
		pdf.CellFormat(contentW, 5, "Tel: "+data.ShopTel, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ── Invoice info ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, fmt.Sprintf("Invoice #%d", data.Number), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Received: "+order.ReceptionDate.Format("02/01/2006"), "", 1, "L", false, 0, "")
	if order.CompletionDate != nil {
		pdf.CellFormat(contentW, 5, "Completed: "+order.CompletionDate.Format("02/01/2006"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	// ── Customer / vehicle block ─────────────────────────────────────────────
	if order.Vehicle != nil {
		v := order.Vehicle
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW, 5, "Vehicle: "+v.LicensePlate+"  ("+v.Brand+")", "", 1, "L", false, 0, "")
		if v.Customer != nil {
			pdf.SetFont("Helvetica", "", 9)
			pdf.CellFormat(contentW, 5, "Customer: "+v.Customer.Name+"  "+v.Customer.Phone, "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(3)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Item table ───────────────────────────────────────────────────────────
	col1 := contentW * 0.42 // description
	col2 := contentW * 0.10 // qty
	col3 := contentW * 0.16 // unit price
	col4 := contentW * 0.16 // labor
	col5 := contentW * 0.16 // line total

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Description", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Unit", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "Labor", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 6, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range order.Items {
		desc := ""
		switch {
		case item.SparePart != nil:
			desc = item.SparePart.Name
		case item.LaborType != nil:
			desc = item.LaborType.Name
		}
		pdf.CellFormat(col1, 6, desc, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, money.FormatCurrency(item.UnitPrice), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, money.FormatCurrency(item.LaborCost), "", 0, "R", false, 0, "")
		pdf.CellFormat(col5, 6, money.FormatCurrency(item.TotalAmount), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2+col3+col4, 7, "TOTAL", "", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 7, money.FormatCurrency(order.TotalAmount), "", 1, "R", false, 0, "")

	// ── VietQR payment block ─────────────────────────────────────────────────
	if len(data.QRPNG) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(contentW, 5, "Scan to pay by bank transfer:", "", 1, "L", false, 0, "")
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("vietqr", opts, bytes.NewReader(data.QRPNG))
		pdf.ImageOptions("vietqr", 15, pdf.GetY(), 40, 40, false, opts, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
