package printer

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xelth-com/goodstrack/internal/models"
)

// The core PDF fonts are cp1252; symbols outside it are spelled out.
var symbolReplacer = strings.NewReplacer("₦", "NGN ", "m³", "m3")

func newTextTranslator(pdf *gofpdf.Fpdf) func(string) string {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	return func(s string) string {
		return tr(symbolReplacer.Replace(s))
	}
}

const dateLayout = "02 Jan 2006 15:04 MST"

type docWriter struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func newDocWriter(title, reference string) *docWriter {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	w := &docWriter{pdf: pdf, tr: newTextTranslator(pdf)}

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, w.tr(strings.ToUpper(title)), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, w.tr("Reference: "+reference), "", 1, "C", false, 0, "")
	pdf.Ln(4)
	return w
}

func (w *docWriter) qr(reference string) error {
	png, err := QRCodePNG(reference, DefaultQRSize)
	if err != nil {
		return err
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	w.pdf.RegisterImageOptionsReader("ref_qr", opts, bytes.NewReader(png))
	w.pdf.ImageOptions("ref_qr", 170, 12, 25, 25, false, opts, 0, "")
	return nil
}

func (w *docWriter) section(title string) {
	w.pdf.Ln(2)
	w.pdf.SetFont("Arial", "B", 11)
	w.pdf.SetFillColor(230, 230, 230)
	w.pdf.CellFormat(0, 7, w.tr(title), "", 1, "L", true, 0, "")
	w.pdf.SetFont("Arial", "", 9)
}

// field prints "label: value", skipping empty values
func (w *docWriter) field(label, value string) {
	if value == "" {
		return
	}
	w.pdf.SetFont("Arial", "B", 9)
	w.pdf.CellFormat(45, 5, w.tr(label+":"), "", 0, "L", false, 0, "")
	w.pdf.SetFont("Arial", "", 9)
	w.pdf.MultiCell(0, 5, w.tr(value), "", "L", false)
}

func (w *docWriter) table(headers []string, widths []float64, rows [][]string) {
	w.pdf.SetFont("Arial", "B", 8)
	for i, h := range headers {
		w.pdf.CellFormat(widths[i], 6, w.tr(h), "1", 0, "C", false, 0, "")
	}
	w.pdf.Ln(-1)

	w.pdf.SetFont("Arial", "", 8)
	for _, row := range rows {
		for i, cell := range row {
			w.pdf.CellFormat(widths[i], 6, w.tr(cell), "1", 0, "L", false, 0, "")
		}
		w.pdf.Ln(-1)
	}
}

func (w *docWriter) list(lines []string) {
	for i, line := range lines {
		w.pdf.MultiCell(0, 5, w.tr(fmt.Sprintf("%d. %s", i+1, line)), "", "L", false)
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}

// RenderBillOfLading renders the Bill of Lading as an A4 PDF
func RenderBillOfLading(bol models.BillOfLading) ([]byte, error) {
	w := newDocWriter(bol.DocumentType, bol.ReferenceNumber)
	if err := w.qr(bol.ReferenceNumber); err != nil {
		return nil, err
	}

	w.field("Issue Date", formatDate(bol.IssueDate))

	w.section("Shipper")
	w.field("Name", bol.Shipper.Name)
	w.field("Address", bol.Shipper.Address)
	w.field("Contact", bol.Shipper.Contact)

	w.section("Consignee")
	w.field("Name", bol.Consignee.Name)
	w.field("Address", bol.Consignee.Address)
	w.field("Contact", bol.Consignee.Contact)

	w.section("Carrier")
	w.field("Driver ID", bol.Carrier.DriverID)
	w.field("Driver Name", bol.Carrier.DriverName)
	w.field("Vehicle Number", bol.Carrier.VehicleNumber)
	w.field("VIN", bol.Carrier.VINNumber)
	w.field("Driver NIN", bol.Carrier.DriverNIN)
	w.field("Insurance Number", bol.Carrier.InsuranceNumber)

	w.section("Description of Goods")
	rows := make([][]string, 0, len(bol.Goods))
	for _, g := range bol.Goods {
		rows = append(rows, []string{g.Description, g.Category, fmt.Sprint(g.Quantity), g.Weight, g.Value, g.CubicVolume})
	}
	w.table([]string{"Description", "Category", "Qty", "Weight", "Value", "Volume (m3)"},
		[]float64{50, 30, 12, 25, 35, 28}, rows)

	w.pdf.Ln(2)
	w.field("Total Value", bol.TotalValue)
	w.field("Total Weight", bol.TotalWeight)
	w.field("Total Volume", bol.TotalVolume)

	w.section("Terms and Conditions")
	w.list(bol.TermsAndConditions)

	w.section("Signatures")
	w.field("Shipper", signatureText(bol.Signatures.Shipper))
	w.field("Carrier", signatureText(bol.Signatures.Carrier))

	return output(w.pdf)
}

func signatureText(s models.Signature) string {
	if !s.Signed {
		return "Not signed"
	}
	return "Signed " + formatDate(s.Timestamp)
}

// RenderRoadManifest renders the Road Manifest as an A4 PDF
func RenderRoadManifest(m models.RoadManifest) ([]byte, error) {
	w := newDocWriter(m.DocumentType, m.ReferenceNumber)
	if err := w.qr(m.ReferenceNumber); err != nil {
		return nil, err
	}

	w.field("Issue Date", formatDate(m.IssueDate))
	w.field("Status", strings.ToUpper(string(m.Status)))

	w.section("Driver")
	w.field("Driver ID", m.Driver.ID)
	w.field("Name", m.Driver.Name)
	w.field("Vehicle Number", m.Driver.VehicleNumber)
	w.field("VIN", m.Driver.VINNumber)
	w.field("Driver NIN", m.Driver.DriverNIN)
	w.field("Insurance Number", m.Driver.InsuranceNumber)

	w.section("Route")
	w.field("Origin", m.Route.Origin)
	w.field("Destination", m.Route.Destination)

	w.section("Parties")
	w.field("Shipper", strings.TrimSpace(m.Shipper.Name+" "+m.Shipper.Contact))
	w.field("Consignee", strings.TrimSpace(m.Consignee.Name+" "+m.Consignee.Contact))

	w.section("Cargo")
	rows := make([][]string, 0, len(m.Cargo))
	for _, c := range m.Cargo {
		rows = append(rows, []string{c.ItemName, c.Category, c.HSCode, c.Weight, c.Value, c.FormM, c.NXPNumber})
	}
	w.table([]string{"Item", "Category", "HS Code", "Weight", "Value", "Form M", "NXP"},
		[]float64{36, 24, 22, 20, 30, 24, 24}, rows)

	w.pdf.Ln(2)
	w.field("Total Items", fmt.Sprint(m.TotalItems))
	w.field("Total Value", m.TotalValue)
	w.field("Total Weight", m.TotalWeight)
	w.field("Total Volume", m.TotalVolume)

	w.section("Compliance Notes")
	w.list(m.ComplianceNotes)

	return output(w.pdf)
}
