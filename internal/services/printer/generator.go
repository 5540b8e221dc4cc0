package printer

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
)

// DefaultQRSize is the PNG edge length in pixels
const DefaultQRSize = 256

// LabelSheetConfig describes a grid of parcel QR labels on A4
type LabelSheetConfig struct {
	Cols       int     `json:"cols"`
	Rows       int     `json:"rows"`
	MarginTop  float64 `json:"marginTop"`
	MarginLeft float64 `json:"marginLeft"`
	GapX       float64 `json:"gapX"`
	GapY       float64 `json:"gapY"`
}

// DefaultLabelSheet is a 3x8 sheet matching common adhesive label stock
var DefaultLabelSheet = LabelSheetConfig{Cols: 3, Rows: 8, MarginTop: 10, MarginLeft: 8, GapX: 3, GapY: 2}

// Label is one printed parcel label
type Label struct {
	ReferenceNumber string
	Caption         string // receiver name or destination
}

// QRCodePNG encodes content (a parcel reference number) as a PNG image
func QRCodePNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("qr content is empty")
	}
	if size <= 0 {
		size = DefaultQRSize
	}
	return qrcode.Encode(content, qrcode.Medium, size)
}

// GenerateLabelsPDF creates a PDF sheet with one QR label per parcel
func GenerateLabelsPDF(labels []Label, cfg LabelSheetConfig) ([]byte, error) {
	if cfg.Cols <= 0 || cfg.Rows <= 0 {
		cfg = DefaultLabelSheet
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Arial", "B", 10)
	tr := newTextTranslator(pdf)

	// A4 dimensions
	pageWidth, pageHeight := 210.0, 297.0

	totalGapX := float64(cfg.Cols-1) * cfg.GapX
	totalGapY := float64(cfg.Rows-1) * cfg.GapY

	availW := pageWidth - (cfg.MarginLeft * 2)
	availH := pageHeight - (cfg.MarginTop * 2)

	labelW := (availW - totalGapX) / float64(cfg.Cols)
	labelH := (availH - totalGapY) / float64(cfg.Rows)

	labelsPerPage := cfg.Cols * cfg.Rows

	if len(labels) == 0 {
		pdf.AddPage()
	}

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		indexOnPage := i % labelsPerPage
		col := indexOnPage % cfg.Cols
		row := indexOnPage / cfg.Cols

		// Top-left of label
		x := cfg.MarginLeft + float64(col)*(labelW+cfg.GapX)
		y := cfg.MarginTop + float64(row)*(labelH+cfg.GapY)

		qrPng, err := qrcode.Encode(label.ReferenceNumber, qrcode.Low, DefaultQRSize)
		if err != nil {
			return nil, err
		}

		imgName := fmt.Sprintf("qr_%d", i)
		imgOptions := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		pdf.RegisterImageOptionsReader(imgName, imgOptions, bytes.NewReader(qrPng))

		// QR on the left, text to the right
		qrSize := labelH * 0.85
		if qrSize > labelW/2 {
			qrSize = labelW / 2
		}
		pdf.ImageOptions(imgName, x+1, y+(labelH-qrSize)/2, qrSize, qrSize, false, imgOptions, 0, "")

		textX := x + qrSize + 2
		textW := labelW - qrSize - 3

		pdf.SetXY(textX, y+labelH/2-5)
		pdf.SetFontSize(7)
		pdf.CellFormat(textW, 4, label.ReferenceNumber, "", 2, "L", false, 0, "")

		if label.Caption != "" {
			pdf.SetFont("Arial", "", 6)
			pdf.SetX(textX)
			pdf.CellFormat(textW, 4, tr(label.Caption), "", 0, "L", false, 0, "")
			pdf.SetFont("Arial", "B", 10)
		}
	}

	return output(pdf)
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
