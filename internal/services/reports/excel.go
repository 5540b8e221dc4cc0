package reports

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xelth-com/goodstrack/internal/services/documents"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Parcels"

// ExportHeader is the column layout of the spreadsheet export
var ExportHeader = []string{
	"Reference", "Registered", "Status", "Sender", "Receiver", "Origin", "Destination",
	"Items", "Total Value", "Total Weight", "Total Volume",
}

var columnWidths = []float64{22, 20, 12, 24, 24, 30, 30, 40, 16, 14, 14}

// ExportXLSX renders the report as a workbook with one row per parcel
func ExportXLSX(report *DriverReport) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range ExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(sheetName, name, name, columnWidths[col]); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, p := range report.Parcels {
		totals := documents.ComputeTotals(p.Items)
		names := make([]string, 0, len(p.Items))
		for _, item := range p.Items {
			names = append(names, item.Name)
		}
		row := []interface{}{
			p.ReferenceNumber,
			p.CreatedAt.UTC().Format("2006-01-02 15:04"),
			strings.ToUpper(string(p.Status)),
			p.Sender.Name,
			p.Receiver.Name,
			p.Sender.Address,
			p.Receiver.Address,
			strings.Join(names, ", "),
			totals.Value,
			totals.Weight,
			totals.Volume,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}
	return buf.Bytes(), nil
}
