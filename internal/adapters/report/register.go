package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/samirrijal/spraylog/internal/core/domain"
)

const registerSheet = "Spray Register"

var registerHeader = []interface{}{
	"Date", "Farm", "Paddocks", "Operator", "Area (ha)", "Water Rate (L/ha)",
	"Chemicals", "Wind (m/s)", "Wind Dir", "Temp (°C)", "Humidity (%)",
	"Wind Compliant", "Latitude", "Longitude", "Record ID",
}

// RegisterWriter implements ports.RegisterExporter with excelize.
type RegisterWriter struct{}

// NewRegisterWriter creates a RegisterWriter.
func NewRegisterWriter() *RegisterWriter { return &RegisterWriter{} }

// WriteRegister writes one row per application, in the order given.
func (RegisterWriter) WriteRegister(w io.Writer, apps []domain.Application, paddocks map[string]domain.Paddock) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", registerSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(registerSheet, "A1", &registerHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DCE6F1"}},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(registerHeader))
	if err := f.SetCellStyle(registerSheet, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	for i, a := range apps {
		row := registerRow(a, paddocks)
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(registerSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(registerSheet, "A", lastCol, 16)
	_ = f.SetColWidth(registerSheet, "G", "G", 40)
	if err := f.SetPanes(registerSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	return f.Write(w)
}

func registerRow(a domain.Application, paddocks map[string]domain.Paddock) []interface{} {
	chems := make([]string, len(a.Chemicals))
	for i, c := range a.Chemicals {
		chems[i] = fmt.Sprintf("%s %g %s", c.Name, c.Rate, c.Unit)
	}

	row := []interface{}{
		a.ApplicationDate.Format("2006-01-02 15:04"),
		a.Farm,
		strings.Join(paddockNames(a.PaddockIDs, paddocks), ", "),
		a.Operator,
		a.Area,
		a.WaterRate,
		strings.Join(chems, "; "),
	}
	if wx := a.Weather; wx != nil {
		compliant := "No"
		if wx.WindCompliant() {
			compliant = "Yes"
		}
		row = append(row, wx.WindSpeed, CompassPoint(wx.WindDirection), wx.Temperature, wx.Humidity, compliant)
	} else {
		row = append(row, "", "", "", "", "")
	}
	if a.GPS != nil {
		row = append(row, a.GPS.Latitude, a.GPS.Longitude)
	} else {
		row = append(row, "", "")
	}
	return append(row, a.ID)
}
