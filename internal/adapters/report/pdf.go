package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/samirrijal/spraylog/internal/core/domain"
)

const (
	pageMargin  = 18.0 // mm
	lineHeight  = 6.0
	labelWidth  = 48.0
	dateLayout  = "02/01/2006"
	stampLayout = "02/01/2006 15:04"
)

// Renderer implements ports.ReportRenderer.
type Renderer struct {
	loc *time.Location
	now func() time.Time
}

// NewRenderer creates a Renderer that prints timestamps in loc (UTC if nil).
func NewRenderer(loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.UTC
	}
	return &Renderer{loc: loc, now: time.Now}
}

// doc wraps an fpdf document with the helpers shared by both report kinds.
type doc struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (r *Renderer) newDoc(title string) *doc {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, 30)
	pdf.SetTitle(title, true)
	pdf.SetCreator("spraylog", true)
	pdf.AliasNbPages("")

	d := &doc{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-25)
		w, _ := pdf.GetPageSize()
		pdf.SetDrawColor(120, 120, 120)
		pdf.Line(pageMargin, pdf.GetY(), w-pageMargin, pdf.GetY())
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(102, 102, 102)
		pdf.CellFormat(0, 4, "This report is generated for audit compliance purposes.", "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 4, "All data is retained in compliance with agricultural regulations.", "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 4, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()
	return d
}

func (d *doc) title(text string, sub ...string) {
	d.pdf.SetFont("Helvetica", "B", 20)
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.CellFormat(0, 10, d.tr(text), "", 1, "C", false, 0, "")
	d.pdf.SetFont("Helvetica", "", 9)
	d.pdf.SetTextColor(102, 102, 102)
	for _, s := range sub {
		d.pdf.CellFormat(0, 5, d.tr(s), "", 1, "C", false, 0, "")
	}
	d.rule()
}

func (d *doc) rule() {
	w, _ := d.pdf.GetPageSize()
	y := d.pdf.GetY() + 3
	d.pdf.SetDrawColor(0, 0, 0)
	d.pdf.Line(pageMargin, y, w-pageMargin, y)
	d.pdf.SetY(y + 4)
}

func (d *doc) section(text string) {
	d.pdf.Ln(2)
	d.pdf.SetFont("Helvetica", "BU", 13)
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.CellFormat(0, 8, d.tr(text), "", 1, "L", false, 0, "")
}

func (d *doc) field(label, value string) {
	d.pdf.SetTextColor(51, 51, 51)
	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.CellFormat(labelWidth, lineHeight, d.tr(label), "", 0, "L", false, 0, "")
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.MultiCell(0, lineHeight, d.tr(value), "", "L", false)
}

func (d *doc) line(text string, r, g, b int) {
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.SetTextColor(r, g, b)
	d.pdf.MultiCell(0, lineHeight, d.tr(text), "", "L", false)
}

func (d *doc) write(w io.Writer) error {
	if d.pdf.Err() {
		return d.pdf.Error()
	}
	return d.pdf.Output(w)
}

// RenderApplication writes the single-application audit report.
func (r *Renderer) RenderApplication(w io.Writer, app *domain.Application, paddocks []domain.Paddock) error {
	d := r.newDoc("Spray Application Audit Report")
	now := r.now().In(r.loc)
	d.title("Spray Application Audit Report",
		"Report ID: "+app.ID,
		"Generated: "+now.Format(stampLayout),
	)

	d.section("Application Details")
	d.field("Farm Name:", app.Farm)
	d.field("Operator:", app.Operator)
	d.field("Application Date:", app.ApplicationDate.In(r.loc).Format(stampLayout))
	names := make([]string, 0, len(paddocks))
	for _, p := range paddocks {
		names = append(names, fmt.Sprintf("%s (%.2f ha)", p.Name, p.Area))
	}
	if len(names) == 0 {
		names = append(names, "N/A")
	}
	d.field("Paddock:", strings.Join(names, ", "))
	d.field("Area Treated:", fmt.Sprintf("%g hectares", app.Area))

	d.section("Tank Mix Details")
	if len(app.Chemicals) == 0 {
		d.line("No chemicals recorded", 153, 153, 153)
	}
	for _, c := range app.Chemicals {
		d.line(fmt.Sprintf("• %s - %g %s", c.Name, c.Rate, c.Unit), 51, 51, 51)
	}
	d.field("Water Rate:", fmt.Sprintf("%g L/ha", app.WaterRate))

	if wx := app.Weather; wx != nil {
		d.section("Weather Conditions")
		d.field("Wind Speed:", fmt.Sprintf("%.1f m/s (%.1f km/h) from %s", wx.WindSpeed, wx.WindSpeed*3.6, CompassPoint(wx.WindDirection)))
		d.field("Wind Direction:", fmt.Sprintf("%g°", wx.WindDirection))
		d.field("Temperature:", fmt.Sprintf("%g°C", wx.Temperature))
		d.field("Humidity:", fmt.Sprintf("%g%%", wx.Humidity))
		if wx.WindCompliant() {
			d.field("Wind Compliance:", "Within the 3-15 km/h spraying window")
		} else {
			d.field("Wind Compliance:", "OUTSIDE the 3-15 km/h spraying window")
		}
	}

	if gps := app.GPS; gps != nil {
		d.section("GPS Location")
		d.field("Latitude:", fmt.Sprintf("%.6f", gps.Latitude))
		d.field("Longitude:", fmt.Sprintf("%.6f", gps.Longitude))
		d.field("Accuracy:", fmt.Sprintf("±%.0f m", gps.Accuracy))
	}

	return d.write(w)
}

// RenderBatch writes a summary page followed by one entry per application.
func (r *Renderer) RenderBatch(w io.Writer, apps []domain.Application, paddocks map[string]domain.Paddock) error {
	d := r.newDoc("Spray Application Batch Report")
	now := r.now().In(r.loc)
	d.title("Spray Application Batch Report",
		"Generated: "+now.Format(stampLayout),
		fmt.Sprintf("Total Records: %d", len(apps)),
	)

	sum := Summarize(apps)
	d.section("Summary")
	d.field("Total Area Treated:", fmt.Sprintf("%.1f hectares", sum.TotalArea))
	d.field("Average Water Rate:", fmt.Sprintf("%.1f L/ha", sum.AverageWaterRate))
	d.field("Unique Operators:", fmt.Sprintf("%d", sum.Operators))
	d.field("Unique Farms:", fmt.Sprintf("%d", sum.Farms))

	if len(apps) > 0 {
		d.pdf.AddPage()
		d.section("Detailed Records")
	}
	for i, a := range apps {
		if i > 0 {
			d.pdf.Ln(3)
		}
		d.pdf.SetFont("Helvetica", "B", 11)
		d.pdf.SetTextColor(0, 0, 0)
		header := fmt.Sprintf("%d. %s - %s", i+1, a.Farm, strings.Join(paddockNames(a.PaddockIDs, paddocks), ", "))
		d.pdf.MultiCell(0, lineHeight, d.tr(header), "", "L", false)

		d.line("Date: "+a.ApplicationDate.In(r.loc).Format(dateLayout), 102, 102, 102)
		d.line("Operator: "+a.Operator, 102, 102, 102)
		d.line(fmt.Sprintf("Area: %g hectares", a.Area), 102, 102, 102)
		d.line(fmt.Sprintf("Water Rate: %g L/ha", a.WaterRate), 102, 102, 102)
		if len(a.Chemicals) > 0 {
			parts := make([]string, len(a.Chemicals))
			for j, c := range a.Chemicals {
				parts[j] = fmt.Sprintf("%s %g%s", c.Name, c.Rate, c.Unit)
			}
			d.line("Chemicals: "+strings.Join(parts, ", "), 102, 102, 102)
		}
		if a.GPS != nil {
			d.line(fmt.Sprintf("GPS: %.6f, %.6f", a.GPS.Latitude, a.GPS.Longitude), 102, 102, 102)
		}
	}

	return d.write(w)
}
