package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/BruksfildServices01/health-portal/internal/models"
)

// Renderer lays out a prescription as a single A4 document.
type Renderer struct {
	Title string
}

func NewRenderer(title string) *Renderer {
	if title == "" {
		title = "Medical Prescription"
	}
	return &Renderer{Title: title}
}

func (r *Renderer) Render(p *models.Prescription) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle(r.Title, true)
	doc.SetMargins(18, 18, 18)
	doc.AddPage()

	tr := doc.UnicodeTranslatorFromDescriptor("")

	// ------ header
	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, tr(r.Title), "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 11)
	line := func(label, value string) {
		if value == "" {
			return
		}
		doc.SetFont("Helvetica", "B", 11)
		doc.CellFormat(38, 7, tr(label), "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
		doc.CellFormat(0, 7, tr(value), "", 1, "L", false, 0, "")
	}

	line("Doctor:", doctorLine(p.Doctor))
	line("Patient:", p.Patient.Name)
	line("Issued:", p.CreatedAt.Format("2006-01-02"))
	line("Status:", p.Status)
	if p.FollowUpDate != nil {
		line("Follow-up:", *p.FollowUpDate)
	}
	doc.Ln(4)

	// ------ medications
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, tr("Medications"), "B", 1, "L", false, 0, "")
	doc.Ln(2)

	widths := []float64{52, 36, 40, 46}
	doc.SetFillColor(235, 235, 235)
	doc.SetFont("Helvetica", "B", 10)
	for i, h := range []string{"Name", "Dosage", "Frequency", "Duration"} {
		doc.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 10)
	for _, m := range p.Medications {
		for i, v := range []string{m.Name, m.Dosage, m.Frequency, m.Duration} {
			doc.CellFormat(widths[i], 7, tr(v), "1", 0, "L", false, 0, "")
		}
		doc.Ln(-1)
		if m.Notes != "" {
			doc.SetFont("Helvetica", "I", 9)
			doc.MultiCell(0, 5, tr("  "+m.Notes), "", "L", false)
			doc.SetFont("Helvetica", "", 10)
		}
	}

	if p.Notes != "" {
		doc.Ln(4)
		doc.SetFont("Helvetica", "B", 12)
		doc.CellFormat(0, 8, tr("Notes"), "B", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.MultiCell(0, 5, tr(p.Notes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render prescription %s: %w", p.ID, err)
	}
	return buf.Bytes(), nil
}

func doctorLine(d models.Doctor) string {
	if d.Name == "" {
		return ""
	}
	if d.Specialization == "" {
		return "Dr. " + d.Name
	}
	return fmt.Sprintf("Dr. %s (%s)", d.Name, d.Specialization)
}
