package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/lab-annotate/cataloger-api/internal/comment"
	"github.com/lab-annotate/cataloger-api/internal/models"
)

// AsPDF renders the card as a one-page printable document.
func AsPDF(card *models.Card) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 10, card.Title, "", "L", false)

	pdf.SetFont("Helvetica", "I", 11)
	pdf.CellFormat(0, 8, "by "+Author(card), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	sections := comment.Parse(card.Comment)
	for _, section := range []struct {
		header string
		text   string
	}{
		{comment.HeaderObserved, sections.Observed},
		{comment.HeaderConditions, sections.Conditions},
		{comment.HeaderAdditional, sections.Additional},
	} {
		if strings.TrimSpace(section.text) == "" {
			continue
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, section.header, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, section.text, "", "L", false)
		pdf.Ln(2)
	}

	pairs := keyValues(card)
	if card.Project != nil {
		pairs = append([][2]string{{"project", card.Project.Name}}, pairs...)
	}
	if len(pairs) > 0 {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, "Annotations", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for _, pair := range pairs {
			pdf.CellFormat(50, 6, pair[0], "1", 0, "L", false, 0, "")
			pdf.CellFormat(0, 6, pair[1], "1", 1, "L", false, 0, "")
		}
	}

	if tags := comment.ExtractTags(card.Comment); len(tags) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, fmt.Sprintf("Tags: %s", strings.Join(tags, ", ")), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
