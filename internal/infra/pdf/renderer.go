package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/aidosk/devfolio-api/internal/entity"
)

// placeholder replaces every missing or empty optional value. Rows are never
// omitted and never rendered with an empty value.
const placeholder = "—"

type row struct {
	label string
	value string
}

type section struct {
	title string
	rows  []row
}

// Renderer turns a validated submission into the fixed-layout PDF report:
// title, identifier, then four labeled sections of label/value rows.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Render(sub entity.BriefSubmission, id, attachmentURL string) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	// Text streams stay uncompressed so the report remains searchable by
	// tools that grep the raw file.
	doc.SetCompression(false)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, tr("Project Brief"), "", 1, "", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 6, tr("Submission ID: "+id), "", 1, "", false, 0, "")
	doc.Ln(4)

	for _, sec := range sections(sub, attachmentURL) {
		doc.SetFont("Helvetica", "B", 13)
		doc.CellFormat(0, 8, tr(sec.title), "", 1, "", false, 0, "")
		for _, rw := range sec.rows {
			writeRow(doc, tr, rw)
		}
		doc.Ln(4)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render brief report: %w", err)
	}
	return buf.Bytes(), nil
}

// writeRow prints the bold label and the plain value on the same line.
func writeRow(doc *fpdf.Fpdf, tr func(string) string, rw row) {
	label := rw.label + ": "
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(doc.GetStringWidth(tr(label))+1, 6, tr(label), "", 0, "", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 6, tr(orDash(rw.value)), "", 1, "", false, 0, "")
}

func sections(sub entity.BriefSubmission, attachmentURL string) []section {
	return []section{
		{
			title: "Client & Business",
			rows: []row{
				{"Name", sub.Client.Name},
				{"Industry", sub.Client.Industry},
				{"Geography", joinList(sub.Client.Geography)},
				{"Languages", joinList(sub.Client.Languages)},
				{"Business goals", joinList(sub.Client.BusinessGoals)},
			},
		},
		{
			title: "Audience & Product",
			rows: []row{
				{"Target audience", sub.Audience.TargetAudience},
				{"Channels", joinList(sub.Audience.Channels)},
				{"Value proposition", sub.Audience.ValueProposition},
				{"Integrations", joinList(sub.Audience.Integrations)},
			},
		},
		{
			title: "Metrics & Brand",
			rows: []row{
				{"KPI", sub.Metrics.KPI},
				{"Brandbook", yesNo(sub.Metrics.HasBrandbook)},
				{"Brandbook link", sub.Metrics.BrandbookLink},
				{"Brand tone", fmt.Sprintf("%d/100", sub.Metrics.BrandToneScore)},
			},
		},
		{
			title: "Contacts",
			rows: []row{
				{"Name", sub.Contact.ContactName},
				{"Email", sub.Contact.ContactEmail},
				{"Phone", sub.Contact.ContactPhone},
				{"Preferred channel", sub.Contact.PreferredChannel},
				{"Team & roles", sub.Contact.TeamRoles},
				{"Attachment", attachmentURL},
			},
		},
	}
}

func joinList(vals []string) string {
	return strings.Join(vals, ", ")
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
