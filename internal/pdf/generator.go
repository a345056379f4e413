package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/ataliba/contratos-service/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	// Core fonts cover Portuguese through the cp1252 translator.
	return &Generator{fontName: "Helvetica"}
}

func (g *Generator) Generate(doc model.ReportDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, tr("Relatório de Fiscalização Contratual"), "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Contrato nº %s — %s", doc.View.Agreement.Number, doc.View.Agreement.Department)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Mês de referência: %s", doc.Report.RefMonth)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("Dados do contrato"), "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	lines := []string{
		fmt.Sprintf("Objeto: %s", doc.View.Agreement.Category),
		fmt.Sprintf("Vigência: %s a %s", formatDate(doc.View.Agreement.StartDate), formatDate(doc.View.ConfirmedEnd)),
		fmt.Sprintf("Situação: %s", doc.View.Status.Label()),
	}
	if doc.View.ExtensionPending {
		lines = append(lines, fmt.Sprintf("Prorrogação em análise até: %s", formatDate(doc.View.ProjectedEnd)))
	}
	lines = append(lines, doc.View.Renewal.Message)
	for _, line := range lines {
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}
	pdf.Ln(3)

	for _, section := range doc.Report.Content {
		pdf.SetFont(g.fontName, "B", 12)
		pdf.CellFormat(0, 8, tr(section.Title), "", 1, "L", false, 0, "")
		pdf.SetFont(g.fontName, "", 10)
		for _, field := range section.Fields {
			pdf.MultiCell(0, 5, tr(fmt.Sprintf("%s: %s", field.Label, fieldValue(field))), "", "L", false)
		}
		pdf.Ln(2)
	}

	pdf.Ln(2)
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("Assinaturas"), "", 1, "L", false, 0, "")
	g.signatureBlock(pdf, tr, model.RoleTechnical.Label(), doc.Report.Technical)
	if doc.Report.AdminRequired {
		g.signatureBlock(pdf, tr, model.RoleAdministrative.Label(), doc.Report.Administrative)
	}
	g.signatureBlock(pdf, tr, model.RoleManager.Label(), doc.Report.Manager)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) signatureBlock(pdf *gofpdf.Fpdf, tr func(string) string, label string, signature model.ReportSignature) {
	pdf.SetFont(g.fontName, "", 11)
	name := signature.Name
	if strings.TrimSpace(name) == "" {
		name = "—"
	}
	line := fmt.Sprintf("%s: ______________________ /%s/", label, name)
	if signature.SignedAt != nil {
		line = fmt.Sprintf("%s: assinado em %s /%s/", label, signature.SignedAt.Format("02/01/2006 15:04"), name)
	}
	pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
}

func fieldValue(field model.ReportField) string {
	switch field.Kind {
	case model.FieldBoolean:
		if field.Checked == nil {
			return "—"
		}
		if *field.Checked {
			return "Sim"
		}
		return "Não"
	default:
		if strings.TrimSpace(field.Text) == "" {
			return "—"
		}
		return field.Text
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("02/01/2006")
}
