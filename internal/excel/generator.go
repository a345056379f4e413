package excel

import (
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ataliba/contratos-service/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes the agreements register: one summary sheet with every
// agreement's derived status, end dates and renewal advisory.
func (g *Generator) Generate(register model.AgreementRegister) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "Contratos"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Registro de contratos")
	set("B1", register.GeneratedAt.Format("02/01/2006 15:04"))

	headers := []string{
		"Número",
		"Objeto",
		"Secretaria",
		"Início",
		"Fim confirmado",
		"Fim projetado",
		"Situação",
		"Dias restantes",
		"Emergencial",
		"Parecer de prorrogação",
	}
	headerRow := 3
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		set(cell, header)
	}

	for i, entry := range register.Entries {
		row := headerRow + 1 + i
		values := []interface{}{
			entry.Agreement.Number,
			entry.Agreement.Category,
			entry.Agreement.Department,
			formatDate(entry.Agreement.StartDate),
			formatDate(entry.ConfirmedEnd),
			formatDate(entry.ProjectedEnd),
			entry.Status.Label(),
			daysRemainingValue(entry),
			boolLabel(entry.Agreement.IsEmergency),
			entry.Renewal.Message,
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			set(cell, value)
		}
	}

	_ = file.SetColWidth(sheet, "A", "A", 14)
	_ = file.SetColWidth(sheet, "B", "C", 40)
	_ = file.SetColWidth(sheet, "D", "F", 14)
	_ = file.SetColWidth(sheet, "G", "I", 14)
	_ = file.SetColWidth(sheet, "J", "J", 70)

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func daysRemainingValue(entry model.AgreementView) interface{} {
	if entry.DaysRemaining == nil {
		return "—"
	}
	return *entry.DaysRemaining
}

func boolLabel(value bool) string {
	if value {
		return "Sim"
	}
	return "Não"
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("02/01/2006")
}
