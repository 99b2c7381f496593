package utils

import (
	"fmt"
	"reflect"
	"strings"

	"steg-backend/config"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// GenerateExcel creates an Excel file from the provided data slice. Headers
// name the struct fields to export, one column each, in order.
func GenerateExcel(data interface{}, taskName string, headers []string) (string, error) {
	dirPath := "./public/files"
	if err := EnsureDirectoryExists(dirPath); err != nil {
		return "", fmt.Errorf("failed to ensure directory exists: %v", err)
	}

	f := excelize.NewFile()
	sheetName := "Sheet1"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}

	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return "", fmt.Errorf("error setting header %s: %v", header, err)
		}
	}

	dataSlice := reflect.ValueOf(data)
	if dataSlice.Kind() != reflect.Slice {
		return "", fmt.Errorf("expected data to be a slice")
	}

	for row := 0; row < dataSlice.Len(); row++ {
		item := dataSlice.Index(row).Interface()

		for col, header := range headers {
			field := reflect.ValueOf(item).FieldByName(header)
			if !field.IsValid() {
				config.Logger.Warn("Export field not found on struct",
					zap.String("field", header),
					zap.Int("row", row+2))
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheetName, cell, field.Interface()); err != nil {
				return "", fmt.Errorf("error setting value for field %s row %d: %v", header, row+2, err)
			}
		}
	}

	f.SetActiveSheet(index)

	fileName := fmt.Sprintf("%s_%s.xlsx", taskName, Today().Format("2006-01-02_15-04-05"))
	relativeFilePath := fmt.Sprintf("%s/%s", dirPath, fileName)

	if err := f.SaveAs(relativeFilePath); err != nil {
		return "", err
	}

	config.Logger.Info("Excel export generated", zap.String("file", relativeFilePath))
	return fmt.Sprintf("/public/files/%s", fileName), nil
}

// ReclamationCSVHeader is the fixed first line of every réclamation CSV
// export. The dashboard relies on these column names.
var ReclamationCSVHeader = []string{
	"Code", "Importance", "TypePanne", "GenrePanne", "NumClient", "Etat", "Equipe", "Date",
}

// CSVRower is implemented by entities that can render themselves as one CSV
// export row.
type CSVRower interface {
	CSVRow() []string
}

// GenerateCSV renders a fixed header line plus one comma-joined row per
// item. Fields containing commas or quotes are quoted the standard way.
func GenerateCSV[T CSVRower](items []T, header []string) string {
	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	b.WriteString("\n")

	for _, item := range items {
		cols := item.CSVRow()
		escaped := make([]string, len(cols))
		for i, col := range cols {
			escaped[i] = escapeCSVField(col)
		}
		b.WriteString(strings.Join(escaped, ","))
		b.WriteString("\n")
	}

	return b.String()
}

func escapeCSVField(field string) string {
	if strings.ContainsAny(field, ",\"\n") {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return field
}
