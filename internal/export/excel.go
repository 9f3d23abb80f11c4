// Package export renders finalized training programs into xlsx workbooks
// that trainers hand to clients.
package export

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/xuri/excelize/v2"

	"fitmanager/internal/models"
)

// Program documents are flat maps keyed by field name plus a day letter:
// "es1A", "serie1A", "rep1A" describe the first exercise of day A.
var exerciseKey = regexp.MustCompile(`^es(\d+)([A-Z])$`)

// BuildWorkbook renders a parsed program into a workbook with one sheet
// per training day. Programs whose content never parsed as JSON cannot
// be exported: the caller should surface the raw text instead.
func BuildWorkbook(p *models.Program) (*excelize.File, error) {
	if !p.IsParsed {
		return nil, fmt.Errorf("program %s has no structured content", p.ID)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(p.Content), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse program content: %w", err)
	}

	days := dayLetters(doc)
	if len(days) == 0 {
		return nil, fmt.Errorf("program %s contains no training days", p.ID)
	}

	f := excelize.NewFile()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DCE6F1"}},
	})
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})

	for i, day := range days {
		sheet := "Giorno " + day
		if i == 0 {
			f.SetSheetName("Sheet1", sheet)
		} else {
			f.NewSheet(sheet)
		}

		f.SetColWidth(sheet, "A", "A", 42)
		f.SetColWidth(sheet, "B", "E", 14)

		// Intestazione: cliente e validità della scheda.
		f.SetCellValue(sheet, "A1", stringField(doc, "cliente"))
		f.SetCellStyle(sheet, "A1", "A1", titleStyle)
		if v := stringField(doc, "data_inizio_scheda"); v != "" {
			f.SetCellValue(sheet, "A2", fmt.Sprintf("Validità: %s - %s", v, stringField(doc, "data_fine_scheda")))
		}
		if v := stringField(doc, "gruppi"+day); v != "" {
			f.SetCellValue(sheet, "A3", v)
			f.SetCellStyle(sheet, "A3", "A3", headerStyle)
		}

		row := 5
		row = writeOptionalRow(f, sheet, row, "Riscaldamento", stringField(doc, "riscaldamento"+day))
		row = writeOptionalRow(f, sheet, row, "Mobilità", stringField(doc, "mobilita1"+day))
		row = writeOptionalRow(f, sheet, row, "Mobilità", stringField(doc, "mobilita2"+day))

		// Tabella esercizi.
		headers := []string{"Esercizio", "Serie", "Rep", "Recupero", "Serie speciali"}
		for col, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, h)
			f.SetCellStyle(sheet, cell, cell, headerStyle)
		}
		row++

		for _, n := range exerciseNumbers(doc, day) {
			idx := strconv.Itoa(n)
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), stringField(doc, "es"+idx+day))
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), stringField(doc, "serie"+idx+day))
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), stringField(doc, "rep"+idx+day))
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), stringField(doc, "rest"+idx+day))
			if v := stringField(doc, "speciali"+idx+day); v != "" {
				f.SetCellValue(sheet, fmt.Sprintf("E%d", row), v)
			}
			row++
		}

		row++
		row = writeOptionalRow(f, sheet, row, "Stretching", stringField(doc, "stretching1"+day))
		row = writeOptionalRow(f, sheet, row, "Stretching", stringField(doc, "stretching2"+day))
		writeOptionalRow(f, sheet, row, "Defaticamento", stringField(doc, "cooldown"+day))
	}

	return f, nil
}

// dayLetters collects the day suffixes present in the document, sorted.
func dayLetters(doc map[string]any) []string {
	seen := map[string]bool{}
	for k := range doc {
		if m := exerciseKey.FindStringSubmatch(k); m != nil {
			seen[m[2]] = true
		}
	}
	days := make([]string, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}

// exerciseNumbers returns the sorted exercise indexes for one day.
func exerciseNumbers(doc map[string]any, day string) []int {
	nums := []int{}
	for k := range doc {
		m := exerciseKey.FindStringSubmatch(k)
		if m == nil || m[2] != day {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

func writeOptionalRow(f *excelize.File, sheet string, row int, label, value string) int {
	if value == "" {
		return row
	}
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s: %s", label, value))
	return row + 1
}

func stringField(doc map[string]any, key string) string {
	v, ok := doc[key]
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
