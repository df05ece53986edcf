package report

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/fadilmartias/founder-assessment/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	reportSheet  = "Report"
)

// ExportXLSX builds a workbook with a key/value summary sheet and the full
// rendered report, one line per row.
func ExportXLSX(r model.Report) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(reportSheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	rows := [][2]any{
		{"Report ID", r.ID},
		{"Founder", r.FounderName},
		{"Company", r.CompanyName},
		{"Email", r.Email},
		{"Phone", r.Phone},
		{"Input mode", string(r.InputMode)},
		{"Language", r.DetectedLanguage},
		{"Transcription provider", r.TranscriptionProvider},
		{"Analysis provider", r.AnalysisProvider},
		{"Degraded stages", strings.Join(r.Degraded, ", ")},
		{"Created at", r.CreatedAt.UTC().Format(timeLayout)},
		{"Processing time (ms)", r.ProcessingTimeMs},
	}
	for i, row := range rows {
		keyCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valueCell, _ := excelize.CoordinatesToCellName(2, i+1)
		if err := f.SetCellValue(summarySheet, keyCell, row[0]); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(summarySheet, valueCell, row[1]); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", fmt.Sprintf("A%d", len(rows)), bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 24); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 60); err != nil {
		return nil, err
	}

	text := r.RenderedText
	if text == "" {
		text = Render(r)
	}
	row := 0
	for _, line := range strings.Split(text, "\n") {
		heading := strings.HasPrefix(line, "#")
		for _, chunk := range splitCell(line, excelize.TotalCellChars) {
			row++
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetCellValue(reportSheet, cell, chunk); err != nil {
				return nil, err
			}
			if heading {
				if err := f.SetCellStyle(reportSheet, cell, cell, bold); err != nil {
					return nil, err
				}
			}
		}
	}
	if err := f.SetColWidth(reportSheet, "A", "A", 120); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

// splitCell cuts line into pieces of at most max UTF-16 units, the unit
// excelize truncates cell text at.
func splitCell(line string, max int) []string {
	var chunks []string
	start, units := 0, 0
	for i, r := range line {
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		if units+n > max {
			chunks = append(chunks, line[start:i])
			start, units = i, 0
		}
		units += n
	}
	return append(chunks, line[start:])
}

// ExportFilename is the attachment name for a report download.
func ExportFilename(r model.Report) string {
	return fmt.Sprintf("assessment-%s.xlsx", r.ID)
}
