package report

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"peakscan/internal/scan"
)

const sheetName = "Scan"

// ExcelSink writes the scan result as a dated XLSX workbook: frozen
// header row, alternating row banding, and a conditional highlight bound
// to the run's MaxPctToHigh threshold. The highlight is a live formula,
// not a baked-in color — editing a PctToATH cell re-evaluates it.
type ExcelSink struct {
	dir string
}

// NewExcelSink creates an Excel sink writing into dir
func NewExcelSink(dir string) *ExcelSink {
	return &ExcelSink{dir: dir}
}

// Name returns the sink name
func (s *ExcelSink) Name() string {
	return "excel"
}

// Publish writes the workbook
func (s *ExcelSink) Publish(ctx context.Context, result *scan.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := s.writeRows(f, result); err != nil {
		return err
	}
	if err := s.applyFormatting(f, result); err != nil {
		return err
	}

	path := filepath.Join(s.dir, fmt.Sprintf("scan_results_%s.xlsx", result.Timestamp.Format("20060102")))
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	return nil
}

// writeRows fills the header and one row per accepted record
func (s *ExcelSink) writeRows(f *excelize.File, result *scan.Result) error {
	for col, name := range Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return fmt.Errorf("write header cell %s: %w", cell, err)
		}
	}

	for i, rec := range result.Records {
		row := renderNumericRow(rec)
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("data cell name: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
	}

	return nil
}

// applyFormatting adds the frozen header, banding, and the threshold
// highlight rule
func (s *ExcelSink) applyFormatting(f *excelize.File, result *scan.Result) error {
	lastCol, err := excelize.ColumnNumberToName(len(Columns))
	if err != nil {
		return fmt.Errorf("last column name: %w", err)
	}

	if err := f.SetColWidth(sheetName, "A", lastCol, 14); err != nil {
		return fmt.Errorf("set column widths: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	// Freeze the header row
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header row: %w", err)
	}

	if len(result.Records) == 0 {
		return nil
	}

	// Alternating row banding on even data rows
	bandStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"F2F2F2"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("band style: %w", err)
	}
	for i := range result.Records {
		row := i + 2
		if row%2 != 0 {
			continue
		}
		start := fmt.Sprintf("A%d", row)
		end := fmt.Sprintf("%s%d", lastCol, row)
		if err := f.SetCellStyle(sheetName, start, end, bandStyle); err != nil {
			return fmt.Errorf("apply band style to row %d: %w", row, err)
		}
	}

	// Live highlight: any row within the run's threshold of its all-time
	// high stays yellow, bound to the threshold value used for this run
	highlight, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFFF00"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("highlight style: %w", err)
	}

	rangeRef := fmt.Sprintf("A2:%s%d", lastCol, len(result.Records)+1)
	formula := fmt.Sprintf("=$%s2<=%s", pctToATHColumn,
		strconv.FormatFloat(result.Thresholds.MaxPctToHigh, 'f', -1, 64))

	if err := f.SetConditionalFormat(sheetName, rangeRef, []excelize.ConditionalFormatOptions{
		{
			Type:     "formula",
			Criteria: formula,
			Format:   highlight,
		},
	}); err != nil {
		return fmt.Errorf("set conditional format: %w", err)
	}

	return nil
}
