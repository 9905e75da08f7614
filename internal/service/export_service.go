package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Research Report"

// ExportService turns a message's markdown content into a spreadsheet. It
// lifts pipe-delimited tables into a 2-D grid of string cells; when the
// content has no tables at all, the whole text lands in a single fallback
// cell so the export is never empty.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// TableGrid extracts table rows from markdown content. Separator rows
// ("|---|---|") are dropped, and a blank row is inserted between consecutive
// tables.
func (s *ExportService) TableGrid(content string) [][]string {
	var grid [][]string
	inTable := false

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "|") {
			if strings.Contains(trimmed, "---") {
				continue
			}
			var row []string
			for _, cell := range strings.Split(trimmed, "|") {
				if c := strings.TrimSpace(cell); c != "" {
					row = append(row, c)
				}
			}
			if len(row) > 0 {
				grid = append(grid, row)
			}
			inTable = true
		} else if inTable && len(grid) > 0 {
			grid = append(grid, []string{})
			inTable = false
		}
	}

	// Trim a trailing blank spacer row.
	if n := len(grid); n > 0 && len(grid[n-1]) == 0 {
		grid = grid[:n-1]
	}

	if len(grid) == 0 {
		grid = [][]string{{"Research Content"}, {content}}
	}
	return grid
}

// WriteWorkbook renders the content's table grid as an .xlsx workbook.
func (s *ExportService) WriteWorkbook(content string, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), exportSheetName)

	for i, row := range s.TableGrid(content) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("could not address row %d: %w", i+1, err)
		}
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		if err := f.SetSheetRow(exportSheetName, cell, &cells); err != nil {
			return fmt.Errorf("could not write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("could not write workbook: %w", err)
	}
	return nil
}
