package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
)

const suggestionSheet = "Suggestions"

var suggestionHeaders = []string{
	"ID", "Kind", "Suggested Name", "Normalized Name", "Confidence",
	"Usage Count", "Status", "Context", "First Suggested", "Last Suggested",
}

// WriteSuggestionsXLSX renders the suggestion queue as a spreadsheet for
// offline review.
func WriteSuggestionsXLSX(w io.Writer, suggestions []domain.SuggestedEntity) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(suggestionSheet)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	for col, h := range suggestionHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(suggestionSheet, cell, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for row, s := range suggestions {
		values := []interface{}{
			s.ID.String(),
			string(s.Kind),
			s.SuggestedName,
			s.NormalizedName,
			s.Confidence,
			s.UsageCount,
			string(s.Status),
			s.Context,
			s.FirstSuggestedAt.Format("2006-01-02 15:04:05"),
			s.LastSuggestedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(suggestionSheet, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", row+1, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
