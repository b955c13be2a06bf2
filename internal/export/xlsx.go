// Package export writes a child's review history to an Excel workbook
// for parents and support staff.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/moussahe/schoolaris-revision/internal/revision"
)

const (
	historySheet = "Reviews"
	summarySheet = "Summary"
)

var historyHeader = []string{
	"Reviewed at", "Question", "Expected answer", "Child's answer",
	"Quality", "Feedback", "Time spent (s)",
}

// WriteWorkbook builds the workbook: one row per review log plus a
// summary sheet with the child's aggregate stats.
func WriteWorkbook(path string, childID string, logs []revision.ReviewLog, stats *revision.Stats) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", historySheet)

	for col, h := range historyHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(historySheet, cell, h); err != nil {
			return fmt.Errorf("set header: %w", err)
		}
	}

	for i, log := range logs {
		row := i + 2
		values := []any{
			log.ReviewedAt.Format(time.RFC3339),
			log.Question,
			log.ExpectedAnswer,
			log.ChildAnswer,
			log.Quality,
			log.Feedback,
			log.TimeSpentSeconds,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("cell: %w", err)
			}
			if err := f.SetCellValue(historySheet, cell, v); err != nil {
				return fmt.Errorf("set cell: %w", err)
			}
		}
	}

	if stats != nil {
		if err := writeSummary(f, childID, stats); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, childID string, stats *revision.Stats) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}

	rows := [][2]any{
		{"Child", childID},
		{"Total cards", stats.TotalCards},
		{"Mastered cards", stats.MasteredCards},
		{"Due today", stats.DueToday},
		{"Average ease factor", stats.AverageEaseFactor},
		{"Total reviews", stats.TotalReviews},
		{"Success rate", stats.SuccessRate},
		{"Streak (days)", stats.StreakDays},
	}
	for i, r := range rows {
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", i+1), r[0]); err != nil {
			return fmt.Errorf("summary label: %w", err)
		}
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", i+1), r[1]); err != nil {
			return fmt.Errorf("summary value: %w", err)
		}
	}
	return nil
}
