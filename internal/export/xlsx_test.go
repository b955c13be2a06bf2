package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/moussahe/schoolaris-revision/internal/revision"
)

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	reviewedAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	logs := []revision.ReviewLog{
		{
			ID: "log-1", CardID: "card-1", ChildID: "child-1",
			Question: "7 x 8 = ?", ExpectedAnswer: "56", ChildAnswer: "56",
			Quality: 5, Feedback: "Exact!", TimeSpentSeconds: 12,
			ReviewedAt: reviewedAt,
		},
		{
			ID: "log-2", CardID: "card-1", ChildID: "child-1",
			Question: "6 x 7 = ?", ExpectedAnswer: "42", ChildAnswer: "40",
			Quality: 2, Feedback: "Presque !", TimeSpentSeconds: 20,
			ReviewedAt: reviewedAt.Add(time.Hour),
		},
	}
	stats := &revision.Stats{
		TotalCards:    3,
		MasteredCards: 1,
		TotalReviews:  2,
		SuccessRate:   0.5,
		StreakDays:    1,
	}

	require.NoError(t, WriteWorkbook(path, "child-1", logs, stats))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Reviews")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Reviewed at", rows[0][0])
	assert.Equal(t, "7 x 8 = ?", rows[1][1])
	assert.Equal(t, "5", rows[1][4])
	assert.Equal(t, "40", rows[2][3])

	child, err := f.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "child-1", child)
	total, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "3", total)
}

func TestWriteWorkbookEmptyHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteWorkbook(path, "child-1", nil, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Reviews")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// No stats: the summary sheet is absent.
	idx, err := f.GetSheetIndex("Summary")
	require.NoError(t, err)
	assert.Equal(t, -1, idx)
}
