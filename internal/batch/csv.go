package batch

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/delvescope/delvescope/pkg/scoring"
)

// WriteCSV writes one row per batch item: identity columns, the aggregate
// score and grade, then one column per metric in registry order. Failed items
// keep their row with the error in the last column so a spreadsheet shows
// every input file.
func WriteCSV(w io.Writer, summary *Summary) error {
	keys := scoring.MetricKeys()

	cw := csv.NewWriter(w)
	header := []string{"path", "level_name", "rooms", "connections", "overall_score", "grade"}
	header = append(header, keys...)
	header = append(header, "error")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, item := range summary.Items {
		row := make([]string, 0, len(header))
		if item.Err != nil {
			row = append(row, item.Path, "", "", "", "", "")
			for range keys {
				row = append(row, "")
			}
			row = append(row, item.Err.Error())
		} else {
			res := item.Result
			row = append(row, item.Path, res.LevelName,
				fmt.Sprintf("%d", res.RoomCount), fmt.Sprintf("%d", res.ConnectionCount),
				fmt.Sprintf("%.4f", res.OverallScore), res.Grade)
			for _, key := range keys {
				if mr, ok := res.Scores[key]; ok {
					row = append(row, fmt.Sprintf("%.4f", mr.Score))
				} else {
					row = append(row, "")
				}
			}
			row = append(row, "")
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
