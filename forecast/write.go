package forecast

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/aouyang1/go-bandchart/timedataset"
	"github.com/xuri/excelize/v2"
)

const sampleSheet = "Sheet1"

// WriteXLSX writes the table as a single sheet workbook with a lower case "date" header
// followed by the bound columns, the same shape Load expects.
func WriteXLSX(w io.Writer, t *Table) error {
	wb := excelize.NewFile()
	defer wb.Close()

	header := []interface{}{"date"}
	for _, col := range BoundColumns {
		header = append(header, col)
	}
	if err := wb.SetSheetRow(sampleSheet, "A1", &header); err != nil {
		return fmt.Errorf("unable to write header, %w", err)
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		vals := []interface{}{row.Date, row.UB50, row.LB50, row.UB75, row.LB75, row.UB95, row.LB95}
		if err := wb.SetSheetRow(sampleSheet, cell, &vals); err != nil {
			return fmt.Errorf("unable to write row %d, %w", i+2, err)
		}
	}

	_, err := wb.WriteTo(w)
	return err
}

// SampleTable builds a monthly fan of nested bounds starting the month after start.
// The 50% upper bound of the first row equals origin and every interval widens with
// the square root of the horizon.
func SampleTable(start time.Time, n int, origin float64) (*Table, error) {
	rows := make([]Row, 0, n)
	for i := 0; i < n; i++ {
		date := timedataset.AddMonths(timedataset.Date(start), i+1)
		spread := math.Sqrt(float64(i + 1))
		hw50, hw75, hw95 := 0.5*spread, 0.9*spread, 1.6*spread

		// anchor the first 50% upper bound at origin and drift slowly afterwards
		center := origin - 0.5 + 0.02*float64(i)
		rows = append(rows, Row{
			Date: date,
			UB50: center + hw50,
			LB50: center - hw50,
			UB75: center + hw75,
			LB75: center - hw75,
			UB95: center + hw95,
			LB95: center - hw95,
		})
	}
	return NewTable(rows)
}
