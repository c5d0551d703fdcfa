package forecast

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

func IndentExpand(indent string, growth int) string {
	if growth < 1 {
		return ""
	}
	return strings.Repeat(indent, growth)
}

// TablePrint writes the forecast rows as an aligned table.
func (t *Table) TablePrint(w io.Writer, prefix, indent string, indentGrowth int) error {
	if t.Len() == 0 {
		_, err := fmt.Fprintf(w, "%s%sForecast: None\n", prefix, IndentExpand(indent, indentGrowth))
		return err
	}

	if _, err := fmt.Fprintf(w, "%s%sForecast:\n", prefix, IndentExpand(indent, indentGrowth)); err != nil {
		return err
	}
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	header := []string{ColumnDate}
	for _, level := range LevelsWidestFirst {
		lower, _ := level.Columns()
		header = append(header, lower)
	}
	for _, level := range levelsNarrowestFirst {
		_, upper := level.Columns()
		header = append(header, upper)
	}
	if _, err := fmt.Fprintf(tbl, "%s%s%s\t\n",
		prefix, IndentExpand(indent, indentGrowth+1), strings.Join(header, "\t")); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if _, err := fmt.Fprintf(tbl, "%s%s%s\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t\n",
			prefix, IndentExpand(indent, indentGrowth+1),
			row.Date.Format(time.DateOnly),
			row.LB95, row.LB75, row.LB50, row.UB50, row.UB75, row.UB95); err != nil {
			return err
		}
	}
	return tbl.Flush()
}
