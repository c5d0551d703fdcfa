package forecast

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aouyang1/go-bandchart/timedataset"
	"github.com/xuri/excelize/v2"
)

// ColumnDate is the canonical name of the first column regardless of its header.
const ColumnDate = "Date"

// BoundColumns lists the required bound headers in workbook order: UB_50, LB_50, UB_75,
// LB_75, UB_95, LB_95.
var BoundColumns = boundColumns()

func boundColumns() []string {
	cols := make([]string, 0, 2*len(levelsNarrowestFirst))
	for _, level := range levelsNarrowestFirst {
		lower, upper := level.Columns()
		cols = append(cols, upper, lower)
	}
	return cols
}

var (
	ErrNoHeader          = errors.New("forecast source has no header row")
	ErrMissingColumn     = errors.New("forecast source is missing a required column")
	ErrMalformedCell     = errors.New("forecast source has a malformed cell")
	ErrUnsupportedSource = errors.New("unsupported forecast source extension")
	ErrNoSheet           = errors.New("workbook has no sheets")
)

var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/06",
	"01-02-06",
}

// Load reads a forecast table from an .xlsx or .csv file chosen by extension.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(f)
	case ".csv":
		return ReadCSV(f)
	default:
		return nil, fmt.Errorf("%s, %w", path, ErrUnsupportedSource)
	}
}

// ReadXLSX parses the first sheet of a workbook into a forecast table. Cells are read
// raw so date cells arrive as Excel serial numbers, interpreted in the workbook's 1900
// or 1904 date system.
func ReadXLSX(r io.Reader) (*Table, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("unable to open workbook, %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}
	props, err := wb.GetWorkbookProps()
	if err != nil {
		return nil, fmt.Errorf("unable to read workbook properties, %w", err)
	}
	date1904 := props.Date1904 != nil && *props.Date1904

	rows, err := wb.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("unable to read sheet %s, %w", sheets[0], err)
	}
	return parseRecords(rows, date1904)
}

// ReadCSV parses comma separated records with a header row into a forecast table.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to read csv, %w", err)
	}
	return parseRecords(records, false)
}

// parseRecords converts a header row plus data records into a table. Numeric dates are
// Excel serials in the 1904 date system when date1904 is set.
func parseRecords(records [][]string, date1904 bool) (*Table, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, ErrNoHeader
	}

	colIdx, err := headerIndex(records[0])
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		if blankRecord(record) {
			continue
		}
		row, err := parseRow(record, colIdx, date1904)
		if err != nil {
			// +2 accounts for the header and one based spreadsheet rows
			return nil, fmt.Errorf("row %d, %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return NewTable(rows)
}

// headerIndex maps canonical column names to their position. The first column is
// always treated as the date column whatever its header says.
func headerIndex(header []string) (map[string]int, error) {
	colIdx := map[string]int{ColumnDate: 0}
	for i, name := range header {
		if i == 0 {
			continue
		}
		name = strings.TrimSpace(name)
		if _, exists := colIdx[name]; !exists {
			colIdx[name] = i
		}
	}
	for _, col := range BoundColumns {
		if _, exists := colIdx[col]; !exists {
			return nil, fmt.Errorf("%s, %w", col, ErrMissingColumn)
		}
	}
	return colIdx, nil
}

func parseRow(record []string, colIdx map[string]int, date1904 bool) (Row, error) {
	cell := func(col string) string {
		idx := colIdx[col]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	date, err := parseDate(cell(ColumnDate), date1904)
	if err != nil {
		return Row{}, err
	}

	row := Row{Date: date}
	for _, level := range levelsNarrowestFirst {
		lowerCol, upperCol := level.Columns()
		lower, err := parseBound(lowerCol, cell(lowerCol))
		if err != nil {
			return Row{}, err
		}
		upper, err := parseBound(upperCol, cell(upperCol))
		if err != nil {
			return Row{}, err
		}
		level.setBounds(&row, lower, upper)
	}
	return row, nil
}

func parseBound(col, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s=%q, %w", col, raw, ErrMalformedCell)
	}
	return v, nil
}

func parseDate(raw string, date1904 bool) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("%s is empty, %w", ColumnDate, ErrMalformedCell)
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, date1904)
		if err != nil {
			return time.Time{}, fmt.Errorf("%s=%q, %w", ColumnDate, raw, ErrMalformedCell)
		}
		return timedataset.Date(t), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return timedataset.Date(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%s=%q, %w", ColumnDate, raw, ErrMalformedCell)
}

func blankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
