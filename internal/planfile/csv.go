package planfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"ganttsvg/internal/gantt"
)

// Column names of a task table. The derived columns are written for
// reference and ignored on read.
const (
	ColTask          = "task"
	ColTeam          = "team"
	ColStart         = "start"
	ColEnd           = "end"
	ColCompletion    = "completion_frac"
	ColDependencies  = "dependencies"
	ColDaysToStart   = "days_to_start"
	ColDaysToEnd     = "days_to_end"
	ColDuration      = "task_duration"
	ColCompletedDays = "completion_days"
)

var requiredColumns = []string{ColTask, ColStart, ColEnd}

// dateFormats are tried in order when parsing start and end cells. Any time
// of day is dropped.
var dateFormats = []string{
	gantt.DateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"01/02/2006",
	"02/01/2006",
}

// ReadCSV reads task records from a CSV table with a header row. Column
// names are matched case-insensitively; unknown columns, such as a leading
// unnamed index column, are ignored.
func ReadCSV(r io.Reader) ([]gantt.TaskInput, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}

	columnMap := make(map[string]int)
	for i, col := range header {
		columnMap[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := columnMap[col]; !ok {
			return nil, fmt.Errorf("column '%s' not found in CSV. Available columns: %v", col, header)
		}
	}

	var tasks []gantt.TaskInput
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		if isBlankRecord(record) {
			continue
		}
		line, _ := reader.FieldPos(0)

		task, err := parseCSVRow(record, columnMap)
		if err != nil {
			return nil, fmt.Errorf("error parsing CSV row %d: %w", line, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func parseCSVRow(record []string, columnMap map[string]int) (gantt.TaskInput, error) {
	cell := func(col string) string {
		i, ok := columnMap[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	start, err := parseDate(cell(ColStart))
	if err != nil {
		return gantt.TaskInput{}, err
	}
	end, err := parseDate(cell(ColEnd))
	if err != nil {
		return gantt.TaskInput{}, err
	}

	completion := 0.0
	if s := cell(ColCompletion); s != "" && !strings.EqualFold(s, "nan") {
		completion, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return gantt.TaskInput{}, fmt.Errorf("unable to parse completion '%s': %w", s, err)
		}
	}

	return gantt.TaskInput{
		Name:         cell(ColTask),
		Assignee:     cell(ColTeam),
		Start:        start,
		End:          end,
		Completion:   completion,
		Dependencies: DecodeDependencies(cell(ColDependencies)),
	}, nil
}

func parseDate(s string) (time.Time, error) {
	var err error
	for _, format := range dateFormats {
		var t time.Time
		if t, err = time.Parse(format, s); err == nil {
			return gantt.Date(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date '%s': %w", s, err)
}

func isBlankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// WriteCSV writes tasks in order, raw fields first and derived fields after.
func WriteCSV(w io.Writer, tasks []gantt.Task) error {
	writer := csv.NewWriter(w)
	header := []string{
		ColTask, ColTeam, ColStart, ColEnd, ColCompletion, ColDependencies,
		ColDaysToStart, ColDaysToEnd, ColDuration, ColCompletedDays,
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, t := range tasks {
		record := []string{
			t.Name,
			t.Assignee,
			t.Start.Format(gantt.DateLayout),
			t.End.Format(gantt.DateLayout),
			strconv.FormatFloat(t.Completion, 'f', -1, 64),
			EncodeDependencies(t.Dependencies),
			strconv.Itoa(t.OffsetStart),
			strconv.Itoa(t.OffsetEnd),
			strconv.Itoa(t.Duration),
			strconv.FormatFloat(t.CompletedDays, 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("error writing CSV: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
