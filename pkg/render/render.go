// Package render formats solved schedules for terminal display and CSV
// export. It relies on the core's guarantee that grids are exactly N x D with
// every cell one of the four shift labels.
package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"rostering/internal/model"
)

// DefaultNames labels nurses "Nurse 0".."Nurse N-1".
func DefaultNames(nurses int) []string {
	names := make([]string, nurses)
	for n := range names {
		names[n] = fmt.Sprintf("Nurse %d", n)
	}
	return names
}

// Table renders a fixed-width nurse x day grid. When names is nil, default
// labels are used; a wrong-sized name list is an error.
func Table(schedule model.Schedule, names []string) (string, error) {
	if names == nil {
		names = DefaultNames(schedule.Nurses())
	}
	if len(names) != schedule.Nurses() {
		return "", fmt.Errorf("expected %d nurse names, got %d", schedule.Nurses(), len(names))
	}

	labelWidth := 14
	for _, name := range names {
		if len(name)+2 > labelWidth {
			labelWidth = len(name) + 2
		}
	}

	var builder strings.Builder

	fmt.Fprintf(&builder, "%-*s", labelWidth, "")
	for day := range schedule.Days() {
		fmt.Fprintf(&builder, " D%02d", day)
	}
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", labelWidth+4*schedule.Days()))
	builder.WriteString("\n")

	for nurse, row := range schedule.Rows() {
		fmt.Fprintf(&builder, "%-*s", labelWidth, names[nurse])
		for _, shift := range row {
			fmt.Fprintf(&builder, " %3s", shift)
		}
		builder.WriteString("\n")
	}

	return builder.String(), nil
}

// WriteCSV exports the grid with a day-indexed header row and one row per
// nurse.
func WriteCSV(w io.Writer, schedule model.Schedule, names []string) error {
	if names == nil {
		names = DefaultNames(schedule.Nurses())
	}
	if len(names) != schedule.Nurses() {
		return fmt.Errorf("expected %d nurse names, got %d", schedule.Nurses(), len(names))
	}

	writer := csv.NewWriter(w)

	header := make([]string, 0, schedule.Days()+1)
	header = append(header, "nurse")
	for day := range schedule.Days() {
		header = append(header, fmt.Sprintf("day_%d", day))
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for nurse, row := range schedule.Rows() {
		record := make([]string, 0, len(row)+1)
		record = append(record, names[nurse])
		for _, shift := range row {
			record = append(record, string(shift))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
