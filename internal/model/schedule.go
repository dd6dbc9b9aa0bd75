package model

import "fmt"

// Shift is a work period symbol. ShiftOff marks a rest day and is never
// counted as coverage.
type Shift string

const (
	ShiftMorning   Shift = "M"
	ShiftAfternoon Shift = "A"
	ShiftNight     Shift = "N"
	ShiftOff       Shift = "OFF"
)

// Schedule is a read-only nurse x day grid of shift symbols.
type Schedule struct {
	grid [][]Shift
}

// NewSchedule copies the given grid. Rows must all have the same length.
func NewSchedule(grid [][]Shift) (Schedule, error) {
	rows := make([][]Shift, len(grid))
	for n, row := range grid {
		if len(row) != len(grid[0]) {
			return Schedule{}, fmt.Errorf("ragged schedule grid: row %d has %d cells, expected %d", n, len(row), len(grid[0]))
		}
		rows[n] = make([]Shift, len(row))
		copy(rows[n], row)
	}
	return Schedule{grid: rows}, nil
}

func (s Schedule) Nurses() int {
	return len(s.grid)
}

func (s Schedule) Days() int {
	if len(s.grid) == 0 {
		return 0
	}
	return len(s.grid[0])
}

func (s Schedule) At(nurse, day int) Shift {
	return s.grid[nurse][day]
}

// WorkDays counts the non-OFF cells of one nurse over the horizon.
func (s Schedule) WorkDays(nurse int) int {
	count := 0
	for _, shift := range s.grid[nurse] {
		if shift != ShiftOff {
			count++
		}
	}
	return count
}

// Nights counts the night cells of one nurse over the horizon.
func (s Schedule) Nights(nurse int) int {
	count := 0
	for _, shift := range s.grid[nurse] {
		if shift == ShiftNight {
			count++
		}
	}
	return count
}

// Count reports how many nurses hold the given shift on the given day.
func (s Schedule) Count(day int, shift Shift) int {
	count := 0
	for nurse := range s.grid {
		if s.grid[nurse][day] == shift {
			count++
		}
	}
	return count
}

// Rows returns a copy of the underlying grid for rendering and export.
func (s Schedule) Rows() [][]Shift {
	rows := make([][]Shift, len(s.grid))
	for n, row := range s.grid {
		rows[n] = make([]Shift, len(row))
		copy(rows[n], row)
	}
	return rows
}
