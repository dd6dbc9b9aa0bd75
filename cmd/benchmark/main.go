package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"rostering/internal/cp"
	"rostering/internal/model"
)

const timeLimit = 20 * time.Second

type benchmarkCase struct {
	Nurses int
	Days   int
}

var cases = []benchmarkCase{
	{4, 5},
	{5, 7},
	{6, 7},
	{7, 7},
	{6, 10},
	{8, 14},
}

// buildInstance spreads daily demand so that roughly two thirds of the
// nurses work each day, which keeps most instances feasible.
func buildInstance(c benchmarkCase) model.Request {
	morning := c.Nurses / 3
	afternoon := c.Nurses / 3
	night := 1

	demand := make([]map[model.Shift]int, c.Days)
	for day := range demand {
		demand[day] = map[model.Shift]int{
			model.ShiftMorning:   morning,
			model.ShiftAfternoon: afternoon,
			model.ShiftNight:     night,
		}
	}

	config := model.DefaultConfig()
	config.MaxNightsPerNurse = c.Days

	return model.Request{
		Nurses:    c.Nurses,
		Days:      c.Days,
		Demand:    demand,
		Config:    config,
		TimeLimit: timeLimit,
	}
}

func main() {
	rosterer := model.NewRosterer(cp.NewSolver())

	writer := csv.NewWriter(os.Stdout)
	defer writer.Flush()

	if err := writer.Write([]string{"nurses", "days", "status", "objective", "wall_ms", "branches", "conflicts"}); err != nil {
		log.Fatalf("cannot write csv header: %v", err)
	}

	for _, c := range cases {
		result, err := rosterer.Solve(buildInstance(c))
		if err != nil {
			log.Fatalf("benchmark %dx%d failed: %v", c.Nurses, c.Days, err)
		}

		record := []string{
			strconv.Itoa(c.Nurses),
			strconv.Itoa(c.Days),
			result.Stats.Status,
			strconv.FormatInt(result.Stats.Objective, 10),
			fmt.Sprintf("%.1f", float64(result.Stats.WallTime.Microseconds())/1000.0),
			strconv.FormatInt(result.Stats.Branches, 10),
			strconv.FormatInt(result.Stats.Conflicts, 10),
		}
		if err := writer.Write(record); err != nil {
			log.Fatalf("cannot write csv record: %v", err)
		}
		writer.Flush()
	}
}
