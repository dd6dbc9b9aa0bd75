package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/samber/lo"

	"rostering/internal/cp"
	"rostering/internal/model"
	"rostering/pkg/render"
)

// Exit codes follow the solver convention: 10 solved, 20 infeasible,
// 15 encoding defect (solver-feasible schedule failed validation).
const (
	exitSolved     = 10
	exitDefect     = 15
	exitInfeasible = 20
)

type output struct {
	Feasible   bool       `json:"feasible"`
	Status     string     `json:"status"`
	Objective  *int64     `json:"objective,omitempty"`
	Schedule   [][]string `json:"schedule,omitempty"`
	Violations []string   `json:"violations,omitempty"`
}

func main() {
	filePathPtr := flag.String("file", "", "Path to the instance file")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	timeLimitPtr := flag.Float64("time-limit", 0, "Wall-clock time limit in seconds; overrides the instance's value when positive")
	workersPtr := flag.Int("workers", 0, "Parallelism hint passed to the solver")
	verbosePtr := flag.Bool("verbose", false, "Log search progress")
	tablePtr := flag.Bool("table", false, "Print a human-readable table instead of JSON")
	flag.Parse()

	if *filePathPtr == "" {
		log.Fatal("an instance file must be specified")
	}

	request, err := model.InputFromJSON(*filePathPtr)
	if err != nil {
		log.Fatalf("cannot parse instance file: %v", err)
	}

	if *timeLimitPtr > 0 {
		request.TimeLimit = time.Duration(*timeLimitPtr * float64(time.Second))
	}
	if *workersPtr > 0 {
		request.Workers = *workersPtr
	}
	if *verbosePtr {
		request.LogSearch = true
	}

	rosterer := model.NewRosterer(cp.NewSolver())
	result, err := rosterer.Solve(request)
	if err != nil {
		log.Fatalf("an error occurred during rostering: %v", err)
	}

	if *tablePtr && result.Schedule != nil {
		table, err := render.Table(*result.Schedule, nil)
		if err != nil {
			log.Fatalf("cannot render schedule: %v", err)
		}
		fmt.Println(table)
	} else {
		out := output{
			Feasible:  result.Feasible,
			Status:    result.Stats.Status,
			Objective: result.Objective,
			Violations: lo.Map(result.Violations, func(violation model.Violation, _ int) string {
				return violation.String()
			}),
		}
		if result.Schedule != nil {
			out.Schedule = lo.Map(result.Schedule.Rows(), func(row []model.Shift, _ int) []string {
				return lo.Map(row, func(shift model.Shift, _ int) string { return string(shift) })
			})
		}

		encoded, err := json.Marshal(out)
		if err != nil {
			log.Fatalf("an error occurred while building output json: %v", err)
		}

		if *outFilePathPtr == "" {
			fmt.Println(string(encoded))
		} else if err := os.WriteFile(*outFilePathPtr, encoded, 0666); err != nil {
			log.Fatalf("an error occurred while writing to the output file: %v", err)
		}
	}

	switch {
	case !result.Feasible:
		os.Exit(exitInfeasible)
	case len(result.Violations) > 0:
		os.Exit(exitDefect)
	default:
		os.Exit(exitSolved)
	}
}
