package main

import (
	"fmt"
	"log"
	"time"

	"rostering/internal/cp"
	"rostering/internal/model"
	"rostering/pkg/render"
)

func buildDemoRequest() model.Request {
	const nurses, days = 6, 7

	demand := make([]map[model.Shift]int, days)
	for day := range demand {
		demand[day] = map[model.Shift]int{
			model.ShiftMorning:   2,
			model.ShiftAfternoon: 2,
			model.ShiftNight:     1,
		}
	}

	preferences := []model.Preference{
		{Nurse: 0, Day: 0, Kind: model.Prefer, Target: model.ShiftMorning},
		{Nurse: 0, Day: 1, Kind: model.Avoid, Target: model.ShiftNight},
		{Nurse: 1, Day: 2, Kind: model.Prefer, Target: model.ShiftOff},
		{Nurse: 2, Day: 4, Kind: model.Prefer, Target: model.ShiftAfternoon},
		{Nurse: 3, Day: 5, Kind: model.Avoid, Target: model.ShiftMorning},
		{Nurse: 4, Day: 6, Kind: model.Prefer, Target: model.ShiftOff},
	}

	return model.Request{
		Nurses:      nurses,
		Days:        days,
		Demand:      demand,
		Preferences: preferences,
		Config:      model.DefaultConfig(),
		TimeLimit:   10 * time.Second,
	}
}

func main() {
	fmt.Println("=== Nurse Rostering ===")

	rosterer := model.NewRosterer(cp.NewSolver())

	result, err := rosterer.Solve(buildDemoRequest())
	if err != nil {
		log.Fatalf("solve failed: %v", err)
	}

	fmt.Println("\n--- Solver stats ---")
	fmt.Printf("status: %v\n", result.Stats.Status)
	fmt.Printf("objective: %v\n", result.Stats.Objective)
	fmt.Printf("wall_time: %v\n", result.Stats.WallTime)
	fmt.Printf("branches: %v\n", result.Stats.Branches)
	fmt.Printf("conflicts: %v\n", result.Stats.Conflicts)

	if !result.Feasible || result.Schedule == nil {
		fmt.Println("\nNo feasible schedule under these constraints.")
		return
	}

	if len(result.Violations) > 0 {
		fmt.Println("\nVIOLATIONS detected, the constraint encoding is broken:")
		for _, violation := range result.Violations {
			fmt.Println(" -", violation)
		}
		log.Fatal("stopping: model and validator disagree")
	}

	table, err := render.Table(*result.Schedule, nil)
	if err != nil {
		log.Fatalf("cannot render schedule: %v", err)
	}

	fmt.Println("\nSchedule (constraints OK):")
	fmt.Println(table)
}
