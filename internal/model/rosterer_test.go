package model

import (
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"rostering/internal/cp"
)

func demoRequest(nurses, days int) Request {
	return Request{
		Nurses:    nurses,
		Days:      days,
		Demand:    uniformDemand(days, 2, 2, 1),
		Config:    DefaultConfig(),
		TimeLimit: 10 * time.Second,
	}
}

func TestSolveStandardWeek(t *testing.T) {
	// 6 nurses, 7 days, 2 mornings + 2 afternoons + 1 night per day.
	g := NewWithT(t)
	rosterer := NewRosterer(cp.NewSolver())

	result, err := rosterer.Solve(demoRequest(6, 7))

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result.Feasible).To(BeTrue())
	g.Expect(result.Schedule).NotTo(BeNil())
	g.Expect(result.Violations).To(BeEmpty())
	g.Expect(result.Objective).NotTo(BeNil())

	schedule := *result.Schedule
	g.Expect(schedule.Nurses()).To(Equal(6))
	g.Expect(schedule.Days()).To(Equal(7))

	// Exact coverage for every day and shift.
	for day := range 7 {
		g.Expect(schedule.Count(day, ShiftMorning)).To(Equal(2))
		g.Expect(schedule.Count(day, ShiftAfternoon)).To(Equal(2))
		g.Expect(schedule.Count(day, ShiftNight)).To(Equal(1))
	}

	// Caps and rest rules re-derived from the grid.
	for nurse := range 6 {
		g.Expect(schedule.Nights(nurse)).To(BeNumerically("<=", 3))
		g.Expect(schedule.WorkDays(nurse)).To(BeNumerically("<=", 6))
		for day := range 6 {
			if schedule.At(nurse, day) == ShiftNight {
				g.Expect(schedule.At(nurse, day+1)).To(Equal(ShiftOff))
			}
		}
	}
}

func TestSolveInsufficientHeadcount(t *testing.T) {
	// 2 nurses cannot cover 5 daily slots: infeasible, not an error.
	g := NewWithT(t)
	rosterer := NewRosterer(cp.NewSolver())

	result, err := rosterer.Solve(demoRequest(2, 7))

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result.Feasible).To(BeFalse())
	g.Expect(result.Schedule).To(BeNil())
	g.Expect(result.Objective).To(BeNil())
	g.Expect(result.Stats.Status).To(Equal("INFEASIBLE"))
}

func TestSolveHonorsPreference(t *testing.T) {
	// Two nurses, two days, one morning slot per day. Both balanced splits
	// cost the same on fairness, so the preference decides: nurse 0 takes
	// the morning on day 0.
	g := NewWithT(t)
	rosterer := NewRosterer(cp.NewSolver())

	request := Request{
		Nurses: 2,
		Days:   2,
		Demand: []map[Shift]int{
			{ShiftMorning: 1, ShiftAfternoon: 0, ShiftNight: 0},
			{ShiftMorning: 1, ShiftAfternoon: 0, ShiftNight: 0},
		},
		Preferences: []Preference{
			{Nurse: 0, Day: 0, Kind: Prefer, Target: ShiftMorning},
		},
		Config:    DefaultConfig(),
		TimeLimit: 5 * time.Second,
	}

	result, err := rosterer.Solve(request)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result.Feasible).To(BeTrue())
	g.Expect(result.Stats.Status).To(Equal("OPTIMAL"))
	g.Expect(result.Violations).To(BeEmpty())
	g.Expect(result.Schedule.At(0, 0)).To(Equal(ShiftMorning))
	g.Expect(*result.Objective).To(Equal(int64(0)))
}

func TestSolveSaturatedSingleNurse(t *testing.T) {
	// One nurse forced to work all 10 days breaks the 5-day window rule.
	g := NewWithT(t)
	rosterer := NewRosterer(cp.NewSolver())

	demand := make([]map[Shift]int, 10)
	for day := range demand {
		demand[day] = map[Shift]int{ShiftMorning: 1, ShiftAfternoon: 0, ShiftNight: 0}
	}
	request := Request{
		Nurses:    1,
		Days:      10,
		Demand:    demand,
		Config:    DefaultConfig(),
		TimeLimit: 5 * time.Second,
	}

	result, err := rosterer.Solve(request)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result.Feasible).To(BeFalse())
	g.Expect(result.Stats.Status).To(Equal("INFEASIBLE"))
}

func TestSolveRoundTripRevalidation(t *testing.T) {
	// Any schedule accepted as feasible must re-validate to zero violations.
	g := NewWithT(t)
	rosterer := NewRosterer(cp.NewSolver())
	request := demoRequest(6, 7)
	request.Preferences = []Preference{
		{Nurse: 0, Day: 0, Kind: Prefer, Target: ShiftMorning},
		{Nurse: 0, Day: 1, Kind: Avoid, Target: ShiftNight},
		{Nurse: 1, Day: 2, Kind: Prefer, Target: ShiftOff},
		{Nurse: 2, Day: 4, Kind: Prefer, Target: ShiftAfternoon},
		{Nurse: 3, Day: 5, Kind: Avoid, Target: ShiftMorning},
		{Nurse: 4, Day: 6, Kind: Prefer, Target: ShiftOff},
	}

	result, err := rosterer.Solve(request)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result.Feasible).To(BeTrue())
	g.Expect(result.Violations).To(BeEmpty())

	revalidated := ValidateSchedule(*result.Schedule, request.Demand, request.Config)
	g.Expect(revalidated).To(BeEmpty())
}

func TestSolveWeightedPreferenceBonus(t *testing.T) {
	// A negative weight rewards the pattern: nurse 1 should take the slot.
	g := NewWithT(t)
	rosterer := NewRosterer(cp.NewSolver())

	request := Request{
		Nurses: 2,
		Days:   1,
		Demand: []map[Shift]int{
			{ShiftMorning: 1, ShiftAfternoon: 0, ShiftNight: 0},
		},
		Weighted: []WeightedPreference{
			{Nurse: 1, Day: 0, Shift: ShiftMorning, Weight: -2},
		},
		Config:    DefaultConfig(),
		TimeLimit: 5 * time.Second,
	}
	request.Config.MinDaysOff = 0

	result, err := rosterer.Solve(request)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result.Feasible).To(BeTrue())
	g.Expect(result.Stats.Status).To(Equal("OPTIMAL"))
	g.Expect(result.Schedule.At(1, 0)).To(Equal(ShiftMorning))
	g.Expect(result.Schedule.At(0, 0)).To(Equal(ShiftOff))
}

func TestSolveRejectsWrongDemandLength(t *testing.T) {
	g := NewWithT(t)
	rosterer := NewRosterer(cp.NewSolver())

	request := demoRequest(6, 7)
	request.Demand = request.Demand[:5]

	_, err := rosterer.Solve(request)

	g.Expect(err).To(MatchError(ErrInvalidInput))
}

func TestSolveRejectsMissingDemandEntry(t *testing.T) {
	g := NewWithT(t)
	rosterer := NewRosterer(cp.NewSolver())

	request := demoRequest(6, 7)
	delete(request.Demand[3], ShiftNight)

	_, err := rosterer.Solve(request)

	g.Expect(err).To(MatchError(ErrInvalidInput))
}

func TestSolveRejectsUnknownPreferenceKind(t *testing.T) {
	g := NewWithT(t)
	rosterer := NewRosterer(cp.NewSolver())

	request := demoRequest(6, 7)
	request.Preferences = []Preference{
		{Nurse: 0, Day: 0, Kind: PreferenceKind("wish"), Target: ShiftMorning},
	}

	_, err := rosterer.Solve(request)

	g.Expect(err).To(MatchError(ErrInvalidInput))
}

func TestSolveNoMorningPolicy(t *testing.T) {
	// Under the no-morning policy a night may be followed by an afternoon.
	g := NewWithT(t)
	rosterer := NewRosterer(cp.NewSolver())

	request := Request{
		Nurses: 1,
		Days:   2,
		Demand: []map[Shift]int{
			{ShiftMorning: 0, ShiftAfternoon: 0, ShiftNight: 1},
			{ShiftMorning: 0, ShiftAfternoon: 1, ShiftNight: 0},
		},
		Config:    DefaultConfig(),
		TimeLimit: 5 * time.Second,
	}
	request.Config.RestAfterNight = RestNoMorning
	request.Config.MinDaysOff = 0

	result, err := rosterer.Solve(request)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result.Feasible).To(BeTrue())
	g.Expect(result.Violations).To(BeEmpty())
	g.Expect(result.Schedule.At(0, 0)).To(Equal(ShiftNight))
	g.Expect(result.Schedule.At(0, 1)).To(Equal(ShiftAfternoon))

	// The same demand is infeasible under the stricter day-off policy.
	request.Config.RestAfterNight = RestDayOff
	result, err = rosterer.Solve(request)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result.Feasible).To(BeFalse())
}
