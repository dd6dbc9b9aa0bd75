package model

// denseIndexer packs assignment literals day-major so that one day's literals
// are contiguous, followed by a block of work literals.
type denseIndexer struct {
	nurses int
	days   int
	shifts int
}

func (i *denseIndexer) Index(nurse, day, shift int) int {
	return shift + i.shifts*(nurse+i.nurses*day)
}

func (i *denseIndexer) WorkIndex(nurse, day int) int {
	return i.nurses*i.days*i.shifts + nurse + i.nurses*day
}

func (i *denseIndexer) Attributes(index int) (nurse, day, shift int) {
	shift = index % i.shifts
	index = index / i.shifts

	nurse = index % i.nurses
	day = index / i.nurses

	return nurse, day, shift
}

func (i *denseIndexer) Variables() int {
	return i.nurses * i.days * (i.shifts + 1)
}
