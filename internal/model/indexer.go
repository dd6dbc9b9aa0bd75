package model

// Indexer gives a unique variable index to each (nurse, day, shift) assignment
// literal and to each derived work literal, and vice versa
type Indexer interface {
	// Returns the variable index of the assignment literal x(nurse, day, shift)
	Index(nurse, day, shift int) int
	// Returns the variable index of the derived work literal work(nurse, day)
	WorkIndex(nurse, day int) int
	// Returns the attributes of an assignment literal's index
	Attributes(index int) (nurse, day, shift int)
	// Returns the total number of variables, work literals included
	Variables() int
}

func NewIndexer(nurses, days, shifts int) Indexer {
	return &denseIndexer{
		nurses: nurses,
		days:   days,
		shifts: shifts,
	}
}
