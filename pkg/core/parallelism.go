package core

// ParallelismMode selects how the number of splits is calculated.
type ParallelismMode string

// supported parallelism modes
const (
	ParallelismCount ParallelismMode = "count"
	ParallelismTests ParallelismMode = "tests"
	ParallelismTime  ParallelismMode = "time"
)

// Parallelism calculates the number of splits.
type Parallelism interface {
	// Calculate returns the number of splits for the test classes, sorted in descending
	// order of duration. Callers treat values below 1 as 1.
	Calculate(sorted []*TestClass) int
}
