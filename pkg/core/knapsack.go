package core

// Knapsack is one group of test classes that should take roughly as long to run as every
// other group. It does not keep its members, membership is recovered from
// TestClass.Knapsack.
type Knapsack struct {
	// Index of the knapsack in the split plan.
	Index int
	// Total duration of all test classes packed into this knapsack.
	Total int64
}

// Add packs the test class into the knapsack. A test class can be packed only once.
func (k *Knapsack) Add(tc *TestClass) {
	if tc.knapsack != nil {
		panic("test class " + tc.Name + " is already packed")
	}
	tc.knapsack = k
	k.Total += tc.Duration
}
