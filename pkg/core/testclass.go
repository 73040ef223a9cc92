package core

import (
	"fmt"
	"sort"
	"strings"
)

// TestClass is one schedulable unit of work: a test class and the duration it took in the
// reference build.
type TestClass struct {
	// Name is the fully qualified class name.
	Name string `json:"name"`
	// Duration in milliseconds.
	Duration int64 `json:"duration"`

	knapsack *Knapsack
}

// NewTestClass returns an unassigned TestClass. Negative durations are stored as 0.
func NewTestClass(name string, duration int64) *TestClass {
	if duration < 0 {
		duration = 0
	}
	return &TestClass{Name: name, Duration: duration}
}

// Knapsack returns the knapsack the class was packed into, nil if it was never packed.
func (tc *TestClass) Knapsack() *Knapsack {
	return tc.knapsack
}

// SourceFileName returns the path fragment of the class with the given extension,
// e.g. "org/acme/FooTest.java" for ".java".
func (tc *TestClass) SourceFileName(ext string) string {
	return strings.ReplaceAll(tc.Name, ".", "/") + ext
}

func (tc *TestClass) String() string {
	return fmt.Sprintf("%s(%dms)", tc.Name, tc.Duration)
}

// SortByDuration sorts the classes in descending order of duration. Classes with the
// same duration are ordered by name.
func SortByDuration(classes []*TestClass) {
	sort.SliceStable(classes, func(i, j int) bool {
		if classes[i].Duration != classes[j].Duration {
			return classes[i].Duration > classes[j].Duration
		}
		return classes[i].Name < classes[j].Name
	})
}
