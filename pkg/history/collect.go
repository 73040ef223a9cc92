package history

import (
	"github.com/LambdaTest/knapsack/pkg/core"
	"github.com/LambdaTest/knapsack/pkg/lumber"
)

// Collect recursively visits the test result tree and records one test class per class
// node. Class nodes are not descended into, suites are, anything else is ignored. When two
// class nodes share a name the one visited last wins.
func Collect(tr core.TestResult, data map[string]*core.TestClass, logger lumber.Logger) {
	switch r := tr.(type) {
	case *core.ClassResult:
		if _, exists := data[r.Name]; exists {
			logger.Debugf("test class %s reported more than once, keeping the last duration", r.Name)
		}
		data[r.Name] = core.NewTestClass(r.Name, r.Duration)
	case *core.SuiteResult:
		for _, child := range r.Children {
			Collect(child, data, logger)
		}
	}
}

// Flatten returns the test classes of the tree keyed by fully qualified name.
func Flatten(tr core.TestResult, logger lumber.Logger) map[string]*core.TestClass {
	data := make(map[string]*core.TestClass)
	Collect(tr, data, logger)
	return data
}
