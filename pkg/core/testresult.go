package core

import (
	errs "github.com/LambdaTest/knapsack/pkg/errors"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TestResult is a node of a hierarchical test report. It is one of *SuiteResult,
// *ClassResult or *CaseResult.
type TestResult interface {
	// DisplayName is the name of the node.
	DisplayName() string
	// DurationMillis is the time spent in the node.
	DurationMillis() int64
	isTestResult()
}

// SuiteResult is a container node (report root, package or suite).
type SuiteResult struct {
	Name     string
	Duration int64
	Children []TestResult
}

// ClassResult is the result of one test class.
type ClassResult struct {
	Name     string
	Duration int64
	Children []TestResult
}

// CaseResult is the result of one test method.
type CaseResult struct {
	Name     string
	Duration int64
	Status   TestStatus
}

// TestStatus of a test case.
type TestStatus string

// Test case statuses.
const (
	TestPassed  TestStatus = "passed"
	TestFailed  TestStatus = "failed"
	TestSkipped TestStatus = "skipped"
)

func (s *SuiteResult) DisplayName() string   { return s.Name }
func (s *SuiteResult) DurationMillis() int64 { return s.Duration }
func (*SuiteResult) isTestResult()           {}

func (c *ClassResult) DisplayName() string   { return c.Name }
func (c *ClassResult) DurationMillis() int64 { return c.Duration }
func (*ClassResult) isTestResult()           {}

func (c *CaseResult) DisplayName() string   { return c.Name }
func (c *CaseResult) DurationMillis() int64 { return c.Duration }
func (*CaseResult) isTestResult()           {}

// node kinds in the stored representation.
const (
	suiteKind = "suite"
	classKind = "class"
	caseKind  = "case"
)

type testResultNode struct {
	Kind     string            `json:"kind"`
	Name     string            `json:"name"`
	Duration int64             `json:"duration"`
	Status   TestStatus        `json:"status,omitempty"`
	Children []*testResultNode `json:"children,omitempty"`
}

func toNode(tr TestResult) *testResultNode {
	switch r := tr.(type) {
	case *SuiteResult:
		return &testResultNode{Kind: suiteKind, Name: r.Name, Duration: r.Duration, Children: toNodes(r.Children)}
	case *ClassResult:
		return &testResultNode{Kind: classKind, Name: r.Name, Duration: r.Duration, Children: toNodes(r.Children)}
	case *CaseResult:
		return &testResultNode{Kind: caseKind, Name: r.Name, Duration: r.Duration, Status: r.Status}
	default:
		return nil
	}
}

func toNodes(children []TestResult) []*testResultNode {
	nodes := make([]*testResultNode, 0, len(children))
	for _, c := range children {
		if n := toNode(c); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// fromNode rebuilds the tree. Nodes of an unknown kind are dropped with their subtree
// unless strict is set.
func fromNode(n *testResultNode, strict bool) (TestResult, error) {
	if n == nil {
		return nil, nil
	}
	children := make([]TestResult, 0, len(n.Children))
	for _, c := range n.Children {
		child, err := fromNode(c, strict)
		if err != nil {
			return nil, err
		}
		if child != nil {
			children = append(children, child)
		}
	}
	switch n.Kind {
	case suiteKind:
		return &SuiteResult{Name: n.Name, Duration: n.Duration, Children: children}, nil
	case classKind:
		return &ClassResult{Name: n.Name, Duration: n.Duration, Children: children}, nil
	case caseKind:
		return &CaseResult{Name: n.Name, Duration: n.Duration, Status: n.Status}, nil
	}
	if strict {
		return nil, errs.ErrUnknownTestResultKind
	}
	return nil, nil
}

// MarshalTestResult encodes a test result tree to JSON.
func MarshalTestResult(tr TestResult) ([]byte, error) {
	return json.Marshal(toNode(tr))
}

// UnmarshalTestResult decodes a test result tree encoded by MarshalTestResult. Nodes of an
// unknown kind are skipped; the result is nil when the root itself is unknown.
func UnmarshalTestResult(raw []byte) (TestResult, error) {
	return unmarshalTestResult(raw, false)
}

// UnmarshalStrictTestResult decodes like UnmarshalTestResult but rejects any node of an
// unknown kind with ErrUnknownTestResultKind.
func UnmarshalStrictTestResult(raw []byte) (TestResult, error) {
	return unmarshalTestResult(raw, true)
}

func unmarshalTestResult(raw []byte, strict bool) (TestResult, error) {
	var n testResultNode
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, err
	}
	return fromNode(&n, strict)
}
