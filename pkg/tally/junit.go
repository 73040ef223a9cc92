package tally

import (
	"encoding/xml"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/LambdaTest/knapsack/pkg/core"
)

type junitSuite struct {
	XMLName xml.Name
	Name    string       `xml:"name,attr"`
	Suites  []junitSuite `xml:"testsuite"`
	Cases   []junitCase  `xml:"testcase"`
}

type junitCase struct {
	Name      string    `xml:"name,attr"`
	ClassName string    `xml:"classname,attr"`
	Time      string    `xml:"time,attr"`
	Failure   *struct{} `xml:"failure"`
	Error     *struct{} `xml:"error"`
	Skipped   *struct{} `xml:"skipped"`
}

// ParseJUnit reads one JUnit XML report, rooted at either testsuites or testsuite, and
// returns one suite node per testsuite element.
func ParseJUnit(r io.Reader) ([]*core.SuiteResult, error) {
	var root junitSuite
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, err
	}
	if root.XMLName.Local == "testsuites" {
		return toSuites(root.Suites), nil
	}
	return toSuites([]junitSuite{root}), nil
}

func toSuites(suites []junitSuite) []*core.SuiteResult {
	out := make([]*core.SuiteResult, 0, len(suites))
	for i := range suites {
		out = append(out, toSuite(&suites[i]))
	}
	return out
}

func toSuite(s *junitSuite) *core.SuiteResult {
	suite := &core.SuiteResult{Name: s.Name}
	for _, nested := range toSuites(s.Suites) {
		suite.Children = append(suite.Children, nested)
		suite.Duration += nested.Duration
	}

	classes := map[string]*core.ClassResult{}
	for _, c := range s.Cases {
		className := c.ClassName
		if className == "" {
			className = s.Name
		}
		class, ok := classes[className]
		if !ok {
			class = &core.ClassResult{Name: className}
			classes[className] = class
			suite.Children = append(suite.Children, class)
		}
		tc := &core.CaseResult{Name: c.Name, Duration: millis(c.Time), Status: c.status()}
		class.Children = append(class.Children, tc)
		class.Duration += tc.Duration
		suite.Duration += tc.Duration
	}
	return suite
}

func (c *junitCase) status() core.TestStatus {
	switch {
	case c.Failure != nil, c.Error != nil:
		return core.TestFailed
	case c.Skipped != nil:
		return core.TestSkipped
	default:
		return core.TestPassed
	}
}

// millis converts a JUnit time attribute in seconds, possibly with grouping commas.
func millis(seconds string) int64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(seconds), ",", ""), 64)
	if err != nil || v < 0 {
		return 0
	}
	return int64(math.Round(v * 1000))
}
