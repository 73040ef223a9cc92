package lineage

import "github.com/LambdaTest/knapsack/pkg/core"

// Run is a materialized core.Run.
type Run struct {
	number     int
	result     core.BuildResult
	testResult core.TestResult
	previous   *Run
	job        *Job
}

// Number is the build number.
func (r *Run) Number() int { return r.number }

// Result is the build result.
func (r *Run) Result() core.BuildResult { return r.result }

// TestResult is the archived report, nil if none.
func (r *Run) TestResult() core.TestResult { return r.testResult }

// Previous returns the previous loaded run of the job.
func (r *Run) Previous() core.Run {
	if r.previous == nil {
		return nil
	}
	return r.previous
}

// Job returns the owning job.
func (r *Run) Job() core.Job {
	if r.job == nil {
		return nil
	}
	return r.job
}

// Job is a materialized core.Job. Runs are kept oldest first.
type Job struct {
	name    string
	primary bool
	runs    []*Run
	group   *Group
}

// NewJob returns a job without runs.
func NewJob(name string, primary bool) *Job {
	return &Job{name: name, primary: primary}
}

// AddRun appends a run to the job, linking it to the previously added one.
func (j *Job) AddRun(number int, result core.BuildResult, tr core.TestResult) *Run {
	r := &Run{number: number, result: result, testResult: tr, job: j}
	if n := len(j.runs); n > 0 {
		r.previous = j.runs[n-1]
	}
	j.runs = append(j.runs, r)
	return r
}

// Name of the job.
func (j *Job) Name() string { return j.name }

// IsPrimary reports whether the job is its group's primary lineage.
func (j *Job) IsPrimary() bool { return j.primary }

// LastRun returns the latest loaded run.
func (j *Job) LastRun() core.Run {
	if len(j.runs) == 0 {
		return nil
	}
	return j.runs[len(j.runs)-1]
}

// Parent returns the group of the job.
func (j *Job) Parent() core.JobGroup {
	if j.group == nil {
		return nil
	}
	return j.group
}

// Group is a materialized core.JobGroup.
type Group struct {
	multiLineage bool
	jobs         []*Job
}

// NewGroup groups the jobs.
func NewGroup(multiLineage bool, jobs ...*Job) *Group {
	g := &Group{multiLineage: multiLineage}
	for _, j := range jobs {
		g.Add(j)
	}
	return g
}

// Add puts the job into the group.
func (g *Group) Add(j *Job) {
	j.group = g
	g.jobs = append(g.jobs, j)
}

// Jobs returns the jobs of the group.
func (g *Group) Jobs() []core.Job {
	jobs := make([]core.Job, 0, len(g.jobs))
	for _, j := range g.jobs {
		jobs = append(jobs, j)
	}
	return jobs
}

// MultiLineage reports whether the group is branch based.
func (g *Group) MultiLineage() bool { return g.multiLineage }
