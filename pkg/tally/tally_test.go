package tally

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/LambdaTest/knapsack/pkg/constants"
	"github.com/LambdaTest/knapsack/pkg/core"
	errs "github.com/LambdaTest/knapsack/pkg/errors"
	"github.com/LambdaTest/knapsack/pkg/history"
	"github.com/LambdaTest/knapsack/pkg/lumber"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memReportStore struct {
	mu      sync.Mutex
	reports map[string]core.TestResult
}

func (m *memReportStore) Find(_ context.Context, buildID string) (core.TestResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tr, ok := m.reports[buildID]
	if !ok {
		return nil, errs.ErrRowsNotFound
	}
	return tr, nil
}

func (m *memReportStore) Create(_ context.Context, buildID string, tr core.TestResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.reports == nil {
		m.reports = map[string]core.TestResult{}
	}
	m.reports[buildID] = tr
	return nil
}

type memBlob struct {
	mu    sync.Mutex
	paths []string
}

func (m *memBlob) UploadBytes(context.Context, string, []byte, int, string) (string, error) {
	return "", nil
}

func (m *memBlob) UploadStream(_ context.Context, path string, r io.Reader, containerID int, _ string) (string, error) {
	if containerID != core.ReportsContainer {
		return "", errs.ErrUnknownContainer
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paths = append(m.paths, path)
	return path, nil
}

func (m *memBlob) DownloadStream(context.Context, string, int) (io.ReadCloser, error) {
	return nil, errs.ErrNotFound
}

func TestTally(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/ws/test-splits/reports/run-1/TEST-a.xml", []byte(
		`<testsuite name="a.ATest"><testcase classname="a.ATest" name="x" time="0.5"/></testsuite>`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/ws/test-splits/reports/run-2/nested/TEST-b.xml", []byte(
		`<testsuites><testsuite name="b.BTest"><testcase classname="b.BTest" name="y" time="1.5"/></testsuite></testsuites>`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/ws/test-splits/reports/run-2/broken.xml", []byte(`<testsuite`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/ws/test-splits/reports/notes.txt", []byte(`ignored`), 0o644))
	store := &memReportStore{}
	blob := &memBlob{}

	tr, err := NewArchiver(fs, constants.ReportsGlob, store, blob, lumber.NewTestLogger()).
		Tally(context.Background(), "build1", "/ws")
	require.NoError(t, err)
	assert.Equal(t, int64(2000), tr.DurationMillis())

	stored, err := store.Find(context.Background(), "build1")
	require.NoError(t, err)
	assert.Same(t, tr, stored)

	data := history.Flatten(tr, lumber.NewTestLogger())
	require.Len(t, data, 2)
	assert.Equal(t, int64(500), data["a.ATest"].Duration)
	assert.Equal(t, int64(1500), data["b.BTest"].Duration)
	assert.Len(t, blob.paths, 2)
	assert.Contains(t, blob.paths, "build1/test-splits/reports/run-1/TEST-a.xml")
}

func TestTallyNoReports(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/ws/test-splits", 0o755))
	store := &memReportStore{}

	_, err := NewArchiver(fs, constants.ReportsGlob, store, nil, lumber.NewTestLogger()).
		Tally(context.Background(), "build1", "/ws")
	assert.Equal(t, errs.ErrNoTestReports, err)
	_, err = store.Find(context.Background(), "build1")
	assert.Equal(t, errs.ErrRowsNotFound, err)
}
