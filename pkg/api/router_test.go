package api

import (
	"context"
	"io"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/LambdaTest/knapsack/config"
	"github.com/LambdaTest/knapsack/pkg/constants"
	"github.com/LambdaTest/knapsack/pkg/core"
	errs "github.com/LambdaTest/knapsack/pkg/errors"
	"github.com/LambdaTest/knapsack/pkg/lumber"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExecutor struct {
	performed chan string
}

func (f *fakeExecutor) Perform(_ context.Context, buildID string) (core.BuildResult, error) {
	f.performed <- buildID
	return core.BuildSuccess, nil
}

func (f *fakeExecutor) Plan(_ context.Context, buildID string, generateInclusions bool) ([]*core.InclusionExclusionPattern, error) {
	if buildID != "b1" {
		return nil, errs.ErrBuildNotFound
	}
	return []*core.InclusionExclusionPattern{
		{Index: 0, Patterns: []string{"p/B.java", "p/B.class"}},
		{Index: 1, Includes: generateInclusions, Patterns: []string{"p/B.java", "p/B.class"}},
	}, nil
}

type fakeReportStore struct {
	mu      sync.Mutex
	created map[string]core.TestResult
}

func (f *fakeReportStore) Find(context.Context, string) (core.TestResult, error) {
	return nil, errs.ErrRowsNotFound
}

func (f *fakeReportStore) Create(_ context.Context, buildID string, tr core.TestResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.created == nil {
		f.created = map[string]core.TestResult{}
	}
	f.created[buildID] = tr
	return nil
}

type fakeBlob struct{}

func (fakeBlob) UploadBytes(context.Context, string, []byte, int, string) (string, error) {
	return "", nil
}

func (fakeBlob) UploadStream(context.Context, string, io.Reader, int, string) (string, error) {
	return "", nil
}

func (fakeBlob) DownloadStream(_ context.Context, path string, containerID int) (io.ReadCloser, error) {
	if path != "plan1/split.0.exclude.txt" || containerID != core.SplitsContainer {
		return nil, errs.ErrNotFound
	}
	return ioutil.NopCloser(strings.NewReader("p/B.java\np/B.class\n")), nil
}

func newTestRouter(t *testing.T, blob core.AzureBlob) (*gin.Engine, *fakeExecutor, *fakeReportStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	exec := &fakeExecutor{performed: make(chan string, 1)}
	reports := &fakeReportStore{}
	r := New(context.Background(), &config.Config{Env: constants.Dev}, exec, reports, blob, lumber.NewTestLogger())
	return r.Handler(), exec, reports
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(w, req)
	return w
}

func TestSplitRoute(t *testing.T) {
	h, _, _ := newTestRouter(t, nil)

	w := serve(h, http.MethodPost, "/split", `{"buildID": "b1", "generateInclusions": true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"splits": [
		{"index": 0, "includes": false, "patterns": ["p/B.java", "p/B.class"]},
		{"index": 1, "includes": true, "patterns": ["p/B.java", "p/B.class"]}]}`, w.Body.String())

	w = serve(h, http.MethodPost, "/split", `{"generateInclusions": true}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"buildID"`)

	w = serve(h, http.MethodPost, "/split", `{"buildID": "missing"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExecuteRoute(t *testing.T) {
	h, exec, _ := newTestRouter(t, nil)
	w := serve(h, http.MethodPost, "/build/b7/execute", "")
	assert.Equal(t, http.StatusAccepted, w.Code)
	select {
	case buildID := <-exec.performed:
		assert.Equal(t, "b7", buildID)
	case <-time.After(5 * time.Second):
		t.Fatal("execution was not started")
	}
}

func TestReportRoute(t *testing.T) {
	h, _, reports := newTestRouter(t, nil)
	w := serve(h, http.MethodPost, "/report", `{"buildID": "b1", "report":
		{"kind": "suite", "name": "", "duration": 5, "children": [{"kind": "class", "name": "a.ATest", "duration": 5}]}}`)
	require.Equal(t, http.StatusCreated, w.Code)
	reports.mu.Lock()
	tr := reports.created["b1"]
	reports.mu.Unlock()
	require.NotNil(t, tr)
	assert.Equal(t, int64(5), tr.DurationMillis())

	w = serve(h, http.MethodPost, "/report", `{"buildID": "b1", "report": {"kind": "folder"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestManifestRoute(t *testing.T) {
	h, _, _ := newTestRouter(t, nil)
	w := serve(h, http.MethodGet, "/plan/plan1/split.0.exclude.txt", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	h, _, _ = newTestRouter(t, fakeBlob{})
	w = serve(h, http.MethodGet, "/plan/plan1/split.0.exclude.txt", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "p/B.java\np/B.class\n", w.Body.String())
	assert.Equal(t, constants.ManifestMIMEType, w.Header().Get("Content-Type"))

	w = serve(h, http.MethodGet, "/plan/plan1/split.9.exclude.txt", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(h, http.MethodGet, "/plan/plan1/secrets.txt", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"file"`)
	assert.Contains(t, w.Body.String(), `"reason":"splitfile"`)
}

func TestHealthRoute(t *testing.T) {
	h, _, _ := newTestRouter(t, nil)
	w := serve(h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
