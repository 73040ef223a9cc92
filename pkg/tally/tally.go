// Package tally collects the JUnit reports of the downstream runs and archives them as
// the test result of the build.
package tally

import (
	"bytes"
	"context"
	"io/fs"

	"github.com/LambdaTest/knapsack/pkg/core"
	errs "github.com/LambdaTest/knapsack/pkg/errors"
	"github.com/LambdaTest/knapsack/pkg/lumber"
	"github.com/LambdaTest/knapsack/pkg/utils"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

const reportMIMEType = "application/xml"

type archiver struct {
	fs          afero.Fs
	pattern     string
	reportStore core.TestReportStore
	blob        core.AzureBlob
	logger      lumber.Logger
}

// NewArchiver returns a ReportArchiver collecting the reports matching pattern. Raw
// reports are kept in the reports container when blob is not nil.
func NewArchiver(fs afero.Fs,
	pattern string,
	reportStore core.TestReportStore,
	blob core.AzureBlob,
	logger lumber.Logger) core.ReportArchiver {
	return &archiver{fs: fs, pattern: pattern, reportStore: reportStore, blob: blob, logger: logger}
}

func (a *archiver) Tally(ctx context.Context, buildID, workspace string) (core.TestResult, error) {
	fsys := afero.NewIOFS(afero.NewBasePathFs(a.fs, workspace))
	files, err := doublestar.Glob(fsys, a.pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid report pattern %s", a.pattern)
	}
	if len(files) == 0 {
		a.logger.Errorf("No test report files were found matching %s for buildID %s", a.pattern, buildID)
		return nil, errs.ErrNoTestReports
	}

	parsed := make([][]*core.SuiteResult, len(files))
	g, errCtx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			raw, err := fs.ReadFile(fsys, file)
			if err != nil {
				return errors.Wrapf(err, "failed to read report %s", file)
			}
			suites, err := ParseJUnit(bytes.NewReader(raw))
			if err != nil {
				a.logger.Errorf("skipping malformed report %s for buildID %s, error: %v", file, buildID, err)
				return nil
			}
			parsed[i] = suites
			if a.blob == nil {
				return nil
			}
			if _, err := a.blob.UploadStream(errCtx, utils.GetBlobPath(buildID, file), bytes.NewReader(raw),
				core.ReportsContainer, reportMIMEType); err != nil {
				a.logger.Errorf("failed to upload report %s for buildID %s, error: %v", file, buildID, err)
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	root := &core.SuiteResult{Name: buildID}
	for _, suites := range parsed {
		for _, s := range suites {
			root.Children = append(root.Children, s)
			root.Duration += s.Duration
		}
	}
	if err := a.reportStore.Create(ctx, buildID, root); err != nil {
		a.logger.Errorf("failed to archive test result for buildID %s, error: %v", buildID, err)
		return nil, err
	}
	a.logger.Infof("Archived %d test reports (%dms) for buildID %s", len(files), root.Duration, buildID)
	return root, nil
}
