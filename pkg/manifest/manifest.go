// Package manifest writes the selectors of a plan into the build workspace.
package manifest

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/LambdaTest/knapsack/pkg/constants"
	"github.com/LambdaTest/knapsack/pkg/core"
	errs "github.com/LambdaTest/knapsack/pkg/errors"
	"github.com/LambdaTest/knapsack/pkg/lumber"
	"github.com/LambdaTest/knapsack/pkg/utils"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

const manifestPerm = 0o644

type writer struct {
	fs     afero.Fs
	blob   core.AzureBlob
	logger lumber.Logger
}

// NewWriter returns a ManifestWriter on fs. Manifests are mirrored to the splits
// container when blob is not nil.
func NewWriter(fs afero.Fs, blob core.AzureBlob, logger lumber.Logger) core.ManifestWriter {
	return &writer{fs: fs, blob: blob, logger: logger}
}

func (w *writer) Write(ctx context.Context, workspace, planID string, splits []*core.InclusionExclusionPattern) ([]string, error) {
	if ok, err := afero.DirExists(w.fs, workspace); err != nil || !ok {
		w.logger.Errorf("workspace %s not found for plan %s", workspace, planID)
		return nil, errs.ErrNoWorkspace
	}
	dir := filepath.Join(workspace, constants.SplitsDir)
	if err := w.fs.RemoveAll(dir); err != nil {
		return nil, errors.Wrapf(err, "failed to clean %s", dir)
	}
	if err := w.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", dir)
	}

	paths := make([]string, len(splits))
	g, errCtx := errgroup.WithContext(ctx)
	for i, split := range splits {
		i, split := i, split
		paths[i] = utils.GetSplitFilePath(split.FileName())
		g.Go(func() error {
			content := Render(split)
			if err := afero.WriteFile(w.fs, filepath.Join(workspace, paths[i]), content, manifestPerm); err != nil {
				w.logger.Errorf("failed to write manifest %s for plan %s, error: %v", paths[i], planID, err)
				return err
			}
			if w.blob == nil {
				return nil
			}
			blobPath := utils.GetBlobPath(planID, split.FileName())
			if _, err := w.blob.UploadBytes(errCtx, blobPath, content, core.SplitsContainer, constants.ManifestMIMEType); err != nil {
				w.logger.Errorf("failed to mirror manifest %s for plan %s, error: %v", blobPath, planID, err)
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// Render returns the manifest of a split: one pattern per line.
func Render(split *core.InclusionExclusionPattern) []byte {
	var b strings.Builder
	for _, p := range split.Patterns {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
