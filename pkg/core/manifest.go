package core

import "context"

// ManifestWriter writes split manifests to the build workspace.
type ManifestWriter interface {
	// Write replaces the split directory of the workspace with one manifest per split and
	// returns the workspace relative path of every manifest, in split order.
	Write(ctx context.Context, workspace, planID string, splits []*InclusionExclusionPattern) ([]string, error)
}
