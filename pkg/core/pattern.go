package core

import "fmt"

// InclusionExclusionPattern is the selector of one split: the file patterns the worker
// either runs exclusively (Includes) or skips.
type InclusionExclusionPattern struct {
	Index    int      `json:"index"`
	Includes bool     `json:"includes"`
	Patterns []string `json:"patterns"`
}

// Mode returns "include" or "exclude".
func (p *InclusionExclusionPattern) Mode() string {
	if p.Includes {
		return "include"
	}
	return "exclude"
}

// FileName returns the manifest file name of the split.
func (p *InclusionExclusionPattern) FileName() string {
	return fmt.Sprintf("split.%d.%s.txt", p.Index, p.Mode())
}
