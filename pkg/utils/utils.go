package utils

import (
	"fmt"
	"path"
	"strings"

	"github.com/LambdaTest/knapsack/pkg/constants"
	"github.com/google/uuid"
)

// GenerateUUID generates uuid v4
func GenerateUUID() string {
	uuidV4 := uuid.New() // panics on error
	return strings.Map(func(r rune) rune {
		if r == '-' {
			return -1
		}
		return r
	}, uuidV4.String())
}

// Max returns the larger of x or y.
func Max(x, y int) int {
	if x < y {
		return y
	}
	return x
}

// Min returns the smaller of x or y.
func Min(x, y int) int {
	if x > y {
		return y
	}
	return x
}

// GetReportCacheKey returns the redis key of the cached test report of a build.
func GetReportCacheKey(buildID string) string {
	return fmt.Sprintf("%s%s", constants.ReportCachePrefix, buildID)
}

// GetBlobPath returns the blob path of a file kept for a plan or build.
func GetBlobPath(prefix, fileName string) string {
	return path.Join(prefix, fileName)
}

// GetSplitFilePath returns the workspace relative path of a manifest file.
func GetSplitFilePath(fileName string) string {
	return path.Join(constants.SplitsDir, fileName)
}

// Chunk calls fn for consecutive [start, end) windows of at most chunkSize elements.
func Chunk(chunkSize, total int, fn func(start int, end int) error) error {
	for i := 0; i < total; i += chunkSize {
		end := i + chunkSize
		if end > total {
			end = total
		}
		if err := fn(i, end); err != nil {
			return err
		}
	}
	return nil
}
