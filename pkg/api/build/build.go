package build

import (
	"context"
	"net/http"

	"github.com/LambdaTest/knapsack/pkg/core"
	"github.com/LambdaTest/knapsack/pkg/lumber"
	"github.com/gin-gonic/gin"
)

// HandleExecute starts the parallel test step of a build. The step outlives the request
// and is cancelled only when the service shuts down.
func HandleExecute(signalCtx context.Context, executor core.Executor, logger lumber.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		buildID := c.Param("buildID")
		go func() {
			result, err := executor.Perform(signalCtx, buildID)
			if err != nil {
				logger.Errorf("parallel test execution of buildID %s finished with %s, error: %v", buildID, result, err)
				return
			}
			logger.Infof("parallel test execution of buildID %s finished with %s", buildID, result)
		}()
		c.JSON(http.StatusAccepted, gin.H{"buildID": buildID})
	}
}
