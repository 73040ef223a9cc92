package health

import (
	"context"
	"net/http"

	"github.com/LambdaTest/knapsack/pkg/constants"
	"github.com/gin-gonic/gin"
)

type status struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Handler reports whether the service still accepts executions. Once shutdown has been
// requested it answers 503 so that probes take the instance out of rotation while running
// executions drain.
func Handler(signalCtx context.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		select {
		case <-signalCtx.Done():
			c.JSON(http.StatusServiceUnavailable, status{Status: "draining", Version: constants.BinaryVersion})
		default:
			c.JSON(http.StatusOK, status{Status: "ok", Version: constants.BinaryVersion})
		}
	}
}
