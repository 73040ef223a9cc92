package split

import (
	"net/http"

	"github.com/LambdaTest/knapsack/pkg/api/utils"
	"github.com/LambdaTest/knapsack/pkg/core"
	errs "github.com/LambdaTest/knapsack/pkg/errors"
	"github.com/LambdaTest/knapsack/pkg/lumber"
	"github.com/gin-gonic/gin"
)

type splitInput struct {
	BuildID            string `json:"buildID" binding:"required"`
	GenerateInclusions bool   `json:"generateInclusions"`
}

type splitResponse struct {
	Splits []*core.InclusionExclusionPattern `json:"splits"`
}

// HandleCreate plans the splits of a build without launching them.
func HandleCreate(executor core.Executor, logger lumber.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqBody := new(splitInput)
		if err := c.ShouldBindJSON(reqBody); err != nil {
			logger.Errorf("error while binding json, error: %v", err)
			c.JSON(http.StatusBadRequest, errs.ValidationErr(err))
			return
		}
		splits, err := executor.Plan(c.Request.Context(), reqBody.BuildID, reqBody.GenerateInclusions)
		if err != nil {
			logger.Errorf("error while planning splits for buildID %s, error: %v", reqBody.BuildID, err)
			utils.GetErrResponse(c, err)
			return
		}
		c.JSON(http.StatusOK, splitResponse{Splits: splits})
	}
}
