package report

import (
	"encoding/json"
	"net/http"

	"github.com/LambdaTest/knapsack/pkg/api/utils"
	"github.com/LambdaTest/knapsack/pkg/core"
	errs "github.com/LambdaTest/knapsack/pkg/errors"
	"github.com/LambdaTest/knapsack/pkg/lumber"
	"github.com/gin-gonic/gin"
)

type reportInput struct {
	BuildID string          `json:"buildID" binding:"required"`
	Report  json.RawMessage `json:"report" binding:"required"`
}

// HandleCreate stores the test result tree of a build.
func HandleCreate(reportStore core.TestReportStore, logger lumber.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqBody := new(reportInput)
		if err := c.ShouldBindJSON(reqBody); err != nil {
			logger.Errorf("error while binding json, error: %v", err)
			c.JSON(http.StatusBadRequest, errs.ValidationErr(err))
			return
		}
		tr, err := core.UnmarshalStrictTestResult(reqBody.Report)
		if err != nil {
			logger.Errorf("invalid test report for buildID %s, error: %v", reqBody.BuildID, err)
			c.JSON(http.StatusBadRequest, errs.ValidationErr(err))
			return
		}
		if err := reportStore.Create(c.Request.Context(), reqBody.BuildID, tr); err != nil {
			logger.Errorf("error while storing test report for buildID %s, error: %v", reqBody.BuildID, err)
			utils.GetErrResponse(c, err)
			return
		}
		c.JSON(http.StatusCreated, nil)
	}
}
