package manifest

import (
	"io"
	"net/http"

	"github.com/LambdaTest/knapsack/pkg/api/utils"
	"github.com/LambdaTest/knapsack/pkg/constants"
	"github.com/LambdaTest/knapsack/pkg/core"
	errs "github.com/LambdaTest/knapsack/pkg/errors"
	"github.com/LambdaTest/knapsack/pkg/lumber"
	pkgutils "github.com/LambdaTest/knapsack/pkg/utils"
	"github.com/gin-gonic/gin"
)

type manifestURI struct {
	PlanID string `uri:"planID" binding:"required"`
	File   string `uri:"file" binding:"required,splitfile"`
}

// HandleFind streams a mirrored split manifest, for workers that cannot reach the
// build workspace.
func HandleFind(azureClient core.AzureBlob, logger lumber.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		uri := new(manifestURI)
		if err := c.ShouldBindUri(uri); err != nil {
			logger.Errorf("invalid manifest request %s, error: %v", c.Request.URL.Path, err)
			c.JSON(http.StatusBadRequest, errs.ValidationErr(err))
			return
		}
		body, err := azureClient.DownloadStream(c.Request.Context(), pkgutils.GetBlobPath(uri.PlanID, uri.File), core.SplitsContainer)
		if err != nil {
			logger.Errorf("failed to download manifest %s of planID %s, error: %v", uri.File, uri.PlanID, err)
			utils.GetErrResponse(c, err)
			return
		}
		defer body.Close()
		c.Header("Content-Type", constants.ManifestMIMEType)
		c.Status(http.StatusOK)
		if _, err := io.Copy(c.Writer, body); err != nil {
			logger.Errorf("failed to stream manifest %s of planID %s, error: %v", uri.File, uri.PlanID, err)
		}
	}
}
