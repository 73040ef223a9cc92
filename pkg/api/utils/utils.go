package utils

import (
	"errors"
	"net/http"

	errs "github.com/LambdaTest/knapsack/pkg/errors"
	"github.com/gin-gonic/gin"
)

// GetErrResponse sets proper api err response for given err
func GetErrResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrBuildNotFound), errors.Is(err, errs.ErrNotFound), errors.Is(err, errs.ErrRowsNotFound):
		c.JSON(http.StatusNotFound, errs.ErrNotFound)
	case errors.Is(err, errs.ErrUnknownTestResultKind):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, errs.GenericErrorMessage)
	}
}
