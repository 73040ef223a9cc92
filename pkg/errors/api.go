package errors

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationError names a request field and the rule it broke.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationErr turns a binding error into an API body: one entry per broken rule for
// validation failures, a plain message otherwise.
func ValidationErr(err error) interface{} {
	var verr validator.ValidationErrors
	if !errors.As(err, &verr) {
		return New(err.Error())
	}
	fields := make([]ValidationError, 0, len(verr))
	for _, f := range verr {
		reason := f.ActualTag()
		if f.Param() != "" {
			reason = fmt.Sprintf("%s=%s", reason, f.Param())
		}
		fields = append(fields, ValidationError{Field: f.Field(), Reason: reason})
	}
	return fields
}
