package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

const StatusError = "Error"

// Response is the error envelope. Successful responses carry the bare payload.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Success is the acknowledgment returned by idempotent writes.
type Success struct {
	Success bool `json:"success"`
}

func Error(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

func ValidationError(errs validator.ValidationErrors) Response {
	var errMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errMsgs = append(errMsgs, fmt.Sprintf("Field %s is a required field", err.Field()))
		case "email":
			errMsgs = append(errMsgs, fmt.Sprintf("Field %s is not a valid email", err.Field()))
		case "min", "max":
			errMsgs = append(errMsgs, fmt.Sprintf("Field %s is out of range", err.Field()))
		case "oneof":
			errMsgs = append(errMsgs, fmt.Sprintf("Field %s must be one of: %s", err.Field(), err.Param()))
		default:
			errMsgs = append(errMsgs, fmt.Sprintf("Field %s is not valid", err.Field()))
		}
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMsgs, ", "),
	}
}
