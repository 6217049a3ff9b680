package webhook

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// Machine readable codes carried by error responses.
const (
	CodeMissingFields    = "MISSING_FIELDS"
	CodeInvalidHandle    = "INVALID_HANDLE"
	CodeInvalidPayload   = "INVALID_PAYLOAD"
	CodeCreationFailed   = "CREATION_FAILED"
	CodeMergeFailed      = "MERGE_FAILED"
	CodeInternalError    = "INTERNAL_ERROR"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// webhookError is a terminal failure of a webhook call. message is what the
// caller sees, cause is only logged.
type webhookError struct {
	status  int
	message string
	code    string
	missing []string
	cause   error
}

func (e *webhookError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.message, e.cause)
	}
	return e.message
}

func errUnauthorized() *webhookError {
	return &webhookError{status: http.StatusUnauthorized, message: "Invalid authentication"}
}

func errInvalidJSON(cause error) *webhookError {
	return &webhookError{status: http.StatusBadRequest, message: "Invalid JSON body", cause: cause}
}

func errMissingFields(missing []string) *webhookError {
	return &webhookError{
		status:  http.StatusBadRequest,
		message: "Missing required fields: " + strings.Join(missing, ", "),
		code:    CodeMissingFields,
		missing: missing,
	}
}

func errInvalidPayload(cause error) *webhookError {
	return &webhookError{status: http.StatusBadRequest, message: "Invalid payload: " + cause.Error(), code: CodeInvalidPayload, cause: cause}
}

func errInvalidHandle() *webhookError {
	return &webhookError{status: http.StatusBadRequest, message: "Invalid Instagram handle format", code: CodeInvalidHandle}
}

func errInternal(cause error) *webhookError {
	return &webhookError{status: http.StatusInternalServerError, message: "Internal server error", code: CodeInternalError, cause: cause}
}

// asWebhookError maps any error to a webhookError, unknown errors are
// internal errors.
func asWebhookError(err error) *webhookError {
	var werr *webhookError
	if errors.As(err, &werr) {
		return werr
	}
	return errInternal(err)
}
