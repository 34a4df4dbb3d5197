package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

var ErrSerialization = fmt.Errorf("serialization failure")
var ErrInternal = fmt.Errorf("internal error")
var ErrRequest = fmt.Errorf("request error")
var ErrBadRequest = fmt.Errorf("bad request")
var ErrBadResponse = fmt.Errorf("bad response")
var ErrUnauthorized = fmt.Errorf("unauthorized")
var ErrForbidden = fmt.Errorf("forbidden")
var ErrNotFound = fmt.Errorf("not found")
var ErrConflict = fmt.Errorf("conflict")
var ErrPreconditionFailed = fmt.Errorf("precondition failed")
var ErrTooManyRequests = fmt.Errorf("too many requests")
var ErrMissingEntityID = fmt.Errorf("missing entity id")
var ErrNoAuth = fmt.Errorf("no authentication method selected")

type myError struct {
	msg    string
	code   string
	target error
}

func (m myError) Error() string        { return m.msg }
func (m myError) Is(target error) bool { return target == m.target }

// Code returns the error code reported by the service, if any
func (m myError) Code() string { return m.code }

func newError(msg, code string, target error) error {
	return &myError{
		msg:    msg,
		code:   code,
		target: target,
	}
}

func NewSerializationError(err error) error {
	return fmt.Errorf("%w: %s", ErrSerialization, err.Error())
}

var statusToError = map[int]error{
	http.StatusBadRequest:         ErrBadRequest,
	http.StatusUnauthorized:       ErrUnauthorized,
	http.StatusForbidden:          ErrForbidden,
	http.StatusNotFound:           ErrNotFound,
	http.StatusConflict:           ErrConflict,
	http.StatusPreconditionFailed: ErrPreconditionFailed,
	http.StatusTooManyRequests:    ErrTooManyRequests,
}

// NewErrorFromResponse maps an error response from the service onto one of the
// package errors. The body is expected to be an OData error object, but any
// content is accepted and used as the error message.
func NewErrorFromResponse(code int, contentType string, body []byte) error {
	target, ok := statusToError[code]
	if !ok {
		target = ErrInternal
	}

	msg := strings.TrimSpace(string(body))
	errorCode := ""

	if strings.HasPrefix(contentType, "application/json") && len(body) > 0 {
		report := &struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}{}

		if err := json.Unmarshal(body, report); err == nil && report.Error.Message != "" {
			msg = report.Error.Message
			errorCode = report.Error.Code
		}
	}

	if msg == "" {
		msg = "no error details provided from server"
	}

	return newError(fmt.Sprintf("[code: %d] %s", code, msg), errorCode, target)
}
