package api

import (
	"errors"
	"net/http"
	"os"

	"github.com/samcharles93/dvfile/pkg/dv"
)

var ErrInvalidRequest = errors.New("invalid_request")

type invalidRequestError struct {
	msg string
}

func (e invalidRequestError) Error() string {
	return e.msg
}

func (e invalidRequestError) Unwrap() error {
	return ErrInvalidRequest
}

func newInvalidRequest(msg string) error {
	return invalidRequestError{msg: msg}
}

// statusFor maps reader errors onto HTTP status and error type.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, dv.ErrIndexOutOfRange):
		return http.StatusBadRequest, "invalid_request_error"
	case errors.Is(err, os.ErrNotExist):
		return http.StatusNotFound, "not_found_error"
	case errors.Is(err, dv.ErrUnrecognizedFormat),
		errors.Is(err, dv.ErrTruncated),
		errors.Is(err, dv.ErrShortRead),
		errors.Is(err, dv.ErrUnknownPixelType):
		return http.StatusUnprocessableEntity, "invalid_file_error"
	case errors.Is(err, dv.ErrClosed):
		return http.StatusGone, "closed_error"
	default:
		return http.StatusInternalServerError, "server_error"
	}
}
