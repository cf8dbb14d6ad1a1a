package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Op         string
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s status %s", e.Op, e.Status)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func newStatusError(op string, res *http.Response) *StatusError {
	b, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	status := strings.TrimSpace(res.Status)
	if status == "" {
		status = fmt.Sprintf("%d %s", res.StatusCode, http.StatusText(res.StatusCode))
	}
	return &StatusError{
		Op:         op,
		StatusCode: res.StatusCode,
		Status:     status,
		Body:       strings.TrimSpace(string(b)),
	}
}

// HTTPStatus exposes the response code to callers that should not import this package.
func (e *StatusError) HTTPStatus() int { return e.StatusCode }
