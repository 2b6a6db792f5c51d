package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Err carries the HTTP status alongside the client-facing message. Wrapped
// causes stay server-side; the body is always a flat {"error": msg}.
type Err struct {
	Status int
	Msg    string
	Cause  error
}

func (e *Err) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return http.StatusText(e.Status)
}

func (e *Err) Unwrap() error { return e.Cause }

func BadRequest(msg string) error   { return &Err{Status: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &Err{Status: http.StatusUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &Err{Status: http.StatusForbidden, Msg: msg} }
func NotFound(msg string) error     { return &Err{Status: http.StatusNotFound, Msg: msg} }
func Internal(msg string, cause error) error {
	return &Err{Status: http.StatusInternalServerError, Msg: msg, Cause: cause}
}

// Fail renders err as {"error": msg} with its status; anything that is not a
// *Err becomes a generic 500 so storage internals never leak to the client.
// A storage call killed by the request deadline surfaces as 504, whatever the
// handler wrapped it in.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	if errors.Is(err, context.DeadlineExceeded) {
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "storage timeout"})
		return
	}
	var e *Err
	if errors.As(err, &e) {
		c.JSON(e.Status, gin.H{"error": e.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}

// Abort is Fail for middleware: it also stops the handler chain.
func Abort(c *gin.Context, err error) {
	Fail(c, err)
	c.Abort()
}

func OK(c *gin.Context, data any) { c.JSON(http.StatusOK, data) }

func Created(c *gin.Context, data any) { c.JSON(http.StatusCreated, data) }
