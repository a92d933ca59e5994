package apperror

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// MIMEProblemJSON is the RFC 7807 media type.
const MIMEProblemJSON = "application/problem+json"

// Problem is the RFC 7807 body every failed request is rendered as.
type Problem struct {
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Status    int            `json:"status"`
	Code      Kind           `json:"code,omitempty"`
	Detail    any            `json:"detail,omitempty"`
	Instance  string         `json:"instance"`
	RequestID string         `json:"requestId,omitempty"`
	Context   map[string]any `json:"context,omitempty"`
}

// NewProblem translates err into a Problem for the given request path.
func NewProblem(err error, instance string) *Problem {
	p := &Problem{Type: "about:blank", Instance: instance}

	if ae, ok := As(err); ok {
		p.Code = ae.Kind
		p.Title = ae.Kind.Title()
		p.Status = ae.Kind.Status()
		switch {
		case len(ae.Violations) > 0:
			p.Detail = ae.Violations
		case ae.Detail != "":
			p.Detail = ae.Detail
		}
		// Internal errors only expose the code; the context stays in the logs.
		if ae.Kind != KindInternal {
			p.Context = ae.Context
		}
		return p
	}

	if he, ok := err.(*echo.HTTPError); ok {
		p.Status = he.Code
		p.Title = http.StatusText(he.Code)
		if msg := fmt.Sprint(he.Message); msg != p.Title {
			p.Detail = msg
		}
		if he.Code >= http.StatusInternalServerError {
			p.Code = KindInternal
			p.Title = KindInternal.Title()
			p.Detail = nil
		}
		return p
	}

	p.Code = KindInternal
	p.Title = KindInternal.Title()
	p.Status = http.StatusInternalServerError
	return p
}

// ErrorHandler is the echo.HTTPErrorHandler that renders every error
// returned by a handler or middleware as a problem document.
func ErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		p := NewProblem(err, c.Request().URL.Path)
		if rid, ok := c.Get("request_id").(string); ok {
			p.RequestID = rid
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(p.Status)
			return
		}
		c.Response().Header().Set(echo.HeaderContentType, MIMEProblemJSON)
		_ = c.JSON(p.Status, p)
	}
}
