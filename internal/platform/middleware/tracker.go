package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Resource kinds counted by the access tracker.
const (
	ResourceProfile   = "profile"
	ResourceHeartRate = "heart-rate"
)

const (
	patientsPrefix  = "/patients/"
	requestsSegment = "requests"
)

// RequestCounter is incremented once per tracked patient-data read. Unknown
// ids must be ignored by the implementation.
type RequestCounter interface {
	IncrementRequestCount(id string)
}

// AccessObserver is told about every tracked read, e.g. to export metrics.
type AccessObserver interface {
	ObservePatientAccess(resource string)
}

// ClassifyPatientAccess reports which patient and resource kind a request
// reads, if it is a read the tracker counts: GET /patients/{id} and
// GET /patients/{id}/heart-rate[/...]. The requests counter endpoint itself
// is never counted.
func ClassifyPatientAccess(method, path string) (id, resource string, ok bool) {
	if method != http.MethodGet {
		return "", "", false
	}
	tail, found := strings.CutPrefix(path, patientsPrefix)
	if !found {
		return "", "", false
	}
	id, rest, _ := strings.Cut(tail, "/")
	if id == "" {
		return "", "", false
	}

	switch {
	case rest == requestsSegment:
		return "", "", false
	case rest == "":
		return id, ResourceProfile, true
	case rest == ResourceHeartRate || strings.HasPrefix(rest, ResourceHeartRate+"/"):
		return id, ResourceHeartRate, true
	}
	return "", "", false
}

// PatientAccessTracker counts patient-data reads before the handler runs,
// whether or not the handler later succeeds. It never fails the request.
// observer may be nil.
func PatientAccessTracker(counter RequestCounter, observer AccessObserver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id, resource, ok := ClassifyPatientAccess(c.Request().Method, c.Request().URL.Path); ok {
				counter.IncrementRequestCount(id)
				if observer != nil {
					observer.ObservePatientAccess(resource)
				}
			}
			return next(c)
		}
	}
}
