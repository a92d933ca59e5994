package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/cardio/cardio/internal/platform/apperror"
)

func TestObservePatientAccess(t *testing.T) {
	m := New()
	m.ObservePatientAccess("profile")
	m.ObservePatientAccess("profile")
	m.ObservePatientAccess("heart-rate")

	if got := testutil.ToFloat64(m.patientDataAccesses.WithLabelValues("profile")); got != 2 {
		t.Errorf("expected 2 profile accesses, got %v", got)
	}
	if got := testutil.ToFloat64(m.patientDataAccesses.WithLabelValues("heart-rate")); got != 1 {
		t.Errorf("expected 1 heart-rate access, got %v", got)
	}
}

func TestMiddleware_UsesRouteTemplate(t *testing.T) {
	m := New()
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/patients/:id", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	for _, id := range []string{"1", "2", "3"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/patients/"+id, nil))
	}

	got := testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues(http.MethodGet, "/patients/:id", "200"))
	if got != 3 {
		t.Errorf("expected 3 requests on route template, got %v", got)
	}
}

func TestMiddleware_DomainErrorStatus(t *testing.T) {
	m := New()
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/patients/:id", func(c echo.Context) error {
		return apperror.PatientNotFound(c.Param("id"))
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/patients/9", nil))

	got := testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues(http.MethodGet, "/patients/:id", "404"))
	if got != 1 {
		t.Errorf("expected one 404, got %v", got)
	}
}

func TestHandler_Exposition(t *testing.T) {
	m := New()
	m.SetSeeded("patients", 4)
	e := echo.New()
	e.GET("/metrics", m.Handler())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `cardio_seeded_records{kind="patients"} 4`) {
		t.Errorf("expected seeded gauge in exposition, got:\n%s", rec.Body.String())
	}
}
