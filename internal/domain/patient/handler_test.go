package patient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cardio/cardio/internal/platform/apperror"
)

func newTestHandler() (*Handler, *echo.Echo, *Store) {
	svc, store := newTestService()
	h := NewHandler(svc)
	e := echo.New()
	e.HTTPErrorHandler = apperror.ErrorHandler()
	h.RegisterRoutes(e.Group("/patients"))
	return h, e, store
}

func TestHandler_ListPatients(t *testing.T) {
	h, e, _ := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListPatients(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	var list []Patient
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("expected 2 patients, got %d", len(list))
	}
}

func TestHandler_GetPatient(t *testing.T) {
	h, e, _ := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.GetPatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var p Patient
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.ID != "1" || p.Gender != GenderFemale {
		t.Errorf("unexpected patient: %+v", p)
	}
}

func TestHandler_GetPatient_NotFound(t *testing.T) {
	h, e, _ := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("999")

	err := h.GetPatient(c)
	if apperror.KindOf(err) != apperror.KindPatientNotFound {
		t.Errorf("expected PATIENT_NOT_FOUND, got %v", err)
	}
}

func TestHandler_GetRequestsCount_Routed(t *testing.T) {
	_, e, store := newTestHandler()
	store.IncrementRequestCount("2")

	req := httptest.NewRequest(http.MethodGet, "/patients/2/requests", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var rc RequestsCount
	if err := json.Unmarshal(rec.Body.Bytes(), &rc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rc.PatientID != "2" || rc.RequestsCount != 1 {
		t.Errorf("unexpected body: %+v", rc)
	}
}

func TestHandler_GetRequestsCount_NotFoundProblem(t *testing.T) {
	_, e, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/patients/404/requests", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	var p apperror.Problem
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Code != apperror.KindPatientNotFound {
		t.Errorf("expected PATIENT_NOT_FOUND, got %s", p.Code)
	}
}
