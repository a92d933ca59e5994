package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type countingStore struct {
	known  map[string]bool
	counts map[string]int
}

func newCountingStore(ids ...string) *countingStore {
	s := &countingStore{known: map[string]bool{}, counts: map[string]int{}}
	for _, id := range ids {
		s.known[id] = true
	}
	return s
}

func (s *countingStore) IncrementRequestCount(id string) {
	if s.known[id] {
		s.counts[id]++
	}
}

type recordingObserver struct {
	resources []string
}

func (o *recordingObserver) ObservePatientAccess(resource string) {
	o.resources = append(o.resources, resource)
}

func TestClassifyPatientAccess(t *testing.T) {
	tests := []struct {
		method   string
		path     string
		id       string
		resource string
		ok       bool
	}{
		{http.MethodGet, "/patients/1", "1", ResourceProfile, true},
		{http.MethodGet, "/patients/1/heart-rate", "1", ResourceHeartRate, true},
		{http.MethodGet, "/patients/1/heart-rate/events", "1", ResourceHeartRate, true},
		{http.MethodGet, "/patients/1/heart-rate/analytics", "1", ResourceHeartRate, true},
		{http.MethodGet, "/patients/1/requests", "", "", false},
		{http.MethodGet, "/patients/1/heart-rates", "", "", false},
		{http.MethodGet, "/patients", "", "", false},
		{http.MethodGet, "/other/1", "", "", false},
		{http.MethodPost, "/patients/1", "", "", false},
		{http.MethodHead, "/patients/1/heart-rate/events", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			id, resource, ok := ClassifyPatientAccess(tt.method, tt.path)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if id != tt.id {
				t.Errorf("expected id %q, got %q", tt.id, id)
			}
			if resource != tt.resource {
				t.Errorf("expected resource %q, got %q", tt.resource, resource)
			}
		})
	}
}

func TestPatientAccessTracker_CountsBeforeHandler(t *testing.T) {
	store := newCountingStore("1")
	obs := &recordingObserver{}
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/patients/1/heart-rate/events", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		if store.counts["1"] != 1 {
			t.Errorf("expected count 1 inside handler, got %d", store.counts["1"])
		}
		return echo.NewHTTPError(http.StatusBadRequest)
	}

	err := PatientAccessTracker(store, obs)(handler)(c)

	if err == nil {
		t.Fatal("expected handler error to pass through")
	}
	if store.counts["1"] != 1 {
		t.Errorf("expected count 1, got %d", store.counts["1"])
	}
	if len(obs.resources) != 1 || obs.resources[0] != ResourceHeartRate {
		t.Errorf("expected one heart-rate observation, got %v", obs.resources)
	}
}

func TestPatientAccessTracker_IgnoresUntracked(t *testing.T) {
	store := newCountingStore("1")
	paths := []string{"/patients/1/requests", "/patients", "/health", "/patients/999"}

	for _, p := range paths {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, p, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		}
		if err := PatientAccessTracker(store, nil)(handler)(c); err != nil {
			t.Fatalf("%s: unexpected error: %v", p, err)
		}
	}

	if store.counts["1"] != 0 {
		t.Errorf("expected count 0, got %d", store.counts["1"])
	}
	if len(store.counts) != 0 {
		t.Errorf("expected no counters, got %v", store.counts)
	}
}
