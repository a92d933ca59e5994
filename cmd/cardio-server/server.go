package main

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/cardio/cardio/internal/config"
	"github.com/cardio/cardio/internal/domain/heartrate"
	"github.com/cardio/cardio/internal/domain/patient"
	"github.com/cardio/cardio/internal/platform/apperror"
	"github.com/cardio/cardio/internal/platform/metrics"
	"github.com/cardio/cardio/internal/platform/middleware"
	"github.com/cardio/cardio/internal/platform/openapi"
)

type serverDeps struct {
	cfg      *config.Config
	logger   zerolog.Logger
	patients *patient.Store
	readings *heartrate.Store
	metrics  *metrics.Metrics // nil disables /metrics
}

func newServer(d serverDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = apperror.ErrorHandler()

	// Global middleware
	e.Use(middleware.Recovery(d.logger))
	e.Use(middleware.RequestID())
	if d.metrics != nil {
		e.Use(d.metrics.Middleware())
	}
	e.Use(middleware.Logger(d.logger))
	e.Use(middleware.SecurityHeaders(openapi.DocsPath))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  d.cfg.CORSOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderContentType, middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
	}))

	var observer middleware.AccessObserver
	if d.metrics != nil {
		observer = d.metrics
	}
	e.Use(middleware.PatientAccessTracker(d.patients, observer))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":            "ok",
			"version":           version,
			"patients":          d.patients.Len(),
			"heartRateReadings": d.readings.Len(),
		})
	})
	if d.metrics != nil {
		e.GET("/metrics", d.metrics.Handler())
	}

	// Domain routes
	patientSvc := patient.NewService(d.patients, d.logger)
	patient.NewHandler(patientSvc).RegisterRoutes(e.Group("/patients"))

	heartRateSvc := heartrate.NewService(d.patients, d.readings, d.logger)
	heartrate.NewHandler(heartRateSvc).RegisterRoutes(e.Group("/patients/:id/heart-rate"))

	// API documentation
	baseURL := fmt.Sprintf("http://localhost:%s", d.cfg.Port)
	openapi.NewGenerator(apiOperations, version, baseURL).RegisterRoutes(e)

	return e
}

var (
	idParam = openapi.Param{Name: "id", In: "path", Type: "string", Description: "Patient id"}

	apiOperations = []openapi.Operation{
		{
			Method:      http.MethodGet,
			Path:        "/patients",
			OperationID: "listPatients",
			Summary:     "List all patients",
			Tag:         "patients",
			Schema:      "Patient",
			Array:       true,
		},
		{
			Method:      http.MethodGet,
			Path:        "/patients/:id",
			OperationID: "getPatient",
			Summary:     "Get a patient profile",
			Tag:         "patients",
			Params:      []openapi.Param{idParam},
			Schema:      "Patient",
			Errors:      []int{http.StatusNotFound},
		},
		{
			Method:      http.MethodGet,
			Path:        "/patients/:id/requests",
			OperationID: "getRequestsCount",
			Summary:     "Count tracked patient-data reads",
			Tag:         "patients",
			Params:      []openapi.Param{idParam},
			Schema:      "RequestsCount",
			Errors:      []int{http.StatusNotFound},
		},
		{
			Method:      http.MethodGet,
			Path:        "/patients/:id/heart-rate/events",
			OperationID: "getHighEvents",
			Summary:     "List readings above a threshold",
			Tag:         "heart-rate",
			Params: []openapi.Param{
				idParam,
				{Name: "threshold", In: "query", Type: "integer", Description: "Defaults to 100"},
			},
			Schema: "EventsResult",
			Errors: []int{http.StatusBadRequest, http.StatusNotFound},
		},
		{
			Method:      http.MethodGet,
			Path:        "/patients/:id/heart-rate/analytics",
			OperationID: "getAnalytics",
			Summary:     "Summarise readings in a time window",
			Tag:         "heart-rate",
			Params: []openapi.Param{
				idParam,
				{Name: "from", In: "query", Type: "string", Format: "date-time", Required: true},
				{Name: "to", In: "query", Type: "string", Format: "date-time", Required: true},
			},
			Schema: "AnalyticsResult",
			Errors: []int{http.StatusBadRequest, http.StatusNotFound},
		},
	}
)
