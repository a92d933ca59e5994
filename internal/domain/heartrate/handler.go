package heartrate

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cardio/cardio/internal/platform/apperror"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the heart-rate endpoints on a group rooted at
// /patients/:id/heart-rate.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/events", h.GetEvents)
	g.GET("/analytics", h.GetAnalytics)
}

func (h *Handler) GetEvents(c echo.Context) error {
	var threshold *float64
	if c.QueryParam("threshold") != "" {
		var n int
		if err := echo.QueryParamsBinder(c).Int("threshold", &n).BindError(); err != nil {
			return apperror.Validation([]string{"threshold must be an integer number"})
		}
		if n < 0 {
			return apperror.Validation([]string{"threshold must not be less than 0"})
		}
		t := float64(n)
		threshold = &t
	}

	res, err := h.svc.HighEvents(c.Param("id"), threshold)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) GetAnalytics(c echo.Context) error {
	from, to := c.QueryParam("from"), c.QueryParam("to")

	var violations []string
	if _, ok := ParseTimestamp(from); !ok {
		violations = append(violations, "from must be a valid ISO 8601 date string")
	}
	if _, ok := ParseTimestamp(to); !ok {
		violations = append(violations, "to must be a valid ISO 8601 date string")
	}
	if len(violations) > 0 {
		return apperror.Validation(violations)
	}

	res, err := h.svc.Analytics(c.Param("id"), from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
