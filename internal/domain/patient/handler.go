package patient

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListPatients)
	g.GET("/:id", h.GetPatient)
	g.GET("/:id/requests", h.GetRequestsCount)
}

func (h *Handler) ListPatients(c echo.Context) error {
	list, err := h.svc.GetAll()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) GetPatient(c echo.Context) error {
	p, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) GetRequestsCount(c echo.Context) error {
	rc, err := h.svc.RequestsCount(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rc)
}
