package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
	"github.com/vladislavdragonenkov/logitrack/internal/service/route"
)

// RouteHandler обслуживает маршруты доставки.
type RouteHandler struct {
	service *route.Service
	logger  *log.Entry
}

// NewRouteHandler конструирует обработчик маршрутов.
func NewRouteHandler(service *route.Service, logger *log.Entry) *RouteHandler {
	if logger == nil {
		logger = log.WithField("component", "http-routes")
	}
	return &RouteHandler{service: service, logger: logger}
}

func (h *RouteHandler) List(c *gin.Context) {
	routes, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

func (h *RouteHandler) Get(c *gin.Context) {
	r, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *RouteHandler) Create(c *gin.Context) {
	var in route.CreateInput
	if !bindJSON(c, &in) {
		return
	}

	created, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *RouteHandler) Update(c *gin.Context) {
	var upd domain.RouteUpdate
	if !bindJSON(c, &upd) {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *RouteHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
