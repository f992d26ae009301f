package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
	"github.com/vladislavdragonenkov/logitrack/internal/service/carrier"
)

// CarrierHandler обслуживает маршруты перевозчиков.
type CarrierHandler struct {
	service *carrier.Service
	logger  *log.Entry
}

// NewCarrierHandler конструирует обработчик перевозчиков.
func NewCarrierHandler(service *carrier.Service, logger *log.Entry) *CarrierHandler {
	if logger == nil {
		logger = log.WithField("component", "http-carriers")
	}
	return &CarrierHandler{service: service, logger: logger}
}

func (h *CarrierHandler) List(c *gin.Context) {
	carriers, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, carriers)
}

func (h *CarrierHandler) Get(c *gin.Context) {
	cr, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, cr)
}

func (h *CarrierHandler) Create(c *gin.Context) {
	var in carrier.CreateInput
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

func (h *CarrierHandler) Update(c *gin.Context) {
	var upd domain.CarrierUpdate
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

func (h *CarrierHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
