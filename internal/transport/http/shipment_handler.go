package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
	"github.com/vladislavdragonenkov/logitrack/internal/service/shipment"
)

// ShipmentHandler обслуживает маршруты отправлений, включая кэшируемый
// поиск по трек-номеру.
type ShipmentHandler struct {
	service *shipment.Service
	logger  *log.Entry
}

// NewShipmentHandler конструирует обработчик отправлений.
func NewShipmentHandler(service *shipment.Service, logger *log.Entry) *ShipmentHandler {
	if logger == nil {
		logger = log.WithField("component", "http-shipments")
	}
	return &ShipmentHandler{service: service, logger: logger}
}

func (h *ShipmentHandler) List(c *gin.Context) {
	shipments, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, shipments)
}

func (h *ShipmentHandler) Get(c *gin.Context) {
	sh, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sh)
}

func (h *ShipmentHandler) ListByOrder(c *gin.Context) {
	shipments, err := h.service.GetByOrder(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, shipments)
}

// GetByTracking — кэшируемый путь: поиск сшитого представления по трек-номеру.
func (h *ShipmentHandler) GetByTracking(c *gin.Context) {
	view, err := h.service.GetByTracking(c.Request.Context(), c.Param("trackingNumber"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ShipmentHandler) Create(c *gin.Context) {
	var in shipment.CreateInput
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

func (h *ShipmentHandler) Update(c *gin.Context) {
	var upd domain.ShipmentUpdate
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

func (h *ShipmentHandler) UpdateStatus(c *gin.Context) {
	var in struct {
		Status domain.ShipmentStatus `json:"status"`
	}
	if !bindJSON(c, &in) {
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), in.Status)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ShipmentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
