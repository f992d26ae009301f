package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
	"github.com/vladislavdragonenkov/logitrack/internal/service/order"
)

// OrderHandler обслуживает маршруты заказов.
type OrderHandler struct {
	service *order.Service
	logger  *log.Entry
}

// NewOrderHandler конструирует обработчик заказов.
func NewOrderHandler(service *order.Service, logger *log.Entry) *OrderHandler {
	if logger == nil {
		logger = log.WithField("component", "http-orders")
	}
	return &OrderHandler{service: service, logger: logger}
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) ListByUser(c *gin.Context) {
	orders, err := h.service.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// Create создаёт заказ от имени аутентифицированного пользователя:
// userId берётся из токена, не из тела запроса.
func (h *OrderHandler) Create(c *gin.Context) {
	var in order.CreateInput
	if !bindJSON(c, &in) {
		return
	}

	if claims, ok := claimsFrom(c); ok && claims.Role != domain.RoleAdmin {
		in.UserID = claims.UserID
	}

	created, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *OrderHandler) Update(c *gin.Context) {
	var upd domain.OrderUpdate
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

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var in struct {
		Status domain.OrderStatus `json:"orderStatus"`
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

func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
