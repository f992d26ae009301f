package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
	"github.com/vladislavdragonenkov/logitrack/internal/service/user"
)

// UserHandler обслуживает регистрацию, вход и управление пользователями.
type UserHandler struct {
	service *user.Service
	logger  *log.Entry
}

// NewUserHandler конструирует обработчик пользователей.
func NewUserHandler(service *user.Service, logger *log.Entry) *UserHandler {
	if logger == nil {
		logger = log.WithField("component", "http-users")
	}
	return &UserHandler{service: service, logger: logger}
}

// Register — публичная регистрация. Роль из тела игнорируется:
// привилегированные роли назначает администратор через Update.
func (h *UserHandler) Register(c *gin.Context) {
	var in user.RegisterInput
	if !bindJSON(c, &in) {
		return
	}
	in.Role = domain.RoleCustomer

	created, err := h.service.Register(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// loginResponse — токен вместе с профилем вошедшего пользователя.
type loginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (h *UserHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !bindJSON(c, &in) {
		return
	}

	token, usr, err := h.service.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{Token: token, User: usr})
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Get отдаёт профиль. Не-администратор видит только собственный.
func (h *UserHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !h.allowSelfOrAdmin(c, id) {
		return
	}

	usr, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, usr)
}

func (h *UserHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if !h.allowSelfOrAdmin(c, id) {
		return
	}

	var in user.UpdateInput
	if !bindJSON(c, &in) {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) allowSelfOrAdmin(c *gin.Context, id string) bool {
	claims, ok := claimsFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
		return false
	}
	if claims.Role != domain.RoleAdmin && claims.UserID != id {
		c.AbortWithStatusJSON(http.StatusForbidden, errorResponse{Error: "insufficient permissions"})
		return false
	}
	return true
}
