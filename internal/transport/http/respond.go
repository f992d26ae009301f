package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
)

// errorResponse — единый формат тела ошибки.
type errorResponse struct {
	Error string `json:"error"`
}

// writeError переводит доменную ошибку в HTTP-статус.
// Вина клиента (валидация, not-found, конфликт) отдаётся с текстом ошибки;
// сбои хранилища и кэша скрываются за общим 500, детали остаются в логе.
func writeError(c *gin.Context, logger *log.Entry, err error) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrOrderLocked):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
	default:
		if se, ok := domain.AsStoreError(err); ok {
			switch se.Kind {
			case domain.StoreErrUnique:
				c.JSON(http.StatusConflict, errorResponse{Error: se.Field + " already exists"})
				return
			case domain.StoreErrForeignKey:
				c.JSON(http.StatusBadRequest, errorResponse{Error: se.Field + " references a missing record"})
				return
			}
		}
		logger.WithError(err).WithFields(log.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("request failed")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// bindJSON разбирает тело запроса; ошибка разбора — вина клиента.
func bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}
