package util

import (
	"codeverse_backend/pkg/logger"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(c, http.StatusNotFound, message)
}

// Locked 阶段未解锁或已冻结
func Locked(c *gin.Context, message string) {
	Error(c, http.StatusLocked, message)
}

func ServiceUnavailable(c *gin.Context) {
	Error(c, http.StatusServiceUnavailable, "Progress could not be saved, please retry")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// HandleServiceError maps the sentinel errors onto the response envelope.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrIdentityMissing):
		Unauthorized(c)
	case errors.Is(err, ErrPhaseLocked):
		Locked(c, err.Error())
	case errors.Is(err, ErrParticipantNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, ErrNameRequired), errors.Is(err, ErrEmailRequired), errors.Is(err, ErrInvalidPoints):
		BadRequest(c, err.Error())
	case errors.Is(err, ErrPersistence):
		logger.Log.Error("Persistence failure", zap.String("path", c.FullPath()), zap.Error(err))
		ServiceUnavailable(c)
	default:
		LogInternalError(c, err)
	}
}
