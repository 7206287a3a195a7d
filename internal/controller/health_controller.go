package controller

import (
	"codeverse_backend/internal/util"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	Store Pinger
	Cache Pinger
}

func NewHealthController(store, cache Pinger) *HealthController {
	return &HealthController{Store: store, Cache: cache}
}

// @Summary 健康检查
// @Description 检查服务状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	if err := c.Store.Ping(ctx.Request.Context()); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	// 缓存仅用于展示，不可用时服务仍然可用
	cache := "disabled"
	if c.Cache != nil {
		cache = "up"
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			cache = "down"
		}
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"database": "up",
			"cache":    cache,
		},
	})
}
