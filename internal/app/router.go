package app

import (
	"codeverse_backend/internal/config"
	"codeverse_backend/internal/middleware"
	"codeverse_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/login", c.auth.Login)
	}

	// 2. 参与者路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.Profile)
		authGroup.GET("/status", c.progress.Status)
		authGroup.GET("/get-total-score", c.progress.TotalScore)
		authGroup.GET("/sync", c.progress.Sync)

		authGroup.GET("/quiz", c.quiz.GetQuiz)
		authGroup.POST("/phase1/submit", c.progress.SubmitPhase1)

		phase2 := authGroup.Group("/phase2")
		{
			phase2.GET("/boards", c.puzzle.Boards)
			phase2.POST("/bst", c.puzzle.SubmitBST)
			phase2.POST("/rb", c.puzzle.SubmitRB)
			phase2.POST("/detective", c.puzzle.SubmitDetective)
			phase2.POST("/exit", c.puzzle.ExitPhase2)
		}

		authGroup.POST("/phase3/submit", c.progress.SubmitPhase3)
	}

	// 3. 管理员接口
	admin := router.Group("/api/admin")
	admin.Use(middleware.AdminKeyMiddleware(cfg))
	{
		admin.GET("/export", c.admin.ExportCSV)
	}
}
