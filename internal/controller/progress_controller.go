package controller

import (
	"codeverse_backend/internal/service"
	"codeverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Progress     *service.ProgressService
	Scores       *service.ScoreService
	Participants *service.ParticipantService
}

func NewProgressController(progress *service.ProgressService, scores *service.ScoreService, participants *service.ParticipantService) *ProgressController {
	return &ProgressController{
		Progress:     progress,
		Scores:       scores,
		Participants: participants,
	}
}

type Phase1Request struct {
	Answers map[string]string `json:"answers"`
}

type Phase3Request struct {
	Points *int `json:"points" binding:"required"`
}

// SubmitPhase1 godoc
// @Summary 提交第一阶段答案
// @Description 每题 5 分，按题号对整个题库评分，重复提交以最后一次为准
// @Tags 第一阶段
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body Phase1Request true "答案"
// @Success 200 {object} util.Response{data=service.Phase1Result}
// @Router /api/phase1/submit [post]
func (c *ProgressController) SubmitPhase1(ctx *gin.Context) {
	email, err := util.CurrentEmail(ctx)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	var req Phase1Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.Progress.SubmitPhase1(ctx.Request.Context(), email, req.Answers)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// SubmitPhase3 godoc
// @Summary 记录第三阶段得分
// @Description 分数来自外部排行榜导入
// @Tags 第三阶段
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body Phase3Request true "得分"
// @Success 200 {object} util.Response{data=service.Phase3Result}
// @Failure 423 {object} util.Response "第二阶段未完成"
// @Router /api/phase3/submit [post]
func (c *ProgressController) SubmitPhase3(ctx *gin.Context) {
	email, err := util.CurrentEmail(ctx)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	var req Phase3Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.Progress.SubmitPhase3(ctx.Request.Context(), email, *req.Points)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// Status godoc
// @Summary 阶段状态
// @Tags 进度
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.StatusView}
// @Router /api/status [get]
func (c *ProgressController) Status(ctx *gin.Context) {
	email, err := util.CurrentEmail(ctx)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	status, err := c.Progress.GetStatus(ctx.Request.Context(), email)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, status)
}

// TotalScore godoc
// @Summary 总分
// @Description 第三阶段完成前不返回具体分数
// @Tags 进度
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.TotalView}
// @Router /api/get-total-score [get]
func (c *ProgressController) TotalScore(ctx *gin.Context) {
	email, err := util.CurrentEmail(ctx)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	total, err := c.Scores.GetTotal(ctx.Request.Context(), email)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, total)
}

// Sync godoc
// @Summary 同步进度
// @Description 客户端轮询，从存储重新读取并刷新缓存
// @Tags 进度
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object}
// @Router /api/sync [get]
func (c *ProgressController) Sync(ctx *gin.Context) {
	email, err := util.CurrentEmail(ctx)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	p, err := c.Participants.Sync(ctx.Request.Context(), email)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"status": service.StatusOf(p),
		"total":  c.Scores.TotalOf(p),
	})
}
