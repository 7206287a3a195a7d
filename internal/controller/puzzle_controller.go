package controller

import (
	"codeverse_backend/internal/puzzle"
	"codeverse_backend/internal/service"
	"codeverse_backend/internal/util"
	"context"
	"encoding/json"

	"github.com/gin-gonic/gin"
)

type PuzzleController struct {
	Progress *service.ProgressService
}

func NewPuzzleController(progress *service.ProgressService) *PuzzleController {
	return &PuzzleController{Progress: progress}
}

// SlotsRequest carries a slot → value map for the BST and detective puzzles.
type SlotsRequest struct {
	Slots json.RawMessage `json:"slots"`
}

// ColoringRequest carries the Red-Black node colors.
type ColoringRequest struct {
	Nodes json.RawMessage `json:"nodes"`
}

// Boards godoc
// @Summary 第二阶段棋盘
// @Description 返回二叉搜索树石子、红黑树固定节点值与侦探谜题初始树
// @Tags 第二阶段
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object}
// @Router /api/phase2/boards [get]
func (c *PuzzleController) Boards(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"slotCount": puzzle.SlotCount,
		"bstStones": puzzle.BSTStones,
		"rbValues":  puzzle.RBValues,
		"detective": gin.H{
			"board":     puzzle.DetectiveBoard,
			"stones":    puzzle.DetectiveStones,
			"threshold": puzzle.DetectiveThreshold,
		},
		"points": gin.H{
			"bst":       puzzle.BSTPoints,
			"rb":        puzzle.RBPoints,
			"detective": puzzle.DetectivePoints,
		},
	})
}

type puzzleSubmit func(ctx context.Context, email string, raw json.RawMessage) (*service.PuzzleResult, error)

func (c *PuzzleController) handle(ctx *gin.Context, body interface{}, raw func() json.RawMessage, submit puzzleSubmit) {
	email, err := util.CurrentEmail(ctx)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	if err := ctx.ShouldBindJSON(body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := submit(ctx.Request.Context(), email, raw())
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// SubmitBST godoc
// @Summary 提交二叉搜索树
// @Tags 第二阶段
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SlotsRequest true "槽位与数值"
// @Success 200 {object} util.Response{data=service.PuzzleResult}
// @Failure 423 {object} util.Response "阶段未解锁或已完成"
// @Router /api/phase2/bst [post]
func (c *PuzzleController) SubmitBST(ctx *gin.Context) {
	var req SlotsRequest
	c.handle(ctx, &req, func() json.RawMessage { return req.Slots }, c.Progress.SubmitBST)
}

// SubmitRB godoc
// @Summary 提交红黑树着色
// @Tags 第二阶段
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ColoringRequest true "节点颜色"
// @Success 200 {object} util.Response{data=service.PuzzleResult}
// @Failure 423 {object} util.Response "阶段未解锁或已完成"
// @Router /api/phase2/rb [post]
func (c *PuzzleController) SubmitRB(ctx *gin.Context) {
	var req ColoringRequest
	c.handle(ctx, &req, func() json.RawMessage { return req.Nodes }, c.Progress.SubmitRB)
}

// SubmitDetective godoc
// @Summary 提交侦探谜题
// @Tags 第二阶段
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SlotsRequest true "槽位与数值"
// @Success 200 {object} util.Response{data=service.PuzzleResult}
// @Failure 423 {object} util.Response "阶段未解锁或已完成"
// @Router /api/phase2/detective [post]
func (c *PuzzleController) SubmitDetective(ctx *gin.Context) {
	var req SlotsRequest
	c.handle(ctx, &req, func() json.RawMessage { return req.Slots }, c.Progress.SubmitDetective)
}

// ExitPhase2 godoc
// @Summary 完成第二阶段
// @Description 汇总子任务得分并冻结第二阶段，重复调用返回相同结果
// @Tags 第二阶段
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.ExitResult}
// @Router /api/phase2/exit [post]
func (c *PuzzleController) ExitPhase2(ctx *gin.Context) {
	email, err := util.CurrentEmail(ctx)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	res, err := c.Progress.ExitPhase2(ctx.Request.Context(), email)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, res)
}
