package controller

import (
	"codeverse_backend/internal/service"
	"codeverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService  *service.AuthService
	Participants *service.ParticipantService
}

func NewAuthController(authService *service.AuthService, participants *service.ParticipantService) *AuthController {
	return &AuthController{
		AuthService:  authService,
		Participants: participants,
	}
}

// LoginRequest defines model for login
// swagger:model LoginRequest
type LoginRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email" binding:"required,email"`
	RollNo   string `json:"rollno"`
}

// Login godoc
// @Summary 参与者登录
// @Description 首次登录时创建参与者记录（幂等），返回身份令牌
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "登录信息"
// @Success 200 {object} util.Response{data=object} "登录成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 503 {object} util.Response "存储不可用"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	name := req.Name
	if name == "" {
		name = req.Username
	}

	token, p, err := c.AuthService.Login(ctx.Request.Context(), name, req.Email, req.RollNo)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"token":  token,
		"status": service.StatusOf(p),
	})
}

// Profile godoc
// @Summary 当前参与者信息
// @Description 仅用于展示，优先读取缓存
// @Tags 认证
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.Participant}
// @Router /api/profile [get]
func (c *AuthController) Profile(ctx *gin.Context) {
	email, err := util.CurrentEmail(ctx)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	p, err := c.Participants.CachedProfile(ctx.Request.Context(), email)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, p)
}
