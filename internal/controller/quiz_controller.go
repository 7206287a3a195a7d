package controller

import (
	"codeverse_backend/internal/quiz"
	"codeverse_backend/internal/util"
	"math/rand/v2"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Bank   *quiz.Bank
	served atomic.Int64
}

func NewQuizController(bank *quiz.Bank, served int) *QuizController {
	c := &QuizController{Bank: bank}
	c.SetServed(served)
	return c
}

// SetServed 配置热更新时调整每次下发的题目数
func (c *QuizController) SetServed(n int) {
	c.served.Store(int64(n))
}

// GetQuiz godoc
// @Summary 获取第一阶段题目
// @Description 从题库随机抽取题目，不包含答案
// @Tags 第一阶段
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]quiz.Served}
// @Router /api/quiz [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	util.Success(ctx, gin.H{
		"questions": c.Bank.Sample(int(c.served.Load()), rng),
		"points":    quiz.PointsPerCorrect,
	})
}
