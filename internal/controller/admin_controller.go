package controller

import (
	"bytes"
	"codeverse_backend/internal/service"
	"codeverse_backend/internal/util"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Export *service.ExportService
}

func NewAdminController(export *service.ExportService) *AdminController {
	return &AdminController{Export: export}
}

// ExportCSV godoc
// @Summary 导出全部参与者成绩
// @Tags 管理
// @Produce  text/csv
// @Param   X-Admin-Key header string true "管理员密钥"
// @Success 200 {file} file
// @Router /api/admin/export [get]
func (c *AdminController) ExportCSV(ctx *gin.Context) {
	var buf bytes.Buffer
	if err := c.Export.WriteCSV(ctx.Request.Context(), &buf); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	filename := fmt.Sprintf("codeverse_scores_%s.csv", time.Now().Format("20060102_150405"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
