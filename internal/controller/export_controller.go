package controller

import (
	"better_results_backend/internal/grading"
	"better_results_backend/internal/service"
	"better_results_backend/internal/util"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ExportController struct {
	ExportService *service.ExportService
}

func NewExportController(exportService *service.ExportService) *ExportController {
	return &ExportController{ExportService: exportService}
}

type exportParams struct {
	Format string `form:"format" binding:"omitempty,oneof=csv xlsx"`
	Order  string `form:"order"`
}

func bindExport(ctx *gin.Context) (service.ResultsQuery, string, grading.ExportOrder, bool) {
	q, ok := bindResultsQuery(ctx)
	if !ok {
		return q, "", "", false
	}
	var p exportParams
	if err := ctx.ShouldBindQuery(&p); err != nil {
		util.BadRequest(ctx, err.Error())
		return q, "", "", false
	}
	order, err := grading.ParseExportOrder(p.Order)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return q, "", "", false
	}
	return q, p.Format, order, true
}

// @Summary 导出成绩
// @Description 下载 CSV 或 XLSX，未选择学期时导出全部学期
// @Tags 导出
// @Produce octet-stream
// @Param format query string false "文件格式" Enums(csv, xlsx)
// @Param order query string false "排序" Enums(chronological, period-course, course-chronological)
// @Param periods query string false "学期名，逗号分隔"
// @Param year query string false "学年开始年份或 current"
// @Success 200 {file} file
// @Failure 400 {object} util.Response
// @Router /api/results/export [get]
func (c *ExportController) Download(ctx *gin.Context) {
	q, format, order, ok := bindExport(ctx)
	if !ok {
		return
	}
	file, err := c.ExportService.Export(ctx.Request.Context(), util.GetSessionFromContext(ctx), q, format, order)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	ctx.Data(http.StatusOK, file.ContentType, file.Data)
}

// @Summary 归档导出
// @Description 生成导出文件并保存到对象存储，返回归档记录
// @Tags 导出
// @Produce json
// @Param format query string false "文件格式" Enums(csv, xlsx)
// @Param order query string false "排序" Enums(chronological, period-course, course-chronological)
// @Success 201 {object} util.Response{data=model.ExportRecord}
// @Router /api/results/export/archive [post]
func (c *ExportController) Archive(ctx *gin.Context) {
	q, format, order, ok := bindExport(ctx)
	if !ok {
		return
	}
	record, err := c.ExportService.Archive(ctx.Request.Context(), util.GetSessionFromContext(ctx), q, format, order)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, record)
}

// @Summary 归档列表
// @Tags 导出
// @Produce json
// @Param limit query int false "最多返回条数，默认 20"
// @Success 200 {object} util.Response{data=util.ListResponse}
// @Router /api/results/export/archives [get]
func (c *ExportController) ListArchives(ctx *gin.Context) {
	limit := util.MustParseInt(ctx.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	records, err := c.ExportService.ListArchives(ctx.Request.Context(), util.GetSessionFromContext(ctx), limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, util.ListResponse{List: records, Total: len(records)})
}
