package controller

import (
	"better_results_backend/internal/grading"
	"better_results_backend/internal/service"
	"better_results_backend/internal/util"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// resultsParams 结果类接口共用的查询参数
type resultsParams struct {
	Year    string `form:"year"`
	Filter  string `form:"filter" binding:"omitempty,oneof=before after"`
	Date    string `form:"date"`
	Periods string `form:"periods"`
}

func (p resultsParams) query(now time.Time) (service.ResultsQuery, error) {
	mode, date, err := grading.ParseFilter(p.Filter, p.Date)
	if err != nil {
		return service.ResultsQuery{}, err
	}
	year, err := grading.ParseSchoolYear(p.Year, now)
	if err != nil {
		return service.ResultsQuery{}, err
	}
	return service.ResultsQuery{
		Year:       year,
		Filter:     mode,
		FilterDate: date,
		Periods:    util.SplitList(p.Periods),
	}, nil
}

// bindResultsQuery 绑定失败时已经写好 400 响应
func bindResultsQuery(ctx *gin.Context) (service.ResultsQuery, bool) {
	var p resultsParams
	if err := ctx.ShouldBindQuery(&p); err != nil {
		util.BadRequest(ctx, err.Error())
		return service.ResultsQuery{}, false
	}
	q, err := p.query(time.Now())
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return service.ResultsQuery{}, false
	}
	return q, true
}

// respondError 把服务层错误映射为统一响应
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrMissingSession):
		util.Unauthorized(ctx)
	case errors.Is(err, util.ErrUpstreamAuth):
		util.Error(ctx, http.StatusUnauthorized, "Smartschool session expired")
	case errors.Is(err, util.ErrUpstreamStatus),
		errors.Is(err, util.ErrUpstreamPayload),
		errors.Is(err, util.ErrUpstreamDown):
		util.BadGateway(ctx, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		util.Error(ctx, http.StatusGatewayTimeout, "Smartschool did not respond in time")
	case errors.Is(err, util.ErrUnknownSubject):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrUnsupportedExport),
		errors.Is(err, grading.ErrInvalidExportOrder),
		errors.Is(err, grading.ErrInvalidFilter),
		errors.Is(err, grading.ErrInvalidSchoolYear):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

type ResultsController struct {
	ResultsService *service.ResultsService
}

func NewResultsController(resultsService *service.ResultsService) *ResultsController {
	return &ResultsController{ResultsService: resultsService}
}

// @Summary 成绩概览
// @Description 学期（按接口返回顺序）、最新学期、各学期课程、课程图标以及被跳过记录的说明
// @Tags 成绩
// @Produce json
// @Param X-Smartschool-Session header string false "Smartschool 会话，也可以用 PHPSESSID cookie"
// @Param year query string false "学年开始年份，如 2024 表示 2024-2025；current 表示当前学年"
// @Param filter query string false "日期过滤方式" Enums(before, after)
// @Param date query string false "过滤日期 YYYY-MM-DD"
// @Success 200 {object} util.Response{data=service.Overview}
// @Failure 401 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/results/overview [get]
func (c *ResultsController) Overview(ctx *gin.Context) {
	q, ok := bindResultsQuery(ctx)
	if !ok {
		return
	}
	ov, err := c.ResultsService.Overview(ctx.Request.Context(), util.GetSessionFromContext(ctx), q)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, ov)
}

// @Summary 合并网格
// @Description 合并所选学期的成绩网格，未选择学期时使用最新学期
// @Tags 成绩
// @Produce json
// @Param year query string false "学年开始年份或 current"
// @Param filter query string false "日期过滤方式" Enums(before, after)
// @Param date query string false "过滤日期 YYYY-MM-DD"
// @Param periods query string false "学期名，逗号分隔"
// @Success 200 {object} util.Response{data=grading.GridView}
// @Router /api/results/grid [get]
func (c *ResultsController) Grid(ctx *gin.Context) {
	q, ok := bindResultsQuery(ctx)
	if !ok {
		return
	}
	grid, err := c.ResultsService.Grid(ctx.Request.Context(), util.GetSessionFromContext(ctx), q)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, grid)
}

// @Summary 各学期网格
// @Tags 成绩
// @Produce json
// @Param year query string false "学年开始年份或 current"
// @Param filter query string false "日期过滤方式" Enums(before, after)
// @Param date query string false "过滤日期 YYYY-MM-DD"
// @Success 200 {object} util.Response{data=[]grading.PeriodGrid}
// @Router /api/results/grid/periods [get]
func (c *ResultsController) PeriodGrids(ctx *gin.Context) {
	q, ok := bindResultsQuery(ctx)
	if !ok {
		return
	}
	grids, err := c.ResultsService.PeriodGrids(ctx.Request.Context(), util.GetSessionFromContext(ctx), q)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, grids)
}

type graphParams struct {
	Subject string `form:"subject"`
	Y       string `form:"y" binding:"omitempty,oneof=percentage cumulative"`
	X       string `form:"x" binding:"omitempty,oneof=date number"`
}

// @Summary 成绩曲线
// @Description 单个课程在所选学期中的成绩，y 为百分比或累计百分比，x 为日期或序号
// @Tags 成绩
// @Produce json
// @Param periods query string false "学期名，逗号分隔"
// @Param subject query string false "课程名，为空时取第一个课程"
// @Param y query string false "纵轴" Enums(percentage, cumulative)
// @Param x query string false "横轴" Enums(date, number)
// @Success 200 {object} util.Response{data=service.GraphView}
// @Failure 404 {object} util.Response
// @Router /api/results/graph [get]
func (c *ResultsController) Graph(ctx *gin.Context) {
	q, ok := bindResultsQuery(ctx)
	if !ok {
		return
	}
	var p graphParams
	if err := ctx.ShouldBindQuery(&p); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	y := grading.YAxisPercentage
	if p.Y != "" {
		y = grading.YAxis(p.Y)
	}
	x := grading.XAxisDate
	if p.X != "" {
		x = grading.XAxis(p.X)
	}

	graph, err := c.ResultsService.Graph(ctx.Request.Context(), util.GetSessionFromContext(ctx), q, p.Subject, y, x)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, graph)
}

// @Summary 课程总分
// @Description 每门课程的总分及全部课程总分，分子分母分别求和
// @Tags 成绩
// @Produce json
// @Param periods query string false "学期名，逗号分隔"
// @Success 200 {object} util.Response{data=service.TotalsView}
// @Router /api/results/totals [get]
func (c *ResultsController) Totals(ctx *gin.Context) {
	q, ok := bindResultsQuery(ctx)
	if !ok {
		return
	}
	totals, err := c.ResultsService.Totals(ctx.Request.Context(), util.GetSessionFromContext(ctx), q)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, totals)
}

// @Summary 清除缓存
// @Description 删除当前会话所有学年的缓存数据，下次请求重新从 Smartschool 拉取
// @Tags 成绩
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/results/cache [delete]
func (c *ResultsController) InvalidateCache(ctx *gin.Context) {
	n, err := c.ResultsService.InvalidateCache(ctx.Request.Context(), util.GetSessionFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": n})
}
