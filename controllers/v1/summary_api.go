package apiv1

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"perf-track-backend/controllers"
	"perf-track-backend/lib/summary"
	"perf-track-backend/middleware"
	apimodels "perf-track-backend/models/api"
	reportapimodels "perf-track-backend/models/api/report"
)

type summaryApiController struct {
	controllers.BaseAPIController
}

func InitSummaryApiRouters(app *fiber.App) {
	controller := summaryApiController{}
	app.Route("summary", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Get("staff", controller.staff)
		router.Get("staff/:id", middleware.SupervisorRequired(), controller.staffByID)
		router.Get("supervisor", middleware.SupervisorRequired(), controller.supervisor)
		router.Get("supervisor/export", middleware.SupervisorRequired(), controller.supervisorExport)
		router.Get("admin", middleware.AdminRequired(), controller.admin)
	})
}

// @Summary Own performance summary
// @Tags Summaries
// @Description Recap of the authenticated staff member for a period
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	period	query	string	false	"period formatted YYYY-MM"
// @Success 200 {object} apimodels.Response{data=reportapimodels.StaffSummary}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/summary/staff [get]
func (c *summaryApiController) staff(ctx *fiber.Ctx) error {
	result, err := summary.Instance.StaffSummary(middleware.GetUserID(ctx), ctx.Query("period"))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Staff performance summary
// @Tags Summaries
// @Description Recap of a staff member for a period
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id		path	string	true	"user id"
// @Param	period	query	string	false	"period formatted YYYY-MM"
// @Success 200 {object} apimodels.Response{data=reportapimodels.StaffSummary}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/summary/staff/{id} [get]
func (c *summaryApiController) staffByID(ctx *fiber.Ctx) error {
	result, err := summary.Instance.StaffSummary(ctx.Params("id"), ctx.Query("period"))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Team performance summary
// @Tags Summaries
// @Description Task counts for the staff team, optionally narrowed by period and contract window
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	period			query	string	false	"period formatted YYYY-MM"
// @Param	contract_from	query	string	false	"contract window start formatted YYYY-MM-DD"
// @Param	contract_to		query	string	false	"contract window end formatted YYYY-MM-DD"
// @Success 200 {object} apimodels.Response{data=reportapimodels.SupervisorSummary}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/summary/supervisor [get]
func (c *summaryApiController) supervisor(ctx *fiber.Ctx) error {
	filter, err := parseSummaryFilter(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := summary.Instance.SupervisorSummary(filter)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Export the team summary
// @Tags Summaries
// @Description Download the team summary as an xlsx file
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	period			query	string	false	"period formatted YYYY-MM"
// @Param	contract_from	query	string	false	"contract window start formatted YYYY-MM-DD"
// @Param	contract_to		query	string	false	"contract window end formatted YYYY-MM-DD"
// @Success 200 {file} binary
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/summary/supervisor/export [get]
func (c *summaryApiController) supervisorExport(ctx *fiber.Ctx) error {
	filter, err := parseSummaryFilter(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	buf, err := summary.Instance.SupervisorSummaryToXls(filter)
	if err != nil {
		return c.SendError(ctx, err)
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="team-summary.xlsx"`)
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Organization summary
// @Tags Summaries
// @Description Account and job counts for administrators
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=reportapimodels.AdminSummary}
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/summary/admin [get]
func (c *summaryApiController) admin(ctx *fiber.Ctx) error {
	result, err := summary.Instance.AdminSummary()
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

func parseSummaryFilter(ctx *fiber.Ctx) (filter reportapimodels.SummaryFilter, err error) {
	filter.Period = ctx.Query("period")
	if value := ctx.Query("contract_from"); value != "" {
		parsed, parseErr := time.Parse("2006-01-02", value)
		if parseErr != nil {
			return filter, fmt.Errorf("contract_from must be formatted YYYY-MM-DD")
		}
		filter.ContractFrom = &parsed
	}
	if value := ctx.Query("contract_to"); value != "" {
		parsed, parseErr := time.Parse("2006-01-02", value)
		if parseErr != nil {
			return filter, fmt.Errorf("contract_to must be formatted YYYY-MM-DD")
		}
		filter.ContractTo = &parsed
	}
	return filter, nil
}
