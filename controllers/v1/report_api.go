package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"perf-track-backend/controllers"
	reporthandler "perf-track-backend/lib/report"
	"perf-track-backend/middleware"
	apimodels "perf-track-backend/models/api"
	reportapimodels "perf-track-backend/models/api/report"
)

type reportApiController struct {
	controllers.BaseAPIController
}

func InitReportApiRouters(app *fiber.App) {
	controller := reportApiController{}
	app.Route("report", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Get("", controller.list)
		router.Get(":id", controller.get)
		router.Use(middleware.SupervisorRequired())
		router.Post("", controller.create)
		router.Patch(":id", controller.update)
		router.Delete(":id", controller.delete)
	})
}

// @Summary List reports
// @Tags Reports
// @Description List all performance reports
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]reportapimodels.ReportView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/report [get]
func (c *reportApiController) list(ctx *fiber.Ctx) error {
	list, err := reporthandler.Instance.List()
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Get a report
// @Tags Reports
// @Description Get a report by id
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id		path	string	true	"report id"
// @Success 200 {object} apimodels.Response{data=reportapimodels.ReportView}
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/report/{id} [get]
func (c *reportApiController) get(ctx *fiber.Ctx) error {
	item, err := reporthandler.Instance.GetByID(ctx.Params("id"))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Create a report
// @Tags Reports
// @Description Create a report, one per user and period
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body	body	reportapimodels.ReportData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/report [post]
func (c *reportApiController) create(ctx *fiber.Ctx) error {
	var payload reportapimodels.ReportData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := reporthandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Update a report
// @Tags Reports
// @Description Apply a partial update to a report
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id		path	string	true	"report id"
// @Param	body	body	reportapimodels.ReportPatch	true	"request body"
// @Success 200 {object} apimodels.Response{data=reportapimodels.ReportView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/report/{id} [patch]
func (c *reportApiController) update(ctx *fiber.Ctx) error {
	var payload reportapimodels.ReportPatch
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	item, err := reporthandler.Instance.Update(ctx.Params("id"), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Delete a report
// @Tags Reports
// @Description Delete a report by id
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id		path	string	true	"report id"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/report/{id} [delete]
func (c *reportApiController) delete(ctx *fiber.Ctx) error {
	if err := reporthandler.Instance.Delete(ctx.Params("id")); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse("report deleted"))
}
