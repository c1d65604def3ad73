package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"perf-track-backend/controllers"
	jobhandler "perf-track-backend/lib/job"
	"perf-track-backend/middleware"
	apimodels "perf-track-backend/models/api"
	jobapimodels "perf-track-backend/models/api/job"
)

type jobApiController struct {
	controllers.BaseAPIController
}

func InitJobApiRouters(app *fiber.App) {
	controller := jobApiController{}
	app.Route("job", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Get("", controller.list)
		router.Get(":id", controller.get)
		router.Use(middleware.SupervisorRequired())
		router.Post("", controller.create)
		router.Patch(":id", controller.update)
		router.Delete(":id", controller.delete)
	})
}

// @Summary List jobs
// @Tags Jobs
// @Description List all jobs with their assignees
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]jobapimodels.JobView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job [get]
func (c *jobApiController) list(ctx *fiber.Ctx) error {
	list, err := jobhandler.Instance.List()
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Get a job
// @Tags Jobs
// @Description Get a job by id
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id		path	string	true	"job id"
// @Success 200 {object} apimodels.Response{data=jobapimodels.JobView}
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job/{id} [get]
func (c *jobApiController) get(ctx *fiber.Ctx) error {
	item, err := jobhandler.Instance.GetByID(ctx.Params("id"))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Create a job
// @Tags Jobs
// @Description Create a job, it starts unassigned in the DRAFT status
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body	body	jobapimodels.JobData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job [post]
func (c *jobApiController) create(ctx *fiber.Ctx) error {
	var payload jobapimodels.JobData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := jobhandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Update a job
// @Tags Jobs
// @Description Apply a partial update, assignment changes update the job and the user together
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id		path	string	true	"job id"
// @Param	body	body	jobapimodels.JobPatch	true	"request body"
// @Success 200 {object} apimodels.Response{data=jobapimodels.JobView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job/{id} [patch]
func (c *jobApiController) update(ctx *fiber.Ctx) error {
	var payload jobapimodels.JobPatch
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	item, err := jobhandler.Instance.Update(ctx.Params("id"), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Delete a job
// @Tags Jobs
// @Description Delete a job and release its assignee
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id		path	string	true	"job id"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job/{id} [delete]
func (c *jobApiController) delete(ctx *fiber.Ctx) error {
	if err := jobhandler.Instance.Delete(ctx.Params("id")); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse("job deleted"))
}
