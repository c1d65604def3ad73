package apiv1

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"perf-track-backend/controllers"
	biascheck "perf-track-backend/lib/bias-check"
	taskhandler "perf-track-backend/lib/task"
	"perf-track-backend/middleware"
	apimodels "perf-track-backend/models/api"
	taskapimodels "perf-track-backend/models/api/task"
)

type taskApiController struct {
	controllers.BaseAPIController
}

func InitTaskApiRouters(app *fiber.App) {
	controller := taskApiController{}
	app.Route("task", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired(), middleware.SupervisorRequired())
		router.Post("", controller.create)
		router.Get("", controller.list)
		router.Get(":id", controller.get)
		router.Patch(":id", controller.update)
		router.Delete(":id", controller.delete)
		router.Post(":id/bias-check", controller.biasCheck)
	})
	app.Route("staff/task", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Get("", controller.listOwn)
		router.Get(":id", controller.getOwn)
		router.Patch(":id", controller.updateOwn)
		router.Post(":id/evidence", controller.uploadEvidence)
		router.Get(":id/evidence", controller.downloadEvidence)
	})
}

// @Summary Create a task
// @Tags Tasks
// @Description Create a task for a staff member, it starts in the draft status
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body	body	taskapimodels.TaskData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task [post]
func (c *taskApiController) create(ctx *fiber.Ctx) error {
	var payload taskapimodels.TaskData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := taskhandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary List tasks
// @Tags Tasks
// @Description List tasks, optionally scoped to a job or a staff member
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	job_id	query	string	false	"job id"
// @Param	user_id	query	string	false	"user id"
// @Success 200 {object} apimodels.Response{data=[]taskapimodels.TaskView}
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task [get]
func (c *taskApiController) list(ctx *fiber.Ctx) error {
	filter := taskapimodels.TaskFilter{
		JobID:  ctx.Query("job_id"),
		UserID: ctx.Query("user_id"),
	}
	list, err := taskhandler.Instance.List(filter)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Get a task
// @Tags Tasks
// @Description Get a task by id
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id		path	string	true	"task id"
// @Success 200 {object} apimodels.Response{data=taskapimodels.TaskView}
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task/{id} [get]
func (c *taskApiController) get(ctx *fiber.Ctx) error {
	item, err := taskhandler.Instance.GetByID(ctx.Params("id"))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Update a task
// @Tags Tasks
// @Description Apply a partial update, status changes must follow the task flow
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id		path	string	true	"task id"
// @Param	body	body	taskapimodels.TaskPatch	true	"request body"
// @Success 200 {object} apimodels.Response{data=taskapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task/{id} [patch]
func (c *taskApiController) update(ctx *fiber.Ctx) error {
	var payload taskapimodels.TaskPatch
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	item, err := taskhandler.Instance.Update(ctx.Params("id"), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Delete a task
// @Tags Tasks
// @Description Delete a task together with its stored evidence
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id		path	string	true	"task id"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task/{id} [delete]
func (c *taskApiController) delete(ctx *fiber.Ctx) error {
	if err := taskhandler.Instance.Delete(ctx.Params("id")); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse("task deleted"))
}

// @Summary Run a bias check
// @Tags Tasks
// @Description Classify the supervisor comment for biased language and store the result
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id		path	string	true	"task id"
// @Success 200 {object} apimodels.Response{data=taskapimodels.TaskView}
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task/{id}/bias-check [post]
func (c *taskApiController) biasCheck(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	item, err := taskhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	result, err := biascheck.Instance.CheckReview(ctx.UserContext(), item.SupervisorComment)
	if err != nil {
		return c.SendError(ctx, err)
	}
	if err = taskhandler.Instance.SetBiasCheck(id, result); err != nil {
		return c.SendError(ctx, err)
	}
	item, err = taskhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary List own tasks
// @Tags Staff tasks
// @Description List tasks assigned to the authenticated staff member
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]taskapimodels.TaskView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/task [get]
func (c *taskApiController) listOwn(ctx *fiber.Ctx) error {
	list, err := taskhandler.Instance.ListByUser(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Get an own task
// @Tags Staff tasks
// @Description Get a task assigned to the authenticated staff member
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id		path	string	true	"task id"
// @Success 200 {object} apimodels.Response{data=taskapimodels.TaskView}
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/task/{id} [get]
func (c *taskApiController) getOwn(ctx *fiber.Ctx) error {
	item, err := taskhandler.Instance.GetByUserAndID(middleware.GetUserID(ctx), ctx.Params("id"))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Update an own task
// @Tags Staff tasks
// @Description Apply a partial update to an own task, status changes must follow the task flow
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id		path	string	true	"task id"
// @Param	body	body	taskapimodels.TaskPatch	true	"request body"
// @Success 200 {object} apimodels.Response{data=taskapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/task/{id} [patch]
func (c *taskApiController) updateOwn(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	id := ctx.Params("id")
	if _, err := taskhandler.Instance.GetByUserAndID(userID, id); err != nil {
		return c.SendError(ctx, err)
	}
	var payload taskapimodels.TaskPatch
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	item, err := taskhandler.Instance.Update(id, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Upload evidence
// @Tags Staff tasks
// @Description Attach an evidence file to an own task, a previous file is replaced
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id		path	string	true	"task id"
// @Param	file	formData	file	true	"evidence file"
// @Success 200 {object} apimodels.Response{data=taskapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/task/{id}/evidence [post]
func (c *taskApiController) uploadEvidence(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	id := ctx.Params("id")
	if _, err := taskhandler.Instance.GetByUserAndID(userID, id); err != nil {
		return c.SendError(ctx, err)
	}
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("file is required"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("failed to read the uploaded file"))
	}
	defer file.Close()
	body, err := io.ReadAll(file)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("failed to read the uploaded file"))
	}
	item, err := taskhandler.Instance.AttachEvidence(ctx.UserContext(), id, fileHeader.Filename, body)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Download evidence
// @Tags Staff tasks
// @Description Stream the evidence file attached to an own task
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id		path	string	true	"task id"
// @Success 200 {file} binary
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/task/{id}/evidence [get]
func (c *taskApiController) downloadEvidence(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	id := ctx.Params("id")
	if _, err := taskhandler.Instance.GetByUserAndID(userID, id); err != nil {
		return c.SendError(ctx, err)
	}
	body, err := taskhandler.Instance.GetEvidence(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	ctx.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return ctx.Status(fiber.StatusOK).Send(body)
}
