package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"perf-track-backend/controllers"
	usershandler "perf-track-backend/lib/users"
	"perf-track-backend/middleware"
	"perf-track-backend/models"
	apimodels "perf-track-backend/models/api"
	userapimodels "perf-track-backend/models/api/user"
)

type userApiController struct {
	controllers.BaseAPIController
}

func InitUserApiRouters(app *fiber.App) {
	controller := userApiController{}
	app.Route("user", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Get("", middleware.AdminRequired(), controller.list)
		router.Get(":id", controller.get)
		router.Patch(":id", controller.update)
		router.Put(":id/role", middleware.AdminRequired(), controller.changeRole)
	})
}

// @Summary List accounts
// @Tags Users
// @Description List all registered accounts
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]userapimodels.UserView}
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/user [get]
func (c *userApiController) list(ctx *fiber.Ctx) error {
	list, err := usershandler.Instance.List()
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Get an account
// @Tags Users
// @Description Get an account by id
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id		path	string	true	"user id"
// @Success 200 {object} apimodels.Response{data=userapimodels.UserView}
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/user/{id} [get]
func (c *userApiController) get(ctx *fiber.Ctx) error {
	item, err := usershandler.Instance.GetByID(ctx.Params("id"))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Update a profile
// @Tags Users
// @Description Update profile fields, absent fields are left untouched
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id		path	string	true	"user id"
// @Param	body	body	userapimodels.UserPatch	true	"request body"
// @Success 200 {object} apimodels.Response{data=userapimodels.UserView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/user/{id} [patch]
func (c *userApiController) update(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if id != middleware.GetUserID(ctx) && !middleware.GetUserRole(ctx).IsAdmin() {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operation is not allowed"))
	}
	var payload userapimodels.UserPatch
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	item, err := usershandler.Instance.UpdateProfile(id, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Change an account role
// @Tags Users
// @Description Assign the staff, supervisor or admin role
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id		path	string	true	"user id"
// @Param	body	body	userapimodels.RoleChange	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/user/{id}/role [put]
func (c *userApiController) changeRole(ctx *fiber.Ctx) error {
	var payload userapimodels.RoleChange
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := usershandler.Instance.ChangeRole(ctx.Params("id"), models.UserRole(payload.Role))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse("role updated"))
}
