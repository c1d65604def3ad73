package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"perf-track-backend/lib/utils/apperr"
	apimodels "perf-track-backend/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("failed to parse request body")
		return errors.New("failed to read request data")
	}
	return nil
}

// SendError maps domain error kinds to HTTP statuses. Unclassified errors
// are logged and hidden behind a 500.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, err error) error {
	switch {
	case apperr.IsValidation(err):
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	case apperr.IsNotFound(err):
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
	case apperr.IsConflict(err):
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(err.Error()))
	default:
		log.WithError(err).Error("request failed")
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError("internal error"))
	}
}
