package handlers

import (
	"worklog/app"
	"worklog/models"

	"github.com/gofiber/fiber/v2"
)

func GetFactors(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		factors, err := a.Assessments.Factors()
		if err != nil {
			return serverError(c, "Failed to fetch factors", err)
		}
		return success(c, fiber.Map{"factors": factors})
	}
}

func CreateFactor(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateFactorRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(req); err != nil {
			return validationError(c, err)
		}

		factor := &models.AssessmentFactor{
			Description: req.Description,
			Value:       req.Value,
			Weight:      req.Weight,
		}
		if err := a.Assessments.CreateFactor(factor, true); err != nil {
			return serverError(c, "Failed to create factor", err)
		}
		return created(c, fiber.Map{"factor": factor})
	}
}

func UpdateFactor(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateFactorRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(req); err != nil {
			return validationError(c, err)
		}

		factor := &models.AssessmentFactor{
			ID:          c.Params("id"),
			Description: req.Description,
			Value:       req.Value,
			Weight:      req.Weight,
		}
		if err := a.Assessments.UpdateFactor(factor, true); err != nil {
			return serverError(c, "Failed to update factor", err)
		}
		return success(c, fiber.Map{"factor": factor})
	}
}

func DeleteFactor(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.Assessments.DeleteFactor(c.Params("id"), true); err != nil {
			return serverError(c, "Failed to delete factor", err)
		}
		return success(c, fiber.Map{"status": "deleted"})
	}
}

func GetThresholds(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		thresholds, err := a.Assessments.Thresholds()
		if err != nil {
			return serverError(c, "Failed to fetch thresholds", err)
		}
		return success(c, fiber.Map{"thresholds": thresholds})
	}
}

// ResetThresholds replaces the threshold table with the built-in
// defaults in one transaction.
func ResetThresholds(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.Assessments.ResetThresholds(); err != nil {
			return serverError(c, "Failed to reset thresholds", err)
		}
		thresholds, err := a.Assessments.Thresholds()
		if err != nil {
			return serverError(c, "Failed to fetch thresholds", err)
		}
		return success(c, fiber.Map{"thresholds": thresholds})
	}
}
