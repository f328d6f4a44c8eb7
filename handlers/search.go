package handlers

import (
	"worklog/app"
	"worklog/models"

	"github.com/gofiber/fiber/v2"
)

// GetSavedSearches lists saved search terms, newest first.
func GetSavedSearches(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		searches, err := a.Searches.All()
		if err != nil {
			return serverError(c, "Failed to fetch saved searches", err)
		}
		return success(c, fiber.Map{"searches": searches})
	}
}

func SaveSearch(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.SaveSearchRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(req); err != nil {
			return validationError(c, err)
		}

		if err := a.Searches.Create(req.Term, true); err != nil {
			return serverError(c, "Failed to save search", err)
		}
		return created(c, fiber.Map{"status": "saved"})
	}
}

func DeleteSavedSearch(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		term := c.Query("term")
		if term == "" {
			return badRequest(c, "term is required")
		}
		if err := a.Searches.Delete(term, true); err != nil {
			return serverError(c, "Failed to delete saved search", err)
		}
		return success(c, fiber.Map{"status": "deleted"})
	}
}
