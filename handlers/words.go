package handlers

import (
	"worklog/app"
	"worklog/models"

	"github.com/gofiber/fiber/v2"
)

// GetBannedWords lists redaction words; project=ID narrows to one
// project.
func GetBannedWords(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			words []models.BannedWord
			err   error
		)

		if projectID := c.Query("project"); projectID != "" {
			words, err = a.Words.ByProject(projectID)
		} else {
			words, err = a.Words.All()
		}
		if err != nil {
			return serverError(c, "Failed to fetch banned words", err)
		}
		return success(c, fiber.Map{"words": words})
	}
}

func CreateBannedWord(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateBannedWordRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(req); err != nil {
			return validationError(c, err)
		}

		word := &models.BannedWord{
			ProjectID: req.ProjectID,
			Word:      req.Word,
		}
		if err := a.Words.Create(word, true); err != nil {
			return serverError(c, "Failed to create banned word", err)
		}
		return created(c, fiber.Map{"word": word})
	}
}

func DeleteBannedWord(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.Words.HardDelete(c.Params("id")); err != nil {
			return serverError(c, "Failed to delete banned word", err)
		}
		return success(c, fiber.Map{"status": "deleted"})
	}
}
