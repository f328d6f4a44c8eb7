package handlers

import (
	"errors"

	"worklog/app"
	"worklog/models"
	"worklog/services"

	"github.com/gofiber/fiber/v2"
)

// GetNotes lists visible notes; starred=1 narrows to starred, job=ID
// narrows to one job.
func GetNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			notes []models.Note
			err   error
		)

		switch {
		case c.Query("starred") == "1":
			notes, err = a.Notes.Starred()
		case c.Query("job") != "":
			notes, err = a.Notes.ByJob(c.Query("job"))
		default:
			notes, err = a.Notes.All()
		}
		if err != nil {
			return serverError(c, "Failed to fetch notes", err)
		}
		return success(c, fiber.Map{"notes": notes})
	}
}

// CreateNote creates a note; the accessor appends its first version
// snapshot.
func CreateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateNoteRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(req); err != nil {
			return validationError(c, err)
		}

		note, err := a.NoteSvc.Create(req.Title, req.Body, req.Starred, req.JobID, models.VersionSourceManual)
		if err != nil {
			return serverError(c, "Failed to create note", err)
		}
		return created(c, fiber.Map{"note": note})
	}
}

// UpdateNote rewrites a note's content, appending one version snapshot.
func UpdateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.UpdateNoteRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(req); err != nil {
			return validationError(c, err)
		}

		source := models.VersionSource(req.Source)
		if source == "" {
			source = models.VersionSourceManual
		}

		note, err := a.NoteSvc.Update(c.Params("id"), req.Title, req.Body, req.Starred, source)
		if errors.Is(err, services.ErrNoteNotFound) {
			return notFound(c, "Note not found")
		}
		if err != nil {
			return serverError(c, "Failed to update note", err)
		}
		return success(c, fiber.Map{"note": note})
	}
}

// GetNoteVersions lists a note's snapshots in creation order.
func GetNoteVersions(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		versions, err := a.NoteSvc.Versions(c.Params("id"))
		if errors.Is(err, services.ErrNoteNotFound) {
			return notFound(c, "Note not found")
		}
		if err != nil {
			return serverError(c, "Failed to fetch note versions", err)
		}
		return success(c, fiber.Map{"versions": versions})
	}
}

// DeleteNote soft-deletes a note; its versions stay for history.
func DeleteNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := a.NoteSvc.Delete(c.Params("id"))
		if errors.Is(err, services.ErrNoteNotFound) {
			return notFound(c, "Note not found")
		}
		if err != nil {
			return serverError(c, "Failed to delete note", err)
		}
		return success(c, fiber.Map{"status": "deleted"})
	}
}
