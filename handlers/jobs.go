package handlers

import (
	"strconv"

	"worklog/app"
	"worklog/models"

	"github.com/gofiber/fiber/v2"
)

// GetJobs lists visible jobs, scoped to a project when requested.
func GetJobs(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			jobs []models.Job
			err  error
		)

		switch {
		case c.Query("project") != "":
			jobs, err = a.Jobs.ByProject(c.Query("project"))
		case c.Query("recent") != "":
			n, convErr := strconv.Atoi(c.Query("recent"))
			if convErr != nil || n < 1 {
				return badRequest(c, "recent must be a positive integer")
			}
			jobs, err = a.Jobs.Recent(n)
		default:
			jobs, err = a.Jobs.All()
		}
		if err != nil {
			return serverError(c, "Failed to fetch jobs", err)
		}
		return success(c, fiber.Map{"jobs": jobs})
	}
}

// GetJob looks a job up by its human-facing JID.
func GetJob(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		jid, err := strconv.ParseInt(c.Params("jid"), 10, 64)
		if err != nil {
			return badRequest(c, "jid must be numeric")
		}

		job, err := a.Jobs.ByJID(jid)
		if err != nil {
			return serverError(c, "Failed to fetch job", err)
		}
		if job == nil {
			return notFound(c, "Job not found")
		}
		return success(c, fiber.Map{"job": job})
	}
}

// CreateJob creates a job, generating its JID when unset.
func CreateJob(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateJobRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(req); err != nil {
			return validationError(c, err)
		}

		job, err := a.Jobs.CreateAndReturn(&models.Job{
			Title:     req.Title,
			Overview:  req.Overview,
			URI:       req.URI,
			Shredable: req.Shredable,
			Colour:    models.ParseColour(req.Colour),
			ProjectID: req.ProjectID,
		})
		if err != nil {
			return serverError(c, "Failed to create job", err)
		}
		return created(c, fiber.Map{"job": job})
	}
}

// JobInteractions lists jobs touched on a day, directly or through
// their log records.
func JobInteractions(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		date, err := parseDate(c.Query("date"))
		if err != nil {
			return badRequest(c, "date must be formatted YYYY-MM-DD")
		}

		jobs, err := a.Jobs.InteractionsOn(date)
		if err != nil {
			return serverError(c, "Failed to fetch interactions", err)
		}
		return success(c, fiber.Map{"jobs": jobs})
	}
}

// DeleteJob soft-deletes a job.
func DeleteJob(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.Jobs.SoftDelete(c.Params("id"), true); err != nil {
			return serverError(c, "Failed to delete job", err)
		}
		return success(c, fiber.Map{"status": "deleted"})
	}
}
