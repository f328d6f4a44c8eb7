package handlers

import (
	"strconv"

	"worklog/app"
	"worklog/models"

	"github.com/gofiber/fiber/v2"
)

// GetProjects lists visible projects, or a company's projects when the
// company query parameter is set.
func GetProjects(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			projects []models.Project
			err      error
		)

		if companyID := c.Query("company"); companyID != "" {
			projects, err = a.Projects.ByCompany(companyID)
		} else {
			projects, err = a.Projects.All()
		}
		if err != nil {
			return serverError(c, "Failed to fetch projects", err)
		}
		return success(c, fiber.Map{"projects": projects})
	}
}

// GetProject looks a project up by its human-facing PID.
func GetProject(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pid, err := strconv.ParseInt(c.Params("pid"), 10, 64)
		if err != nil {
			return badRequest(c, "pid must be numeric")
		}

		project, err := a.Projects.ByPID(pid)
		if err != nil {
			return serverError(c, "Failed to fetch project", err)
		}
		if project == nil {
			return notFound(c, "Project not found")
		}
		return success(c, fiber.Map{"project": project})
	}
}

// CreateProject creates a project; without a company it falls back to
// the default company.
func CreateProject(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateProjectRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(req); err != nil {
			return validationError(c, err)
		}

		project, err := a.Projects.CreateAndReturn(&models.Project{
			Name:         req.Name,
			Abbreviation: req.Abbreviation,
			Colour:       models.ParseColour(req.Colour),
			CompanyID:    req.CompanyID,
		})
		if err != nil {
			return serverError(c, "Failed to create project", err)
		}
		return created(c, fiber.Map{"project": project})
	}
}

// ProjectInteractions lists projects touched on a day, directly or
// through their log records.
func ProjectInteractions(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		date, err := parseDate(c.Query("date"))
		if err != nil {
			return badRequest(c, "date must be formatted YYYY-MM-DD")
		}

		projects, err := a.Projects.InteractionsOn(date)
		if err != nil {
			return serverError(c, "Failed to fetch interactions", err)
		}
		return success(c, fiber.Map{"projects": projects})
	}
}

// SetIgnoredJobs rewrites the project's ignored-job list.
func SetIgnoredJobs(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			JIDs []int64 `json:"jids"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Projects.SetIgnoredJobs(c.Params("id"), req.JIDs, true); err != nil {
			return serverError(c, "Failed to update ignored jobs", err)
		}
		return success(c, fiber.Map{"status": "ok"})
	}
}

// DeleteProject soft-deletes a project.
func DeleteProject(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.Projects.SoftDelete(c.Params("id"), true); err != nil {
			return serverError(c, "Failed to delete project", err)
		}
		return success(c, fiber.Map{"status": "deleted"})
	}
}
