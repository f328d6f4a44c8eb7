package handlers

import (
	"errors"
	"time"

	"worklog/app"
	"worklog/models"
	"worklog/services"

	"github.com/gofiber/fiber/v2"
)

// GetPlan returns the newest plan for a day (date=YYYY-MM-DD,
// defaulting to today).
func GetPlan(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		date, err := parseDate(c.Query("date"))
		if err != nil {
			return badRequest(c, "Invalid date format, expected YYYY-MM-DD")
		}

		plan, err := a.PlanSvc.ForDate(date)
		if errors.Is(err, services.ErrPlanNotFound) {
			return notFound(c, "No plan for that date")
		}
		if err != nil {
			return serverError(c, "Failed to fetch plan", err)
		}
		return success(c, fiber.Map{"plan": plan})
	}
}

// CreatePlan records a plan snapshot for today. With rewrite=1 any
// earlier snapshots for today are removed first.
func CreatePlan(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreatePlanRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(req); err != nil {
			return validationError(c, err)
		}

		plan := &models.Plan{
			JobIDs:     req.JobIDs,
			TaskIDs:    req.TaskIDs,
			NoteIDs:    req.NoteIDs,
			ProjectIDs: req.ProjectIDs,
			CompanyIDs: req.CompanyIDs,
		}

		var err error
		if c.Query("rewrite") == "1" {
			plan, err = a.PlanSvc.Rewrite(time.Now(), plan)
		} else {
			plan, err = a.PlanSvc.Create(plan)
		}
		if err != nil {
			return serverError(c, "Failed to create plan", err)
		}
		return created(c, fiber.Map{"plan": plan})
	}
}
