package handlers

import (
	"errors"
	"time"

	"worklog/app"
	"worklog/models"
	"worklog/services"

	"github.com/gofiber/fiber/v2"
)

// GetTasks lists open tasks in one of several canned views.
func GetTasks(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			tasks []models.LogTask
			err   error
		)

		switch c.Query("view") {
		case "upcoming":
			tasks, err = a.Tasks.Upcoming(time.Now())
		case "overdue":
			tasks, err = a.Tasks.Overdue(time.Now())
		case "undated":
			tasks, err = a.Tasks.NoDueDate()
		case "due":
			var date time.Time
			date, err = parseDate(c.Query("date"))
			if err != nil {
				return badRequest(c, "date must be formatted YYYY-MM-DD")
			}
			tasks, err = a.Tasks.DueOn(date)
		default:
			tasks, err = a.Tasks.All()
		}
		if err != nil {
			return serverError(c, "Failed to fetch tasks", err)
		}
		return success(c, fiber.Map{"tasks": tasks})
	}
}

// CreateTask opens a task on a job.
func CreateTask(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateTaskRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(req); err != nil {
			return validationError(c, err)
		}

		var due *time.Time
		if req.Due != "" {
			d, err := time.Parse("2006-01-02", req.Due)
			if err != nil {
				return badRequest(c, "due must be formatted YYYY-MM-DD")
			}
			due = &d
		}

		task, err := a.TaskSvc.Create(req.JobID, req.Content, due, req.URI)
		if err != nil {
			return serverError(c, "Failed to create task", err)
		}
		return created(c, fiber.Map{"task": task})
	}
}

// CompleteTask moves a task to its completed terminal state.
func CompleteTask(a *app.App) fiber.Handler {
	return transitionHandler(a, func(id string) error { return a.TaskSvc.Complete(id) })
}

// CancelTask moves a task to its cancelled terminal state.
func CancelTask(a *app.App) fiber.Handler {
	return transitionHandler(a, func(id string) error { return a.TaskSvc.Cancel(id) })
}

func transitionHandler(a *app.App, apply func(id string) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := apply(c.Params("id"))
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			return notFound(c, "Task not found")
		case errors.Is(err, services.ErrTaskFinished):
			return conflict(c, "Task already completed or cancelled")
		case err != nil:
			return serverError(c, "Failed to update task", err)
		}
		return success(c, fiber.Map{"status": "ok"})
	}
}
