package handlers

import (
	"worklog/app"
	"worklog/config"
	"worklog/models"
	"worklog/services"

	"github.com/gofiber/fiber/v2"
)

// GetRecords lists a day's log records, or searches when a term is
// given.
func GetRecords(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if term := c.Query("q"); term != "" {
			records, err := a.Logging.Search(term)
			if err != nil {
				return serverError(c, "Failed to search records", err)
			}
			return success(c, fiber.Map{"records": records})
		}

		if jobID := c.Query("job"); jobID != "" {
			limit := c.QueryInt("limit", 0)
			records, err := a.Records.ByJob(jobID, limit)
			if err != nil {
				return serverError(c, "Failed to fetch records", err)
			}
			return success(c, fiber.Map{"records": records})
		}

		date, err := parseDate(c.Query("date"))
		if err != nil {
			return badRequest(c, "date must be formatted YYYY-MM-DD")
		}

		records, err := a.Logging.ForDate(date)
		if err != nil {
			return serverError(c, "Failed to fetch records", err)
		}
		return success(c, fiber.Map{"records": records})
	}
}

// CreateRecord writes a log entry. A "name == definition" message also
// files a taxonomy definition under the record's job.
func CreateRecord(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateRecordRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(req); err != nil {
			return validationError(c, err)
		}

		record, err := a.Logging.Create(req.JobID, req.Message)
		if err != nil {
			return serverError(c, "Failed to create record", err)
		}
		return created(c, fiber.Map{"record": record})
	}
}

// RecordStats returns the aggregate numbers for a day's records.
func RecordStats(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		date, err := parseDate(c.Query("date"))
		if err != nil {
			return badRequest(c, "date must be formatted YYYY-MM-DD")
		}

		records, err := a.Logging.ForDate(date)
		if err != nil {
			return serverError(c, "Failed to fetch records", err)
		}

		return success(c, fiber.Map{"stats": a.Reports.Stats(records)})
	}
}

// ExportRecords renders a date window of records as text, with
// redaction applied and ignored jobs dropped.
func ExportRecords(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.ExportRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(req); err != nil {
			return validationError(c, err)
		}

		start, err := parseDate(req.Start)
		if err != nil {
			return badRequest(c, "start must be formatted YYYY-MM-DD")
		}
		end, err := parseDate(req.End)
		if err != nil {
			return badRequest(c, "end must be formatted YYYY-MM-DD")
		}
		// Window is [start of first day, end of last day)
		end = end.AddDate(0, 0, 1)

		records, err := a.Records.InRange(start, end)
		if err != nil {
			return serverError(c, "Failed to fetch records", err)
		}

		text, err := a.Reports.Export(records, exportOptions(req, a.Config.Export))
		if err != nil {
			return serverError(c, "Failed to export records", err)
		}

		c.Set("Content-Type", "text/plain; charset=utf-8")
		return c.SendString(text)
	}
}

// exportOptions layers request options over the configured defaults.
// Only options the request left unset fall back.
func exportOptions(req models.ExportRequest, defaults config.ExportDefaults) services.ExportOptions {
	opts := services.ExportOptions{
		GroupByJob: defaults.GroupByJob,
		ShowIndex:  defaults.ShowIndex,
		ShowTime:   defaults.ShowTime,
		ShowJobID:  defaults.ShowJobID,
	}
	if req.GroupByJob != nil {
		opts.GroupByJob = *req.GroupByJob
	}
	if req.ShowIndex != nil {
		opts.ShowIndex = *req.ShowIndex
	}
	if req.ShowTime != nil {
		opts.ShowTime = *req.ShowTime
	}
	if req.ShowJobID != nil {
		opts.ShowJobID = *req.ShowJobID
	}
	return opts
}

// DeleteRecord soft-deletes a record.
func DeleteRecord(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.Records.SoftDelete(c.Params("id"), true); err != nil {
			return serverError(c, "Failed to delete record", err)
		}
		return success(c, fiber.Map{"status": "deleted"})
	}
}
