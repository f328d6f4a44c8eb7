package handlers

import (
	"strconv"

	"worklog/app"
	"worklog/models"

	"github.com/gofiber/fiber/v2"
)

// GetCompanies lists visible companies.
func GetCompanies(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companies, err := a.Companies.All()
		if err != nil {
			return serverError(c, "Failed to fetch companies", err)
		}
		return success(c, fiber.Map{"companies": companies})
	}
}

// GetCompany looks a company up by its human-facing PID.
func GetCompany(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pid, err := strconv.ParseInt(c.Params("pid"), 10, 64)
		if err != nil {
			return badRequest(c, "pid must be numeric")
		}

		company, err := a.Companies.ByPID(pid)
		if err != nil {
			return serverError(c, "Failed to fetch company", err)
		}
		if company == nil {
			return notFound(c, "Company not found")
		}
		return success(c, fiber.Map{"company": company})
	}
}

// CreateCompany creates a company, optionally flagging it default.
func CreateCompany(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateCompanyRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(req); err != nil {
			return validationError(c, err)
		}

		existing, err := a.Companies.ByName(req.Name)
		if err != nil {
			return serverError(c, "Failed to check company name", err)
		}
		if existing != nil {
			return conflict(c, "A company with that name already exists")
		}

		company, err := a.Companies.CreateAndReturn(&models.Company{
			Name:         req.Name,
			Abbreviation: req.Abbreviation,
			Colour:       models.ParseColour(req.Colour),
			Hidden:       req.Hidden,
		})
		if err != nil {
			return serverError(c, "Failed to create company", err)
		}

		if req.IsDefault {
			if err := a.Companies.SetDefault(company.ID); err != nil {
				return serverError(c, "Failed to set default company", err)
			}
			company.IsDefault = true
		}

		return created(c, fiber.Map{"company": company})
	}
}

// SetDefaultCompany flags one company default and clears the rest.
func SetDefaultCompany(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		company, err := a.Companies.ByID(id)
		if err != nil {
			return serverError(c, "Failed to fetch company", err)
		}
		if company == nil {
			return notFound(c, "Company not found")
		}

		if err := a.Companies.SetDefault(id); err != nil {
			return serverError(c, "Failed to set default company", err)
		}
		return success(c, fiber.Map{"status": "ok"})
	}
}

// CompanyInteractions lists companies touched in a date window.
func CompanyInteractions(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		date, err := parseDate(c.Query("date"))
		if err != nil {
			return badRequest(c, "date must be formatted YYYY-MM-DD")
		}

		companies, err := a.Companies.InteractionsOn(date)
		if err != nil {
			return serverError(c, "Failed to fetch interactions", err)
		}
		return success(c, fiber.Map{"companies": companies})
	}
}

// DeleteCompany soft-deletes a company.
func DeleteCompany(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.Companies.SoftDelete(c.Params("id"), true); err != nil {
			return serverError(c, "Failed to delete company", err)
		}
		return success(c, fiber.Map{"status": "deleted"})
	}
}
