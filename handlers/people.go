package handlers

import (
	"worklog/app"
	"worklog/models"

	"github.com/gofiber/fiber/v2"
)

// GetPeople lists people; company=ID narrows to one company.
func GetPeople(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			people []models.Person
			err    error
		)

		if companyID := c.Query("company"); companyID != "" {
			people, err = a.People.ByCompany(companyID)
		} else {
			people, err = a.People.All()
		}
		if err != nil {
			return serverError(c, "Failed to fetch people", err)
		}
		return success(c, fiber.Map{"people": people})
	}
}

func CreatePerson(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreatePersonRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(req); err != nil {
			return validationError(c, err)
		}

		person, err := a.People.CreateAndReturn(&models.Person{
			Name:      req.Name,
			CompanyID: req.CompanyID,
		})
		if err != nil {
			return serverError(c, "Failed to create person", err)
		}
		return created(c, fiber.Map{"person": person})
	}
}

func DeletePerson(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.People.HardDelete(c.Params("id")); err != nil {
			return serverError(c, "Failed to delete person", err)
		}
		return success(c, fiber.Map{"status": "deleted"})
	}
}
