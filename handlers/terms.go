package handlers

import (
	"worklog/app"
	"worklog/models"

	"github.com/gofiber/fiber/v2"
)

// GetTerms lists live taxonomy terms; q= narrows by name fragment.
func GetTerms(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			terms []models.TaxonomyTerm
			err   error
		)

		if q := c.Query("q"); q != "" {
			terms, err = a.Terms.Matching(q)
		} else {
			terms, err = a.Terms.All()
		}
		if err != nil {
			return serverError(c, "Failed to fetch terms", err)
		}
		return success(c, fiber.Map{"terms": terms})
	}
}

// CreateTerm creates a term, reusing an existing one with the same
// name rather than duplicating it.
func CreateTerm(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateTermRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(req); err != nil {
			return validationError(c, err)
		}

		existing, err := a.Terms.ByName(req.Name)
		if err != nil {
			return serverError(c, "Failed to check term", err)
		}
		if existing != nil {
			return success(c, fiber.Map{"term": existing})
		}

		term, err := a.Terms.CreateAndReturn(&models.TaxonomyTerm{Name: req.Name})
		if err != nil {
			return serverError(c, "Failed to create term", err)
		}
		return created(c, fiber.Map{"term": term})
	}
}

// GetTermDefinitions lists a term's definitions.
func GetTermDefinitions(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		term, err := a.Terms.ByID(c.Params("id"))
		if err != nil {
			return serverError(c, "Failed to fetch term", err)
		}
		if term == nil {
			return notFound(c, "Term not found")
		}

		definitions, err := a.Definitions.ByTerm(term.ID)
		if err != nil {
			return serverError(c, "Failed to fetch definitions", err)
		}
		return success(c, fiber.Map{"term": term, "definitions": definitions})
	}
}

// CreateDefinition files a definition against a term and a job.
func CreateDefinition(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateDefinitionRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(req); err != nil {
			return validationError(c, err)
		}

		term, err := a.Terms.ByID(req.TermID)
		if err != nil {
			return serverError(c, "Failed to fetch term", err)
		}
		if term == nil {
			return notFound(c, "Term not found")
		}

		definition, err := a.Definitions.CreateAndReturn(&models.TaxonomyTermDefinition{
			TermID:     req.TermID,
			JobID:      req.JobID,
			Definition: req.Definition,
		})
		if err != nil {
			return serverError(c, "Failed to create definition", err)
		}
		return created(c, fiber.Map{"definition": definition})
	}
}

// DeleteTerm soft-deletes a term; definitions stay attached for
// history.
func DeleteTerm(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		term, err := a.Terms.ByID(c.Params("id"))
		if err != nil {
			return serverError(c, "Failed to fetch term", err)
		}
		if term == nil {
			return notFound(c, "Term not found")
		}

		if err := a.Terms.SoftDelete(term.ID, true); err != nil {
			return serverError(c, "Failed to delete term", err)
		}
		return success(c, fiber.Map{"status": "deleted"})
	}
}
