package attraction

import (
	"errors"

	"github.com/Corner-venturo/Corner-sub010/internal/db"

	"github.com/gofiber/fiber/v2"
)

type patchRequest struct {
	Attraction
	IsActive *bool `json:"is_active"`
}

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/", func(c *fiber.Ctx) error {
		var req Attraction
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Name == "" || req.CityID == "" || req.CountryID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name, city_id and country_id required")
		}
		if (req.Latitude == nil) != (req.Longitude == nil) {
			return fiber.NewError(fiber.StatusBadRequest, "latitude and longitude must be set together")
		}
		a, err := svc.CreateAttraction(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(a)
	})

	r.Get("/", func(c *fiber.Ctx) error {
		cityID := c.Query("city_id")
		if cityID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "city_id required")
		}
		list, err := svc.ListByCity(c.Context(), cityID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if list == nil {
			list = []Attraction{}
		}
		return c.JSON(list)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		a, err := svc.GetAttraction(c.Context(), c.Params("id"))
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "attraction not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(a)
	})

	r.Put("/:id", func(c *fiber.Ctx) error {
		var req patchRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		patch := req.Attraction
		if req.IsActive != nil {
			patch.IsActive = *req.IsActive
		}
		a, err := svc.UpdateAttraction(c.Context(), c.Params("id"), patch, req.IsActive != nil)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "attraction not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(a)
	})

	r.Delete("/:id", func(c *fiber.Ctx) error {
		if err := svc.DeleteAttraction(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
