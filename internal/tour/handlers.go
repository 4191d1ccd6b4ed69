package tour

import (
	"errors"

	"github.com/Corner-venturo/Corner-sub010/internal/db"
	"github.com/Corner-venturo/Corner-sub010/internal/itinerary"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/", func(c *fiber.Ctx) error {
		var req Tour
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Code == "" || req.Name == "" || req.CityID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "code, name and city_id required")
		}
		if req.NumDays < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "num_days must be at least 1")
		}
		t, err := svc.CreateTour(c.Context(), req)
		if err != nil {
			return lookupError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(t)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		t, err := svc.GetTour(c.Context(), c.Params("id"))
		if err != nil {
			return lookupError(err)
		}
		return c.JSON(t)
	})

	r.Put("/:id", func(c *fiber.Ctx) error {
		var req Tour
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		t, err := svc.UpdateTour(c.Context(), c.Params("id"), req)
		if err != nil {
			return lookupError(err)
		}
		return c.JSON(t)
	})

	r.Delete("/:id", func(c *fiber.Ctx) error {
		if err := svc.DeleteTour(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Get("/:id/itinerary", func(c *fiber.Ctx) error {
		t, err := svc.GetTour(c.Context(), c.Params("id"))
		if err != nil {
			return lookupError(err)
		}
		return c.JSON(t.DailyItinerary)
	})

	// Editors save hand-tuned plans here.
	r.Put("/:id/itinerary", func(c *fiber.Ctx) error {
		var days []itinerary.Day
		if err := c.BodyParser(&days); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := svc.SaveItinerary(c.Context(), c.Params("id"), days); err != nil {
			return lookupError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func lookupError(err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "tour not found")
	}
	if errors.Is(err, ErrInvalidDate) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
