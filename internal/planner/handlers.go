package planner

import (
	"errors"
	"strconv"

	"github.com/Corner-venturo/Corner-sub010/internal/db"
	"github.com/Corner-venturo/Corner-sub010/internal/itinerary"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

const defaultRadiusKm = 5

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/generate", func(c *fiber.Ctx) error {
		var req GenerateRequest
		if err := parseAndValidate(c, &req); err != nil {
			return err
		}
		resp, err := svc.Generate(c.Context(), req)
		if err != nil {
			return serviceError(err)
		}
		return c.JSON(resp)
	})

	r.Post("/ai", func(c *fiber.Ctx) error {
		var req AIRequest
		if err := parseAndValidate(c, &req); err != nil {
			return err
		}
		res, err := svc.GenerateWithAI(c.Context(), req)
		if err != nil {
			return serviceError(err)
		}
		if !res.Success {
			return c.Status(fiber.StatusBadGateway).JSON(res)
		}
		return c.JSON(res)
	})

	r.Post("/slots", func(c *fiber.Ctx) error {
		var req itinerary.Request
		if err := parseAndValidate(c, &req); err != nil {
			return err
		}
		slots, err := svc.Slots(req)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(slots)
	})
}

// NearbyHandler serves GET ?lat=&lng=&radius_km= with exact distances.
func NearbyHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
		lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
		if errLat != nil || errLng != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			return fiber.NewError(fiber.StatusBadRequest, "valid lat and lng required")
		}
		radius := c.QueryFloat("radius_km", defaultRadiusKm)
		if radius <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "radius_km must be positive")
		}

		list, err := svc.Nearby(c.Context(), lat, lng, radius)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(list)
	}
}

func parseAndValidate(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

func serviceError(err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "tour not found")
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
