package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/arca/internal/arca"
	"github.com/i474232898/arca/internal/support"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *arca.Service) {
	v1 := app.Group("/api/v1")

	v1.Post("/support-points", func(c *fiber.Ctx) error {
		var req support.Registration
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid support point payload")
		}
		p, err := service.RegisterSupportPoint(req)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	})

	users := v1.Group("/users")

	users.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(service.Users())
	})

	users.Get("/:id", func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		u, err := service.User(id)
		if err != nil {
			return err
		}
		return c.JSON(u)
	})

	users.Patch("/:id", func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		var req arca.ProfileUpdate
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid profile payload")
		}
		if req.Email == nil && req.Phone == nil {
			return fiber.NewError(fiber.StatusBadRequest, "nothing to update: provide email or phone")
		}
		u, err := service.UpdateProfile(id, req)
		if err != nil {
			return err
		}
		return c.JSON(u)
	})

	users.Get("/:id/alerts", func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		var q alertsQuery
		q.Mode = c.Query("mode", "live")
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "mode must be live or simulated")
		}

		var report arca.AlertReport
		if q.Mode == "simulated" {
			report, err = service.SimulatedAlert(c.UserContext(), id)
		} else {
			report, err = service.LiveAlerts(c.UserContext(), id)
		}
		if err != nil {
			return err
		}
		return c.JSON(report)
	})

	users.Get("/:id/alerts/history", func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		history, err := service.History(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"user_id": id,
			"alerts":  history,
		})
	})

	users.Get("/:id/support-points/nearby", func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		report, err := service.NearbySupportPoints(id)
		if err != nil {
			return err
		}
		return c.JSON(report)
	})

	users.Get("/:id/support-points", func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		points, err := service.AllSupportPoints(id)
		if err != nil {
			return err
		}
		return c.JSON(points)
	})

	users.Get("/:id/support-points/:pointID", func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		pointID, err := pathID(c, "pointID")
		if err != nil {
			return err
		}
		p, err := service.SupportPoint(id, pointID)
		if err != nil {
			return err
		}
		return c.JSON(p)
	})

	users.Post("/:id/support-points/:pointID/approve", func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		pointID, err := pathID(c, "pointID")
		if err != nil {
			return err
		}
		p, err := service.ApproveSupportPoint(id, pointID)
		if err != nil {
			return err
		}
		return c.JSON(p)
	})

	users.Get("/:id/hydration", func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		var q hydrationQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		report, err := service.Hydration(c.UserContext(), id, q.WeightKg)
		if err != nil {
			return err
		}
		return c.JSON(report)
	})
}

type alertsQuery struct {
	Mode string `validate:"oneof=live simulated"`
}

// hydrationQuery holds query parameters for the hydration endpoint.
type hydrationQuery struct {
	WeightKg float64 `validate:"gt=0,lte=500"`
}

func (h *hydrationQuery) bind(c *fiber.Ctx) error {
	raw := c.Query("weight")
	if raw == "" {
		return errors.New("weight query parameter is required")
	}
	w, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return errors.New("weight must be a number of kilograms")
	}
	h.WeightKg = w
	if err := validate.Struct(h); err != nil {
		return errors.New("weight must be greater than 0 and at most 500 kg")
	}
	return nil
}

func pathID(c *fiber.Ctx, name string) (int, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" must be a positive integer")
	}
	return id, nil
}
