package directions

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type proxyRequest struct {
	Profile string       `json:"profile"`
	Coords  [][2]float64 `json:"coords"`
}

// RegisterRoutes mounts the directions proxy. The proxy holds the provider
// token server-side; clients only ever see route JSON or an error body.
func RegisterRoutes(r fiber.Router, client *Client) {
	r.Post("/directions", func(c *fiber.Ctx) error {
		var req proxyRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		if len(req.Coords) < 2 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "at least 2 coords required"})
		}
		if !Profiles[req.Profile] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown profile"})
		}

		body, err := client.fetch(c.Context(), req.Profile, FormatCoords(req.Coords))
		if err != nil {
			var re *RouteError
			if errors.As(err, &re) {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": re.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "directions lookup failed"})
		}

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(body)
	})
}
