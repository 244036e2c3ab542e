package geocode

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, client *Client) {
	r.Get("/geocode", func(c *fiber.Ctx) error {
		query := c.Query("q")
		if query == "" {
			return fiber.NewError(fiber.StatusBadRequest, "q required")
		}
		places, err := client.Forward(c.Context(), query)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(places)
	})
}
