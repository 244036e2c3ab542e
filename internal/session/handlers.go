package session

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, mgr *Manager) {
	r.Post("/", func(c *fiber.Ctx) error {
		id := mgr.Create()
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		return c.JSON(mgr.SnapshotOf(c.Params("id")))
	})

	r.Post("/:id/waypoints", func(c *fiber.Ctx) error {
		var req Candidate
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name required")
		}
		_, snap := mgr.Add(c.Context(), c.Params("id"), req)
		return c.Status(fiber.StatusCreated).JSON(snap)
	})

	r.Delete("/:id/waypoints/:wid", func(c *fiber.Ctx) error {
		snap := mgr.Remove(c.Context(), c.Params("id"), c.Params("wid"))
		return c.JSON(snap)
	})

	r.Delete("/:id/waypoints", func(c *fiber.Ctx) error {
		snap := mgr.Clear(c.Params("id"))
		return c.JSON(snap)
	})

	r.Put("/:id/profile", func(c *fiber.Ctx) error {
		var req struct {
			Profile string `json:"profile"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		snap, ok := mgr.SetProfile(c.Context(), c.Params("id"), req.Profile)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "unknown profile")
		}
		return c.JSON(snap)
	})
}
