package post

import (
	"github.com/jyleerahman/fav-nycday-app/internal/session"

	"github.com/gofiber/fiber/v2"
)

// RouteSource hands an authoring session's waypoints and derived route to
// post composition. *session.Manager satisfies it.
type RouteSource interface {
	Handoff(sessionID string) (session.Draft, bool)
	End(sessionID string)
}

type createRequest struct {
	SessionID   string   `json:"session_id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	WeatherTags []string `json:"weather_tags"`
	MoodTags    []string `json:"mood_tags"`
	CreatedBy   string   `json:"created_by"`
}

func RegisterRoutes(r fiber.Router, repo *Repository, routes RouteSource) {
	r.Post("/", func(c *fiber.Ctx) error {
		var req createRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if !validTags(req.WeatherTags, WeatherTags) {
			return fiber.NewError(fiber.StatusBadRequest, "unknown weather tag")
		}
		if !validTags(req.MoodTags, MoodTags) {
			return fiber.NewError(fiber.StatusBadRequest, "unknown mood tag")
		}

		draft := Draft{
			Title:       req.Title,
			Content:     req.Content,
			WeatherTags: req.WeatherTags,
			MoodTags:    req.MoodTags,
			CreatedBy:   req.CreatedBy,
		}
		if req.SessionID != "" {
			handoff, ok := routes.Handoff(req.SessionID)
			if !ok {
				return fiber.NewError(fiber.StatusNotFound, "session not found")
			}
			draft.Waypoints = handoff.Waypoints
			draft.RouteGeometry = handoff.EncodedRoute
		}

		saved, err := repo.Save(c.Context(), draft)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		if req.SessionID != "" {
			routes.End(req.SessionID)
		}
		return c.Status(fiber.StatusCreated).JSON(saved)
	})

	r.Get("/", func(c *fiber.Ctx) error {
		posts, err := repo.ListAll(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(posts)
	})
}
