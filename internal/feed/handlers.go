package feed

import (
	"strconv"

	"github.com/jyleerahman/fav-nycday-app/internal/post"

	"github.com/gofiber/fiber/v2"
)

type response struct {
	Posts   []post.Post `json:"posts"`
	Index   int         `json:"index"`
	Current *post.Post  `json:"current,omitempty"`
	State   State       `json:"state"`
}

func RegisterRoutes(r fiber.Router, repo *post.Repository) {
	r.Get("/", func(c *fiber.Ctx) error {
		filter := Filter{
			Query:      c.Query("q"),
			WeatherTag: c.Query("weather"),
			MoodTag:    c.Query("mood"),
		}
		if filter.WeatherTag != "" && !post.WeatherTags[filter.WeatherTag] {
			return fiber.NewError(fiber.StatusBadRequest, "unknown weather tag")
		}
		if filter.MoodTag != "" && !post.MoodTags[filter.MoodTag] {
			return fiber.NewError(fiber.StatusBadRequest, "unknown mood tag")
		}

		posts, err := repo.ListAll(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		view := NewView(posts, filter)
		if step, err := strconv.Atoi(c.Query("index", "0")); err == nil && len(view.Posts) > 0 {
			view.Index = ((step % len(view.Posts)) + len(view.Posts)) % len(view.Posts)
		}
		switch c.Query("move") {
		case "next":
			view = view.Next()
		case "previous":
			view = view.Previous()
		}

		resp := response{Posts: view.Posts, Index: view.Index, State: view.State()}
		if current, ok := view.Current(); ok {
			resp.Current = &current
		}
		return c.JSON(resp)
	})
}
