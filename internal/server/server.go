package server

import (
	"encoding/json"
	"time"

	"github.com/jyleerahman/fav-nycday-app/internal/config"
	"github.com/jyleerahman/fav-nycday-app/internal/directions"
	"github.com/jyleerahman/fav-nycday-app/internal/feed"
	"github.com/jyleerahman/fav-nycday-app/internal/geocode"
	"github.com/jyleerahman/fav-nycday-app/internal/post"
	"github.com/jyleerahman/fav-nycday-app/internal/session"
	"github.com/jyleerahman/fav-nycday-app/internal/staticmap"
	"github.com/jyleerahman/fav-nycday-app/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App      *fiber.App
	Cfg      config.Config
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Sessions *session.Manager
	Stream   *stream.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	hub := stream.NewHub(redisClient)
	deriver := directions.NewClient(cfg.DirectionsBaseURL, cfg.MapboxToken, redisClient)
	sessions := session.NewManager(deriver, hub, time.Duration(cfg.SessionTTLMin)*time.Minute)

	s := &Server{
		App:      app,
		Cfg:      cfg,
		DB:       db,
		Redis:    redisClient,
		Sessions: sessions,
		Stream:   hub,
	}

	registerRoutes(s, deriver)
	return s
}

func registerRoutes(s *Server, deriver *directions.Client) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	repo := post.NewRepository(s.DB)

	api := s.App.Group("/api")
	directions.RegisterRoutes(api, deriver)
	geocode.RegisterRoutes(api, geocode.NewClient(s.Cfg.GeocodeBaseURL, s.Cfg.MapboxToken))

	session.RegisterRoutes(s.App.Group("/sessions"), s.Sessions)
	post.RegisterRoutes(s.App.Group("/posts"), repo, s.Sessions)
	feed.RegisterRoutes(s.App.Group("/feed"), repo)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream, func(sessionID string) []byte {
		payload, err := json.Marshal(s.Sessions.SnapshotOf(sessionID))
		if err != nil {
			return nil
		}
		return payload
	})

	api.Get("/map", func(c *fiber.Ctx) error {
		url := staticmap.URL(c.Query("route"), s.Cfg.StaticMapStyle, s.Cfg.MapboxToken)
		if url == "" {
			return fiber.NewError(fiber.StatusNotFound, "no route to render")
		}
		return c.JSON(fiber.Map{"url": url})
	})
}
