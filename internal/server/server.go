package server

import (
	"github.com/Corner-venturo/Corner-sub010/internal/attraction"
	"github.com/Corner-venturo/Corner-sub010/internal/config"
	"github.com/Corner-venturo/Corner-sub010/internal/gemini"
	"github.com/Corner-venturo/Corner-sub010/internal/planner"
	"github.com/Corner-venturo/Corner-sub010/internal/schedule"
	"github.com/Corner-venturo/Corner-sub010/internal/stream"
	"github.com/Corner-venturo/Corner-sub010/internal/tour"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App      *fiber.App
	Cfg      config.Config
	Schedule schedule.Config
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Stream   *stream.Hub
	AI       *gemini.Generator
}

func NewServer(cfg config.Config, sched schedule.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:      app,
		Cfg:      cfg,
		Schedule: sched,
		DB:       db,
		Redis:    redisClient,
		Stream:   stream.NewHub(redisClient),
		AI:       gemini.New(cfg, redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "geminiKeys": s.AI.Keys().Len()})
	})

	attractions := attraction.NewService(s.DB)
	tours := tour.NewService(s.DB)
	plans := planner.NewService(attractions, tours, s.AI, s.Stream, s.Schedule)

	api := s.App.Group("/api")
	// registered ahead of the attractions group so /:id does not capture it
	api.Get("/attractions/nearby", planner.NearbyHandler(plans))
	attraction.RegisterRoutes(api.Group("/attractions"), attractions)
	tour.RegisterRoutes(api.Group("/tours"), tours)
	planner.RegisterRoutes(api.Group("/itineraries"), plans)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
