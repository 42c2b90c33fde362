package server

import (
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/f3rva/f3rva-workout-service/internal/config"
	"github.com/f3rva/f3rva-workout-service/internal/db"
	"github.com/f3rva/f3rva-workout-service/internal/observability"
	"github.com/f3rva/f3rva-workout-service/internal/workout"
)

const Version = "0.1.0"

type Server struct {
	App *fiber.App
	Cfg config.Config
	DB  *pgxpool.Pool
}

func NewServer(cfg config.Config, pool *pgxpool.Pool) *Server {
	app := fiber.New(fiber.Config{
		AppName:     "F3RVA Workout Service",
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(loggerConfig(cfg)))
	app.Use(cors.New(cors.Config{AllowMethods: "GET,POST"}))
	app.Use(metricsMiddleware())

	s := &Server{
		App: app,
		Cfg: cfg,
		DB:  pool,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "F3RVA Workout Service API",
			"version": Version,
		})
	})
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// A nil pool must stay a nil Querier so the service reports the store
	// as unavailable instead of dereferencing a typed nil.
	var q db.Querier
	if s.DB != nil {
		q = s.DB
	}
	workout.RegisterRoutes(s.App.Group("/api/v1"), workout.NewService(q))
}

func loggerConfig(cfg config.Config) logger.Config {
	if cfg.Debug || strings.EqualFold(cfg.LogLevel, "debug") {
		return logger.Config{
			Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}
	}
	return logger.Config{}
}

// metricsMiddleware records count and latency for every handled request,
// including ones an inner handler turned into an error.
func metricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		observability.RecordRequest(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}
