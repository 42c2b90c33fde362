package workout

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/f3rva/f3rva-workout-service/internal/observability"
)

const serviceName = "f3rva-workout-service"

// RegisterRoutes mounts the workout lookup and health endpoints. The GET and
// POST lookup forms accept the same parameters and share one code path, so
// the same input always produces the same result through either.
func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	r.Get("/health/db", func(c *fiber.Ctx) error {
		status, database := "healthy", "connected"
		if err := svc.HealthCheck(c.Context()); err != nil {
			log.Printf("database health check failed: %v", err)
			status, database = "unhealthy", "disconnected"
		}
		return c.JSON(fiber.Map{"status": status, "service": serviceName, "database": database})
	})

	r.Get("/workouts/:year/:month/:day/:url_slug", func(c *fiber.Ctx) error {
		year, errYear := strconv.Atoi(c.Params("year"))
		month, errMonth := strconv.Atoi(c.Params("month"))
		day, errDay := strconv.Atoi(c.Params("day"))
		if errYear != nil || errMonth != nil || errDay != nil {
			observability.RecordLookup("invalid")
			return respondFailure(c, fiber.StatusUnprocessableEntity, "Date parameters must be integers")
		}
		return lookupWorkout(c, svc, year, month, day, c.Params("url_slug"))
	})

	r.Post("/workouts/search", func(c *fiber.Ctx) error {
		var req SearchRequest
		if err := c.BodyParser(&req); err != nil {
			observability.RecordLookup("invalid")
			return respondFailure(c, fiber.StatusUnprocessableEntity, "Request body must be valid JSON")
		}
		return lookupWorkout(c, svc, req.Year, req.Month, req.Day, req.URLSlug)
	})
}

// lookupWorkout is the single translation point from lookup outcomes to HTTP
// status and envelope. Internal error detail goes to the log, never to the
// client.
func lookupWorkout(c *fiber.Ctx, svc *Service, year, month, day int, urlSlug string) error {
	key, err := NewWorkoutKey(year, month, day, urlSlug)
	if err != nil {
		observability.RecordLookup("invalid")
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			return respondFailure(c, fiber.StatusUnprocessableEntity, vErr.Reason)
		}
		return respondFailure(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	w, err := svc.GetWorkout(c.Context(), key)
	switch {
	case errors.Is(err, ErrNotFound):
		observability.RecordLookup("not_found")
		return respondFailure(c, fiber.StatusNotFound,
			fmt.Sprintf("No workout found for %s with slug '%s'", key.Date.Format("2006-01-02"), key.URLSlug))
	case errors.Is(err, ErrStoreUnavailable):
		observability.RecordLookup("unavailable")
		log.Printf("workout store unavailable: %v", err)
		return respondFailure(c, fiber.StatusServiceUnavailable, "Service unavailable")
	case err != nil:
		observability.RecordLookup("error")
		log.Printf("workout lookup failed: %v", err)
		return respondFailure(c, fiber.StatusInternalServerError, "Internal server error")
	}

	observability.RecordLookup("found")
	return c.JSON(WorkoutResponse{
		Success: true,
		Message: "Workout data retrieved successfully",
		Data:    &w,
	})
}

func respondFailure(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(WorkoutResponse{Success: false, Message: message})
}
