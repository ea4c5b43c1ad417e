package middleware

import (
	"errors"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var lg = zerolog.New(os.Stdout).With().Str("Module", "Http").Timestamp().Logger()

func SetupMiddleware(router fiber.Router, allowOrigins string) {

	if allowOrigins == "" {
		allowOrigins = "*"
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowCredentials: allowOrigins != "*",
	}))
	router.Use(logRequest)
	router.Use(errorHandle)
}

// errorHandle turns handler errors into {"error": msg}. *fiber.Error keeps its code,
// a missing record is 404 and everything else is 500.
func errorHandle(c *fiber.Ctx) error {

	err := c.Next()
	if err == nil {
		return nil
	}

	code := StatusOf(err)
	if code >= fiber.StatusInternalServerError {
		lg.Error().Err(err).Str("endpoint", c.Path()).Msg("Error in handler")
	} else {
		lg.Warn().Err(err).Str("endpoint", c.Path()).Msg("Request rejected")
	}

	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func StatusOf(err error) int {

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}

// logRequest does not log the body. Login and register bodies carry passwords.
func logRequest(c *fiber.Ctx) error {

	start := time.Now()
	err := c.Next()

	lg.Info().
		Str("method", c.Method()).
		Str("endpoint", c.Path()).
		Int("status", c.Response().StatusCode()).
		Dur("latency", time.Since(start)).
		Msg("Request")
	return err
}
