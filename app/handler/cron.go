package handler

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

type CronHandler struct {
	tc         TargetChecker
	secret     string
	production bool
}

// NewCronHandler builds the scheduler entry point. The secret is checked only in production.
func NewCronHandler(tc TargetChecker, secret string, production bool) *CronHandler {
	return &CronHandler{
		tc:         tc,
		secret:     secret,
		production: production,
	}
}

func (h *CronHandler) InitRoute(app *fiber.App) {
	router := app.Group("/cron")
	router.Get("/check-target-price", h.authorize, h.CheckTargetPrice)
}

func (h *CronHandler) authorize(c *fiber.Ctx) error {

	if !h.production {
		return c.Next()
	}

	token, err := bearerToken(c)
	if err != nil {
		return err
	}
	if h.secret == "" || subtle.ConstantTimeCompare([]byte(token), []byte(h.secret)) != 1 {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid cron secret")
	}
	return c.Next()
}

func (h *CronHandler) CheckTargetPrice(c *fiber.Ctx) error {

	rpt, err := h.tc.CheckTargets(c.UserContext())
	if err != nil {
		return fmt.Errorf("CheckTargets 시 오류 발생. %w", err)
	}

	return c.Status(fiber.StatusOK).JSON(cronResponse{
		Success:           true,
		Timestamp:         rpt.Timestamp.Format(time.RFC3339),
		AssetsChecked:     rpt.AssetsChecked,
		NotificationsSent: rpt.NotificationsSent,
		Notifications:     rpt.Notifications,
		Truncated:         rpt.Truncated,
		Skipped:           rpt.Skipped,
	})
}
