package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type SettingsHandler struct {
	s SettingStore
}

func NewSettingsHandler(s SettingStore) *SettingsHandler {
	return &SettingsHandler{s: s}
}

func (h *SettingsHandler) InitRoute(app *fiber.App) {
	router := app.Group("/settings")
	router.Get("", h.Settings)
	router.Post("", h.SaveSettings)
}

func (h *SettingsHandler) Settings(c *fiber.Ctx) error {

	key, err := h.s.NotificationKey(userId(c))
	if err != nil {
		return fmt.Errorf("NotificationKey 조회 시 오류 발생. %w", err)
	}

	return c.Status(fiber.StatusOK).JSON(settingsResponse{BarkKey: key})
}

// SaveSettings stores the bark device key. An empty key turns notifications off.
func (h *SettingsHandler) SaveSettings(c *fiber.Ctx) error {

	var param SettingsRequest
	if err := parseBody(c, &param); err != nil {
		return err
	}

	err := h.s.SaveNotificationKey(userId(c), param.BarkKey)
	if err != nil {
		return fmt.Errorf("SaveNotificationKey 시 오류 발생. %w", err)
	}

	return c.Status(fiber.StatusOK).JSON(settingsResponse{BarkKey: param.BarkKey})
}
