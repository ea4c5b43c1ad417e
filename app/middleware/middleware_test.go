package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestStatusOf(t *testing.T) {

	tcs := []struct {
		name string
		err  error
		code int
	}{
		{"fiber error", fiber.NewError(fiber.StatusBadRequest, "bad"), fiber.StatusBadRequest},
		{"wrapped fiber error", fmt.Errorf("wrap. %w", fiber.ErrUnauthorized), fiber.StatusUnauthorized},
		{"record not found", fmt.Errorf("RetrieveAsset 시 오류 발생. %w", gorm.ErrRecordNotFound), fiber.StatusNotFound},
		{"기타", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, StatusOf(tc.err))
		})
	}
}

func TestErrorHandle(t *testing.T) {

	app := fiber.New()
	SetupMiddleware(app, "http://localhost:3000")

	app.Get("/bad", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "잘못된 요청")
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return gorm.ErrRecordNotFound
	})
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	t.Run("에러 응답 형식", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/bad", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "잘못된 요청", body["error"])
	})

	t.Run("미존재", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("cors", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ok", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
	})
}
