package handler

import (
	"errors"
	"fmt"

	"assetmaster"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	cs CategoryService
}

func NewCategoryHandler(cs CategoryService) *CategoryHandler {
	return &CategoryHandler{cs: cs}
}

func (h *CategoryHandler) InitRoute(app *fiber.App) {
	router := app.Group("/categories")
	router.Get("", h.Categories)
	router.Delete("", h.DeleteCategory)
}

func (h *CategoryHandler) Categories(c *fiber.Ctx) error {

	categories, err := h.cs.Categories(userId(c))
	if err != nil {
		return fmt.Errorf("Categories 조회 시 오류 발생. %w", err)
	}

	return c.Status(fiber.StatusOK).JSON(categoriesResponse{Categories: categories})
}

func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {

	n, err := h.cs.DeleteCategory(userId(c), c.Query("category"))
	if err != nil {
		if errors.Is(err, assetmaster.ErrReservedCategory) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return fmt.Errorf("DeleteCategory 시 오류 발생. %w", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "affected": n})
}
