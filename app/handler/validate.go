package handler

import (
	"fmt"

	m "assetmaster/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return m.IsValidCategory(fl.Field().String())
	})
	v.RegisterValidation("asset_status", func(fl validator.FieldLevel) bool {
		return m.IsValidStatus(fl.Field().String())
	})
	v.RegisterValidation("target_type", func(fl validator.FieldLevel) bool {
		return m.IsValidTargetCostType(fl.Field().String())
	})
	v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := parseDate(fl.Field().String())
		return err == nil
	})
	return v
}

func validCheck(param any) error {
	if err := validate.Struct(param); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("파라미터 유효성 검사 시 오류 발생. %s", err))
	}
	return nil
}

func parseBody(c *fiber.Ctx, param any) error {
	if err := c.BodyParser(param); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("파라미터 BodyParse 시 오류 발생. %s", err))
	}
	return validCheck(param)
}
