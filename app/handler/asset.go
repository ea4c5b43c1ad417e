package handler

import (
	"fmt"

	"assetmaster"
	m "assetmaster/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AssetHandler struct {
	r AssetRetriever
	w AssetSaver
}

func NewAssetHandler(r AssetRetriever, w AssetSaver) *AssetHandler {
	return &AssetHandler{
		r: r,
		w: w,
	}
}

func (h *AssetHandler) InitRoute(app *fiber.App) {

	router := app.Group("/assets")

	router.Get("", h.Assets)
	router.Post("", h.SaveAsset)
	router.Get("/:id", h.Asset)
	router.Patch("/:id", h.PatchAsset)
	router.Delete("/:id", h.DeleteAsset)
}

// Assets lists the assets of the user. category filters on the user defined asset type, kind on ASSET/LIABILITY.
func (h *AssetHandler) Assets(c *fiber.Ctx) error {

	filter := m.AssetFilter{}

	if category := c.Query("category"); !assetmaster.IsReservedCategory(category) {
		filter.AssetType = category
	}
	if kind := c.Query("kind"); kind != "" {
		k, err := m.ToCategory(kind)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		filter.Category = k
	}

	assets, err := h.r.Assets(userId(c), filter)
	if err != nil {
		return fmt.Errorf("Assets 조회 시 오류 발생. %w", err)
	}

	return c.Status(fiber.StatusOK).JSON(toAssetResponses(assets, h.r.Now()))
}

func (h *AssetHandler) Asset(c *fiber.Ctx) error {

	id, err := assetId(c)
	if err != nil {
		return err
	}

	asset, err := h.r.Asset(userId(c), id)
	if err != nil {
		return fmt.Errorf("Asset 조회 시 오류 발생. %w", err)
	}

	return c.Status(fiber.StatusOK).JSON(toAssetResponse(*asset, h.r.Now()))
}

func (h *AssetHandler) SaveAsset(c *fiber.Ctx) error {

	var param SaveAssetReq
	if err := parseBody(c, &param); err != nil {
		return err
	}

	asset := param.toAsset()
	status := fiber.StatusCreated
	if param.ID != "" {
		asset.ID = uuid.MustParse(param.ID)
		status = fiber.StatusOK
	}

	err := h.w.SaveAsset(userId(c), asset)
	if err != nil {
		return fmt.Errorf("SaveAsset 시 오류 발생. %w", err)
	}

	return c.Status(status).JSON(toAssetResponse(*asset, h.r.Now()))
}

func (h *AssetHandler) PatchAsset(c *fiber.Ctx) error {

	id, err := assetId(c)
	if err != nil {
		return err
	}

	apply, err := parsePatch(c.Body())
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	asset, err := h.w.PatchAsset(userId(c), id, apply)
	if err != nil {
		return fmt.Errorf("PatchAsset 시 오류 발생. %w", err)
	}

	return c.Status(fiber.StatusOK).JSON(toAssetResponse(*asset, h.r.Now()))
}

func (h *AssetHandler) DeleteAsset(c *fiber.Ctx) error {

	id, err := assetId(c)
	if err != nil {
		return err
	}

	err = h.w.DeleteAsset(userId(c), id)
	if err != nil {
		return fmt.Errorf("DeleteAsset 시 오류 발생. %w", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func assetId(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("잘못된 asset id. %s", c.Params("id")))
	}
	return id, nil
}

func userId(c *fiber.Ctx) uint {
	id, _ := c.Locals(userIdKey).(uint)
	return id
}
