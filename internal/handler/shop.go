package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cadalt0/Space/internal/repository"
)

// ShopHandler serves the /api/shops endpoints.  Shops are the only
// kind whose parent space is mandatory, so every create checks the
// space first.
type ShopHandler struct {
	Shops  *repository.ShopRepo
	Spaces *repository.SpaceRepo
}

func NewShopHandler(shops *repository.ShopRepo, spaces *repository.SpaceRepo) *ShopHandler {
	return &ShopHandler{Shops: shops, Spaces: spaces}
}

// Upsert handles POST /api/shops.
func (h *ShopHandler) Upsert(c echo.Context) error {
	fields, err := bindFields(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	shopID, okID := requireString(fields, "shopId")
	name, okName := requireString(fields, "name")
	spaceID, okSpace := requireString(fields, "spaceId")
	if !okID || !okName || !okSpace {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "shopId, name, and spaceId are required"})
	}

	ctx := c.Request().Context()
	exists, err := h.Spaces.Exists(ctx, spaceID)
	if err != nil {
		log.Printf("shop upsert: check space %s: %v", spaceID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	if !exists {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Space not found. Create the space first."})
	}

	_, err = h.Shops.GetByKey(ctx, shopID)
	switch {
	case err == nil:
		updated, err := h.Shops.UpdateFields(ctx, shopID, h.Shops.FilterWrite(fields))
		if err != nil {
			log.Printf("shop upsert: update %s: %v", shopID, err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		publishChange(c, "shop", shopID, spaceID, "updated")
		return c.JSON(http.StatusOK, map[string]any{
			"message": "Shop updated successfully",
			"shop":    updated,
		})
	case errors.Is(err, repository.ErrShopNotFound):
		created, err := h.Shops.Create(ctx, shopID, name, spaceID, fields)
		if err != nil {
			log.Printf("shop upsert: create %s: %v", shopID, err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		publishChange(c, "shop", shopID, spaceID, "created")
		return c.JSON(http.StatusCreated, map[string]any{
			"message": "Shop created successfully",
			"shop":    created,
		})
	default:
		log.Printf("shop upsert: lookup %s: %v", shopID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}

// Get handles GET /api/shops/:shopId.
func (h *ShopHandler) Get(c echo.Context) error {
	shopID := c.Param("shopId")
	shop, err := h.Shops.GetByKey(c.Request().Context(), shopID)
	if errors.Is(err, repository.ErrShopNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Shop not found"})
	}
	if err != nil {
		log.Printf("shop get %s: %v", shopID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"shop": shop})
}

// List handles GET /api/shops.
func (h *ShopHandler) List(c echo.Context) error {
	shops, err := h.Shops.ListAll(c.Request().Context())
	if err != nil {
		log.Printf("shop list: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"shops": shops, "count": len(shops)})
}

// Patch handles PATCH /api/shops/:shopId.
func (h *ShopHandler) Patch(c echo.Context) error {
	shopID := c.Param("shopId")
	fields, err := bindFields(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if len(fields) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No update data provided"})
	}
	updated, err := h.Shops.UpdateFields(c.Request().Context(), shopID, fields)
	if errors.Is(err, repository.ErrShopNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Shop not found"})
	}
	if err != nil {
		log.Printf("shop patch %s: %v", shopID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	publishChange(c, "shop", shopID, updated.SpaceID, "updated")
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Shop updated successfully",
		"shop":    updated,
	})
}

// Delete handles DELETE /api/shops/:shopId.
func (h *ShopHandler) Delete(c echo.Context) error {
	shopID := c.Param("shopId")
	deleted, err := h.Shops.Delete(c.Request().Context(), shopID)
	if errors.Is(err, repository.ErrShopNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Shop not found"})
	}
	if err != nil {
		log.Printf("shop delete %s: %v", shopID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	publishChange(c, "shop", shopID, deleted.SpaceID, "deleted")
	return c.JSON(http.StatusOK, map[string]any{
		"message":     "Shop deleted successfully",
		"deletedShop": deleted,
	})
}
