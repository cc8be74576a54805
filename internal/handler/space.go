package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cadalt0/Space/internal/repository"
)

// SpaceHandler serves the /api/spaces endpoints.
type SpaceHandler struct {
	Spaces *repository.SpaceRepo
	Shops  *repository.ShopRepo
}

func NewSpaceHandler(spaces *repository.SpaceRepo, shops *repository.ShopRepo) *SpaceHandler {
	return &SpaceHandler{Spaces: spaces, Shops: shops}
}

// Upsert handles POST /api/spaces.  Only fields present in the payload
// are written on the update path; everything else keeps its stored
// value.
func (h *SpaceHandler) Upsert(c echo.Context) error {
	fields, err := bindFields(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	spaceID, ok := requireString(fields, "spaceId")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "spaceId is required"})
	}

	ctx := c.Request().Context()
	_, err = h.Spaces.GetByKey(ctx, spaceID)
	switch {
	case err == nil:
		updated, err := h.Spaces.UpdateFields(ctx, spaceID, h.Spaces.FilterWrite(fields))
		if err != nil {
			log.Printf("space upsert: update %s: %v", spaceID, err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		publishChange(c, "space", spaceID, spaceID, "updated")
		return c.JSON(http.StatusOK, map[string]any{
			"message": "Space updated successfully",
			"space":   updated,
		})
	case errors.Is(err, repository.ErrSpaceNotFound):
		created, err := h.Spaces.Create(ctx, spaceID, fields)
		if err != nil {
			log.Printf("space upsert: create %s: %v", spaceID, err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		publishChange(c, "space", spaceID, spaceID, "created")
		return c.JSON(http.StatusCreated, map[string]any{
			"message": "Space created successfully",
			"space":   created,
		})
	default:
		log.Printf("space upsert: lookup %s: %v", spaceID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}

// Get handles GET /api/spaces/:spaceId.
func (h *SpaceHandler) Get(c echo.Context) error {
	spaceID := c.Param("spaceId")
	space, err := h.Spaces.GetByKey(c.Request().Context(), spaceID)
	if errors.Is(err, repository.ErrSpaceNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Space not found"})
	}
	if err != nil {
		log.Printf("space get %s: %v", spaceID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"space": space})
}

// List handles GET /api/spaces.
func (h *SpaceHandler) List(c echo.Context) error {
	spaces, err := h.Spaces.ListAll(c.Request().Context())
	if err != nil {
		log.Printf("space list: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"spaces": spaces, "count": len(spaces)})
}

// Patch handles PATCH /api/spaces/:spaceId.
func (h *SpaceHandler) Patch(c echo.Context) error {
	spaceID := c.Param("spaceId")
	fields, err := bindFields(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if len(fields) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No update data provided"})
	}
	updated, err := h.Spaces.UpdateFields(c.Request().Context(), spaceID, fields)
	if errors.Is(err, repository.ErrSpaceNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Space not found"})
	}
	if err != nil {
		log.Printf("space patch %s: %v", spaceID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	publishChange(c, "space", spaceID, spaceID, "updated")
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Space updated successfully",
		"space":   updated,
	})
}

// Delete handles DELETE /api/spaces/:spaceId.  Shops under the space
// go with it; lend items, requests and hangouts are orphaned instead,
// keeping their rows with a null space_id.
func (h *SpaceHandler) Delete(c echo.Context) error {
	spaceID := c.Param("spaceId")
	deleted, err := h.Spaces.Delete(c.Request().Context(), spaceID)
	if errors.Is(err, repository.ErrSpaceNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Space not found"})
	}
	if err != nil {
		log.Printf("space delete %s: %v", spaceID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	publishChange(c, "space", spaceID, spaceID, "deleted")
	return c.JSON(http.StatusOK, map[string]any{
		"message":      "Space deleted successfully",
		"deletedSpace": deleted,
	})
}

// ListShops handles GET /api/spaces/:spaceId/shops, 404ing when the
// space itself does not exist.
func (h *SpaceHandler) ListShops(c echo.Context) error {
	spaceID := c.Param("spaceId")
	ctx := c.Request().Context()
	exists, err := h.Spaces.Exists(ctx, spaceID)
	if err != nil {
		log.Printf("space shops: check %s: %v", spaceID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	if !exists {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Space not found"})
	}
	shops, err := h.Shops.ListBySpace(ctx, spaceID)
	if err != nil {
		log.Printf("space shops: list %s: %v", spaceID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"space_id": spaceID,
		"shops":    shops,
		"count":    len(shops),
	})
}
