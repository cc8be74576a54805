package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cadalt0/Space/internal/repository"
)

// LendItemHandler serves the /api/lend-items endpoints.  Items may
// live outside any space, so the parent check only fires when a
// spaceId is supplied.
type LendItemHandler struct {
	Items  *repository.LendItemRepo
	Spaces *repository.SpaceRepo
}

func NewLendItemHandler(items *repository.LendItemRepo, spaces *repository.SpaceRepo) *LendItemHandler {
	return &LendItemHandler{Items: items, Spaces: spaces}
}

// Upsert handles POST /api/lend-items.
func (h *LendItemHandler) Upsert(c echo.Context) error {
	fields, err := bindFields(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	itemID, okID := requireString(fields, "id")
	name, okName := requireString(fields, "name")
	owner, okOwner := requireString(fields, "owner")
	if !okID || !okName || !okOwner {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "id, name, and owner are required"})
	}

	ctx := c.Request().Context()
	spaceID := optionalString(fields, "spaceId")
	if spaceID != "" {
		exists, err := h.Spaces.Exists(ctx, spaceID)
		if err != nil {
			log.Printf("lend item upsert: check space %s: %v", spaceID, err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		if !exists {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Space not found. Create the space first."})
		}
	}

	_, err = h.Items.GetByKey(ctx, itemID)
	switch {
	case err == nil:
		updated, err := h.Items.UpdateFields(ctx, itemID, h.Items.FilterWrite(fields))
		if err != nil {
			log.Printf("lend item upsert: update %s: %v", itemID, err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		publishChange(c, "lend_item", itemID, deref(updated.SpaceID), "updated")
		return c.JSON(http.StatusOK, map[string]any{
			"message": "Lend item updated successfully",
			"item":    updated,
		})
	case errors.Is(err, repository.ErrLendItemNotFound):
		created, err := h.Items.Create(ctx, itemID, name, owner, fields)
		if err != nil {
			log.Printf("lend item upsert: create %s: %v", itemID, err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		publishChange(c, "lend_item", itemID, deref(created.SpaceID), "created")
		return c.JSON(http.StatusCreated, map[string]any{
			"message": "Lend item created successfully",
			"item":    created,
		})
	default:
		log.Printf("lend item upsert: lookup %s: %v", itemID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}

// Get handles GET /api/lend-items/:id.
func (h *LendItemHandler) Get(c echo.Context) error {
	itemID := c.Param("id")
	item, err := h.Items.GetByKey(c.Request().Context(), itemID)
	if errors.Is(err, repository.ErrLendItemNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Lend item not found"})
	}
	if err != nil {
		log.Printf("lend item get %s: %v", itemID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"item": item})
}

// List handles GET /api/lend-items with an optional ?spaceId= filter.
func (h *LendItemHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	if spaceID := c.QueryParam("spaceId"); spaceID != "" {
		items, err := h.Items.ListBySpace(ctx, spaceID)
		if err != nil {
			log.Printf("lend item list by space %s: %v", spaceID, err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		return c.JSON(http.StatusOK, map[string]any{
			"space_id": spaceID,
			"items":    items,
			"count":    len(items),
		})
	}
	items, err := h.Items.ListAll(ctx)
	if err != nil {
		log.Printf("lend item list: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

// Patch handles PATCH /api/lend-items/:id.
func (h *LendItemHandler) Patch(c echo.Context) error {
	itemID := c.Param("id")
	fields, err := bindFields(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if len(fields) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No update data provided"})
	}
	updated, err := h.Items.UpdateFields(c.Request().Context(), itemID, fields)
	if errors.Is(err, repository.ErrLendItemNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Lend item not found"})
	}
	if err != nil {
		log.Printf("lend item patch %s: %v", itemID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	publishChange(c, "lend_item", itemID, deref(updated.SpaceID), "updated")
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Lend item updated successfully",
		"item":    updated,
	})
}

// Delete handles DELETE /api/lend-items/:id.
func (h *LendItemHandler) Delete(c echo.Context) error {
	itemID := c.Param("id")
	deleted, err := h.Items.Delete(c.Request().Context(), itemID)
	if errors.Is(err, repository.ErrLendItemNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Lend item not found"})
	}
	if err != nil {
		log.Printf("lend item delete %s: %v", itemID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	publishChange(c, "lend_item", itemID, deref(deleted.SpaceID), "deleted")
	return c.JSON(http.StatusOK, map[string]any{
		"message":     "Lend item deleted successfully",
		"deletedItem": deleted,
	})
}
