package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cadalt0/Space/internal/repository"
)

// HangoutHandler serves the /api/hangouts endpoints.
type HangoutHandler struct {
	Hangouts *repository.HangoutRepo
	Spaces   *repository.SpaceRepo
}

func NewHangoutHandler(hangouts *repository.HangoutRepo, spaces *repository.SpaceRepo) *HangoutHandler {
	return &HangoutHandler{Hangouts: hangouts, Spaces: spaces}
}

// Upsert handles POST /api/hangouts.
func (h *HangoutHandler) Upsert(c echo.Context) error {
	fields, err := bindFields(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	hangID, okID := requireString(fields, "id")
	title, okTitle := requireString(fields, "title")
	host, okHost := requireString(fields, "host")
	if !okID || !okTitle || !okHost {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "id, title, and host are required"})
	}

	ctx := c.Request().Context()
	if spaceID := optionalString(fields, "spaceId"); spaceID != "" {
		exists, err := h.Spaces.Exists(ctx, spaceID)
		if err != nil {
			log.Printf("hangout upsert: check space %s: %v", spaceID, err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		if !exists {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Space not found. Create the space first."})
		}
	}

	_, err = h.Hangouts.GetByKey(ctx, hangID)
	switch {
	case err == nil:
		updated, err := h.Hangouts.UpdateFields(ctx, hangID, h.Hangouts.FilterWrite(fields))
		if err != nil {
			log.Printf("hangout upsert: update %s: %v", hangID, err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		publishChange(c, "hangout", hangID, deref(updated.SpaceID), "updated")
		return c.JSON(http.StatusOK, map[string]any{
			"message": "Hangout updated successfully",
			"hangout": updated,
		})
	case errors.Is(err, repository.ErrHangoutNotFound):
		created, err := h.Hangouts.Create(ctx, hangID, title, host, fields)
		if err != nil {
			log.Printf("hangout upsert: create %s: %v", hangID, err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		publishChange(c, "hangout", hangID, deref(created.SpaceID), "created")
		return c.JSON(http.StatusCreated, map[string]any{
			"message": "Hangout created successfully",
			"hangout": created,
		})
	default:
		log.Printf("hangout upsert: lookup %s: %v", hangID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}

// Get handles GET /api/hangouts/:id.
func (h *HangoutHandler) Get(c echo.Context) error {
	hangID := c.Param("id")
	hangout, err := h.Hangouts.GetByKey(c.Request().Context(), hangID)
	if errors.Is(err, repository.ErrHangoutNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Hangout not found"})
	}
	if err != nil {
		log.Printf("hangout get %s: %v", hangID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"hangout": hangout})
}

// List handles GET /api/hangouts with an optional ?spaceId= filter.
func (h *HangoutHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	if spaceID := c.QueryParam("spaceId"); spaceID != "" {
		hangouts, err := h.Hangouts.ListBySpace(ctx, spaceID)
		if err != nil {
			log.Printf("hangout list by space %s: %v", spaceID, err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		return c.JSON(http.StatusOK, map[string]any{
			"space_id": spaceID,
			"hangouts": hangouts,
			"count":    len(hangouts),
		})
	}
	hangouts, err := h.Hangouts.ListAll(ctx)
	if err != nil {
		log.Printf("hangout list: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"hangouts": hangouts, "count": len(hangouts)})
}

// Patch handles PATCH /api/hangouts/:id.
func (h *HangoutHandler) Patch(c echo.Context) error {
	hangID := c.Param("id")
	fields, err := bindFields(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if len(fields) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No update data provided"})
	}
	updated, err := h.Hangouts.UpdateFields(c.Request().Context(), hangID, fields)
	if errors.Is(err, repository.ErrHangoutNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Hangout not found"})
	}
	if err != nil {
		log.Printf("hangout patch %s: %v", hangID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	publishChange(c, "hangout", hangID, deref(updated.SpaceID), "updated")
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Hangout updated successfully",
		"hangout": updated,
	})
}

// Delete handles DELETE /api/hangouts/:id.
func (h *HangoutHandler) Delete(c echo.Context) error {
	hangID := c.Param("id")
	deleted, err := h.Hangouts.Delete(c.Request().Context(), hangID)
	if errors.Is(err, repository.ErrHangoutNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Hangout not found"})
	}
	if err != nil {
		log.Printf("hangout delete %s: %v", hangID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	publishChange(c, "hangout", hangID, deref(deleted.SpaceID), "deleted")
	return c.JSON(http.StatusOK, map[string]any{
		"message":        "Hangout deleted successfully",
		"deletedHangout": deleted,
	})
}
