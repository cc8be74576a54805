package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cadalt0/Space/internal/repository"
)

// RequestHandler serves the /api/requests endpoints.
type RequestHandler struct {
	Requests *repository.RequestRepo
	Spaces   *repository.SpaceRepo
}

func NewRequestHandler(requests *repository.RequestRepo, spaces *repository.SpaceRepo) *RequestHandler {
	return &RequestHandler{Requests: requests, Spaces: spaces}
}

// Upsert handles POST /api/requests.
func (h *RequestHandler) Upsert(c echo.Context) error {
	fields, err := bindFields(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	requestID, okID := requireString(fields, "id")
	title, okTitle := requireString(fields, "title")
	requester, okReq := requireString(fields, "requester")
	if !okID || !okTitle || !okReq {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "id, title, and requester are required"})
	}

	ctx := c.Request().Context()
	if spaceID := optionalString(fields, "spaceId"); spaceID != "" {
		exists, err := h.Spaces.Exists(ctx, spaceID)
		if err != nil {
			log.Printf("request upsert: check space %s: %v", spaceID, err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		if !exists {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Space not found. Create the space first."})
		}
	}

	_, err = h.Requests.GetByKey(ctx, requestID)
	switch {
	case err == nil:
		updated, err := h.Requests.UpdateFields(ctx, requestID, h.Requests.FilterWrite(fields))
		if err != nil {
			log.Printf("request upsert: update %s: %v", requestID, err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		publishChange(c, "request", requestID, deref(updated.SpaceID), "updated")
		return c.JSON(http.StatusOK, map[string]any{
			"message": "Request updated successfully",
			"request": updated,
		})
	case errors.Is(err, repository.ErrRequestNotFound):
		created, err := h.Requests.Create(ctx, requestID, title, requester, fields)
		if err != nil {
			log.Printf("request upsert: create %s: %v", requestID, err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		publishChange(c, "request", requestID, deref(created.SpaceID), "created")
		return c.JSON(http.StatusCreated, map[string]any{
			"message": "Request created successfully",
			"request": created,
		})
	default:
		log.Printf("request upsert: lookup %s: %v", requestID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}

// Get handles GET /api/requests/:id.
func (h *RequestHandler) Get(c echo.Context) error {
	requestID := c.Param("id")
	req, err := h.Requests.GetByKey(c.Request().Context(), requestID)
	if errors.Is(err, repository.ErrRequestNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Request not found"})
	}
	if err != nil {
		log.Printf("request get %s: %v", requestID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"request": req})
}

// List handles GET /api/requests with an optional ?spaceId= filter.
func (h *RequestHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	if spaceID := c.QueryParam("spaceId"); spaceID != "" {
		requests, err := h.Requests.ListBySpace(ctx, spaceID)
		if err != nil {
			log.Printf("request list by space %s: %v", spaceID, err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		return c.JSON(http.StatusOK, map[string]any{
			"space_id": spaceID,
			"requests": requests,
			"count":    len(requests),
		})
	}
	requests, err := h.Requests.ListAll(ctx)
	if err != nil {
		log.Printf("request list: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"requests": requests, "count": len(requests)})
}

// Patch handles PATCH /api/requests/:id.
func (h *RequestHandler) Patch(c echo.Context) error {
	requestID := c.Param("id")
	fields, err := bindFields(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if len(fields) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No update data provided"})
	}
	updated, err := h.Requests.UpdateFields(c.Request().Context(), requestID, fields)
	if errors.Is(err, repository.ErrRequestNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Request not found"})
	}
	if err != nil {
		log.Printf("request patch %s: %v", requestID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	publishChange(c, "request", requestID, deref(updated.SpaceID), "updated")
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Request updated successfully",
		"request": updated,
	})
}

// Delete handles DELETE /api/requests/:id.
func (h *RequestHandler) Delete(c echo.Context) error {
	requestID := c.Param("id")
	deleted, err := h.Requests.Delete(c.Request().Context(), requestID)
	if errors.Is(err, repository.ErrRequestNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Request not found"})
	}
	if err != nil {
		log.Printf("request delete %s: %v", requestID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	publishChange(c, "request", requestID, deref(deleted.SpaceID), "deleted")
	return c.JSON(http.StatusOK, map[string]any{
		"message":        "Request deleted successfully",
		"deletedRequest": deleted,
	})
}
