package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cadalt0/Space/internal/repository"
)

// SNSHandler serves the /api/sns endpoints for wallet-to-profile
// registrations.
type SNSHandler struct {
	Users *repository.UserRepo
}

func NewSNSHandler(users *repository.UserRepo) *SNSHandler {
	return &SNSHandler{Users: users}
}

// Upsert handles POST /api/sns.  Creating a new user and refreshing an
// existing one share the endpoint; the response message tells the
// caller which path was taken.
func (h *SNSHandler) Upsert(c echo.Context) error {
	fields, err := bindFields(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	email, okEmail := requireString(fields, "email")
	snsID, okSNS := requireString(fields, "sns_id")
	if !okEmail || !okSNS {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email and SNS ID are required"})
	}
	stake, _ := fields["stake"].(float64)

	ctx := c.Request().Context()
	_, err = h.Users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		updates := map[string]any{"sns_id": snsID}
		if _, ok := fields["stake"]; ok {
			updates["stake"] = stake
		}
		updated, err := h.Users.UpdateFields(ctx, email, updates)
		if err != nil {
			log.Printf("sns upsert: update %s: %v", email, err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		publishChange(c, "sns_user", email, "", "updated")
		return c.JSON(http.StatusOK, map[string]any{
			"message": "SNS ID updated successfully",
			"user":    updated,
		})
	case errors.Is(err, repository.ErrUserNotFound):
		created, err := h.Users.Create(ctx, email, snsID, stake)
		if err != nil {
			log.Printf("sns upsert: create %s: %v", email, err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		publishChange(c, "sns_user", email, "", "created")
		return c.JSON(http.StatusCreated, map[string]any{
			"message": "SNS ID added successfully",
			"user":    created,
		})
	default:
		log.Printf("sns upsert: lookup %s: %v", email, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}

// Get handles GET /api/sns/:email.
func (h *SNSHandler) Get(c echo.Context) error {
	email := c.Param("email")
	user, err := h.Users.GetByEmail(c.Request().Context(), email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Email not found"})
	}
	if err != nil {
		log.Printf("sns get %s: %v", email, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"user": user})
}

// List handles GET /api/sns.
func (h *SNSHandler) List(c echo.Context) error {
	users, err := h.Users.ListAll(c.Request().Context())
	if err != nil {
		log.Printf("sns list: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"users": users, "count": len(users)})
}

// Patch handles PATCH /api/sns/:email, applying a partial update with
// the email key itself immutable.
func (h *SNSHandler) Patch(c echo.Context) error {
	email := c.Param("email")
	fields, err := bindFields(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if len(fields) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No update data provided"})
	}
	updated, err := h.Users.UpdateFields(c.Request().Context(), email, fields)
	if errors.Is(err, repository.ErrUserNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
	}
	if err != nil {
		log.Printf("sns patch %s: %v", email, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	publishChange(c, "sns_user", email, "", "updated")
	return c.JSON(http.StatusOK, map[string]any{
		"message": "SNS user updated successfully",
		"user":    updated,
	})
}
