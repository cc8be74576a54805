// Package handler contains the HTTP handlers implementing the upsert,
// lookup, patch and delete contract shared by every resource kind.
// Payloads are decoded into maps rather than structs on purpose: the
// create-or-update and patch semantics hinge on distinguishing a field
// that was omitted from one that was sent as null or zero.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cadalt0/Space/internal/queue"
	queue_publisher "github.com/cadalt0/Space/internal/service"
)

// bindFields decodes a JSON request body into a field map.  A missing
// or empty body yields an empty map; malformed JSON is an error the
// handler converts to a 400.
func bindFields(c echo.Context) (map[string]any, error) {
	fields := map[string]any{}
	if err := json.NewDecoder(c.Request().Body).Decode(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			return fields, nil
		}
		return nil, err
	}
	return fields, nil
}

// requireString pulls a required field out of the payload.  Absent,
// null, non-string and empty-string values all fail the requirement,
// matching the original validation.
func requireString(fields map[string]any, key string) (string, bool) {
	s, ok := fields[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// optionalString pulls an optional string field, returning "" when it
// is absent or not a string.
func optionalString(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}

// deref unwraps a nullable column value for event metadata.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// publishChange emits a resource.changed event after a successful
// mutation.  Publish failures are logged inside the publisher and
// deliberately ignored here; eventing never interrupts a request.
func publishChange(c echo.Context, kind, key, spaceID, action string) {
	err := queue_publisher.PublishResourceChanged(c.Request().Context(), queue.ResourceChangedEvent{
		Kind:      kind,
		Key:       key,
		SpaceID:   spaceID,
		Action:    action,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("handler: publish %s %s event: %v", kind, action, err)
	}
}
