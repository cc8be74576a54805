// Package queue defines message payloads exchanged over the message broker.
package queue

// ResourceChangedQueue is the queue name shared by the publisher and
// the activity-log consumer.
const ResourceChangedQueue = "resource.changed"

// ResourceChangedEvent is published after every successful mutation
// (upsert, patch, delete) of any resource kind.  It carries enough
// information for downstream consumers to log or trigger analytics
// without querying the primary database.
type ResourceChangedEvent struct {
	Kind      string `json:"kind"`               // sns-user|space|shop|lend-item|request|hangout
	Key       string `json:"key"`                // the resource's natural key
	SpaceID   string `json:"space_id,omitempty"` // parent space, when the kind has one
	Action    string `json:"action"`             // created|updated|deleted
	Timestamp string `json:"timestamp"`          // RFC3339 UTC
}
