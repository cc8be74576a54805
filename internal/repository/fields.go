// fields.go holds the shared machinery behind the upsert and patch
// endpoints: per-resource column translation, collection serialization
// and dynamic SET clause construction.  Every repository consults a
// static mapping table (external field name -> column name) declared
// next to it, so renames like spaceId -> space_id live in one place
// instead of inline conditionals scattered through handlers.
package repository

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// normalizeValue prepares a JSON-decoded payload value for binding as a
// SQL argument.  Collection values (arrays, objects) are serialized to
// JSON text because list columns store whole-value replacements;
// scalars pass through untyped so the store coerces or rejects them.
func normalizeValue(v any) any {
	switch v.(type) {
	case []any, []string, map[string]any:
		b, err := json.Marshal(v)
		if err != nil {
			return v
		}
		return string(b)
	default:
		return v
	}
}

// buildSet renders a dynamic SET clause from a payload map.  Keys are
// translated through cols; keys listed in skip are silently dropped
// (the immutable natural key).  Unmapped keys pass through as column
// names unchanged, matching the documented patch contract.  The
// updated_at bump is always appended, even when no semantic field
// actually changed value.  Keys are visited in sorted order so the
// generated SQL is deterministic.
func buildSet(fields map[string]any, cols map[string]string, skip ...string) (string, []any) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+1)
	args := make([]any, 0, len(keys))
	for _, k := range keys {
		if contains(skip, k) {
			continue
		}
		col := k
		if mapped, ok := cols[k]; ok {
			col = mapped
		}
		parts = append(parts, col+" = ?")
		args = append(args, normalizeValue(fields[k]))
	}
	parts = append(parts, "updated_at = CURRENT_TIMESTAMP")
	return strings.Join(parts, ", "), args
}

// filterKnown copies fields, keeping only keys that are either in the
// alias table or name a column listed in known.  The upsert path runs
// payloads through this before UpdateFields so stray keys never reach
// the SET clause; the patch endpoint keeps its documented raw
// passthrough.
func filterKnown(fields map[string]any, cols map[string]string, known ...string) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if _, ok := cols[k]; ok || contains(known, k) {
			out[k] = v
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// strField returns the payload value under k as a *string, or nil when
// the key is absent or null.  Non-string scalars are stringified the
// same way a dynamic caller would serialize them.
func strField(f map[string]any, k string) *string {
	v, ok := f[k]
	if !ok || v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		return &s
	}
	s := fmt.Sprint(v)
	return &s
}

// intField returns the payload value under k as an int, defaulting to
// zero.  JSON numbers decode as float64.
func intField(f map[string]any, k string) int {
	switch v := f[k].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}

// floatField returns the payload value under k as a float64 plus a
// presence flag, used for the decimal stake balance.
func floatField(f map[string]any, k string) (float64, bool) {
	switch v := f[k].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(v, 64)
		return n, err == nil
	}
	return 0, false
}

// boolField returns the payload value under k, or def when the key is
// absent or not a boolean.
func boolField(f map[string]any, k string, def bool) bool {
	if v, ok := f[k].(bool); ok {
		return v
	}
	return def
}

// listField serializes the payload value under k to JSON text,
// defaulting to an empty array when absent.
func listField(f map[string]any, k string) string {
	v, ok := f[k]
	if !ok || v == nil {
		return "[]"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}
