package adapters

import (
	"fmt"
	"strconv"
	"strings"
)

// Provider rows come back as loosely-typed JSON maps; no field is guaranteed
// to exist or to carry the documented type. Every lookup below returns a
// typed default on any mismatch so adapters never propagate a missing-field
// fault.

func getString(row map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := row[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

func getFloat(row map[string]any, keys ...string) float64 {
	for _, key := range keys {
		switch v := row[key].(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return f
			}
		}
	}
	return 0
}

func getInt(row map[string]any, keys ...string) int {
	for _, key := range keys {
		switch v := row[key].(type) {
		case float64:
			return int(v)
		case int:
			return v
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n
			}
		}
	}
	return 0
}

func getBool(row map[string]any, keys ...string) bool {
	for _, key := range keys {
		if v, ok := row[key].(bool); ok {
			return v
		}
	}
	return false
}

func getMap(row map[string]any, key string) map[string]any {
	if v, ok := row[key].(map[string]any); ok {
		return v
	}
	return map[string]any{}
}

func getMapSlice(row map[string]any, key string) []map[string]any {
	raw, ok := row[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func getStringSlice(row map[string]any, key string) []string {
	raw, ok := row[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// toDuration coerces a visit-duration value into "HH:MM:SS". Providers send
// either a preformatted string or a number of seconds; anything else becomes
// "00:00:00".
func toDuration(v any) string {
	switch d := v.(type) {
	case string:
		if strings.Count(d, ":") == 2 {
			return d
		}
		if secs, err := strconv.ParseFloat(strings.TrimSpace(d), 64); err == nil {
			return formatSeconds(secs)
		}
	case float64:
		return formatSeconds(d)
	case int:
		return formatSeconds(float64(d))
	}
	return "00:00:00"
}

func formatSeconds(secs float64) string {
	if secs < 0 {
		secs = 0
	}
	total := int(secs)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
