package models

import (
	"encoding/json"

	"go.uber.org/zap"
)

var modelLogger = zap.L().Named("persistence.models")

// marshalColumn serializes a value for a jsonb column, falling back to the
// given literal when serialization fails.
func marshalColumn(v any, fallback string) string {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		modelLogger.Warn("failed to serialize jsonb column", zap.Error(err))
		return fallback
	}
	return string(jsonBytes)
}

// unmarshalColumn parses a jsonb column into dst. A bad payload is logged
// and dst keeps its zero value so one corrupt row cannot poison a listing.
func unmarshalColumn(raw string, dst any) {
	if raw == "" {
		return
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		modelLogger.Warn("failed to parse jsonb column",
			zap.String("raw_json", raw),
			zap.Error(err))
	}
}
