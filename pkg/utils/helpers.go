package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerateRequestID generates a unique request ID for tracking
func GenerateRequestID() string {
	return uuid.New().String()
}

// GenerateSourceID builds a source-scoped job identifier from a source tag and
// the source-native id, e.g. "indeed_abc123".
func GenerateSourceID(tag, nativeID string) string {
	return fmt.Sprintf("%s_%s", tag, nativeID)
}

// FallbackNativeID builds a per-batch unique native id for sources that
// expose no stable identifier: timestamp plus sequence index.
func FallbackNativeID(seq int) string {
	return fmt.Sprintf("%d_%d", time.Now().UnixMilli(), seq)
}

// RandomNativeID builds a native id for manually saved postings. The random
// suffix keeps ids from separate save requests distinct even when they land
// in the same millisecond.
func RandomNativeID() string {
	return fmt.Sprintf("%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// Contains checks if a string slice contains a specific string
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// GetStringOrDefault returns the value if not empty, otherwise returns the default
func GetStringOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
