package validation

import "fmt"

// MaxRequestBodySize bounds the request bodies the handlers will read.
const MaxRequestBodySize int64 = 1 << 20

// ValidatePayloadSize validates the size of incoming payloads
func ValidatePayloadSize(payload []byte, maxSize int64) error {
	if payload == nil {
		return nil
	}

	if int64(len(payload)) > maxSize {
		return fmt.Errorf("payload size %d exceeds maximum allowed size of %d bytes", len(payload), maxSize)
	}

	return nil
}

// TruncateString safely truncates string to maximum length
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
