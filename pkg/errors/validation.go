package errors

import (
	"strings"
	"unicode"
)

// MaxNodeIDLength bounds node identifiers accepted from external records.
const MaxNodeIDLength = 256

// MaxPayloadBytes bounds raw roadmap documents accepted over the wire.
const MaxPayloadBytes = 4 << 20

// ValidateNodeID checks an identifier taken from an untrusted record.
//
// The rules are intentionally conservative:
//   - No empty or whitespace-only ids
//   - No control characters or null bytes
//   - Maximum length of 256 bytes
func ValidateNodeID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidRecord, "node id cannot be empty")
	}

	if len(id) > MaxNodeIDLength {
		return New(ErrCodeInvalidRecord, "node id too long (max %d characters)", MaxNodeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRecord, "node id contains invalid control characters")
		}
	}

	return nil
}

// ValidatePayloadSize rejects empty or oversized raw documents.
func ValidatePayloadSize(data []byte) error {
	if len(data) == 0 {
		return New(ErrCodeInvalidPayload, "payload cannot be empty")
	}
	if len(data) > MaxPayloadBytes {
		return New(ErrCodeInvalidPayload, "payload too large (max %d bytes)", MaxPayloadBytes)
	}
	return nil
}
