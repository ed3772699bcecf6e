package errors

import (
	"strings"
	"unicode"
)

// MaxIDLength bounds node, edge and cluster identifiers in bytes.
const MaxIDLength = 256

// ValidateID rejects identifiers that are empty, longer than [MaxIDLength],
// padded with whitespace or carrying control characters. kind names the
// identity space in the message.
func ValidateID(kind, id string) error {
	switch {
	case id == "":
		return New(ErrCodeInvalidID, "%s id cannot be empty", kind)
	case len(id) > MaxIDLength:
		return New(ErrCodeInvalidID, "%s id too long (max %d characters)", kind, MaxIDLength)
	case strings.IndexFunc(id, unicode.IsControl) >= 0:
		return New(ErrCodeInvalidID, "%s id %q contains invalid control characters", kind, id)
	case strings.TrimSpace(id) != id:
		return New(ErrCodeInvalidID, "%s id %q has surrounding whitespace", kind, id)
	}
	return nil
}
