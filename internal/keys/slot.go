package keys

import (
	"fmt"
	"strings"
)

// sanitizeKey replaces spaces with hyphens and lowercases the string.
func sanitizeKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "-"))
}

// Object returns the object-store key that holds the named slot.
func Object(slot string) string {
	return fmt.Sprintf("slots/%s.json", sanitizeKey(slot))
}

// Redis returns the Redis key that holds the named slot.
func Redis(slot string) string {
	return "winemap:slots:" + sanitizeKey(slot)
}

// File returns the file name, relative to the data directory, of the named slot.
func File(slot string) string {
	return sanitizeKey(slot) + ".json"
}
