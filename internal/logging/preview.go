package logging

import (
	"encoding/json"
	"strings"
)

const (
	// maxPreviewBytes caps the size of logged request/response bodies.
	maxPreviewBytes = 1000
	// maxPathRunes caps the length of logged filesystem paths.
	maxPathRunes = 100
)

var secretKeys = []string{"apikey", "x-api-key", "api_key", "whisparr_key"}

// Preview renders value as JSON for debug logging with credential fields
// masked and the output capped at a fixed size. Values that cannot be
// marshaled render as a placeholder instead of failing the log call.
func Preview(value any) string {
	if value == nil {
		return "<nil>"
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return "<unserializable>"
	}
	return PreviewBytes(raw)
}

// PreviewBytes renders an already-serialized JSON body for debug logging.
func PreviewBytes(raw []byte) string {
	text := string(redact(raw))
	if len(text) > maxPreviewBytes {
		return text[:maxPreviewBytes] + "...(truncated)"
	}
	return text
}

func redact(raw []byte) []byte {
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return raw
	}
	changed := false
	for key := range decoded {
		if isSecretKey(key) {
			decoded[key] = "***REDACTED***"
			changed = true
		}
	}
	if !changed {
		return raw
	}
	masked, err := json.Marshal(decoded)
	if err != nil {
		return raw
	}
	return masked
}

func isSecretKey(key string) bool {
	lowered := strings.ToLower(key)
	for _, secret := range secretKeys {
		if lowered == secret {
			return true
		}
	}
	return false
}

// TruncatePath shortens long filesystem paths for log lines, keeping the
// trailing portion since it carries the file name.
func TruncatePath(path string) string {
	runes := []rune(path)
	if len(runes) <= maxPathRunes {
		return path
	}
	return "..." + string(runes[len(runes)-(maxPathRunes-3):])
}
