package whisparr

import (
	"context"
	"encoding/json"
	"net/url"

	"stashsync/internal/logging"
)

// Payload is the closed result of a typed API call: either the decoded value
// or, when decoding failed, the raw body it fell back to. Status is the HTTP
// status of the final attempt either way.
type Payload[T any] struct {
	Value   T
	Raw     []byte
	Decoded bool
	Status  int
}

// request executes an API call and decodes the response into T. Decode
// failures are logged and reported through Payload.Decoded rather than as
// errors, so callers choose how far to degrade.
func request[T any](ctx context.Context, c *Client, method, path string, params url.Values, body any) (Payload[T], error) {
	status, raw, err := c.do(ctx, method, path, params, body)
	result := Payload[T]{Raw: raw, Status: status}
	if err != nil {
		return result, err
	}
	if jsonErr := json.Unmarshal(raw, &result.Value); jsonErr != nil {
		c.logger.Warn("failed to decode whisparr response; keeping raw body",
			logging.String("method", method),
			logging.String("path", path),
			logging.Error(jsonErr),
		)
		return result, nil
	}
	result.Decoded = true
	return result, nil
}
