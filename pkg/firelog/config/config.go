// Package config loads and resolves client configuration.
//
// Configuration is a flat map of recognized keys (see the Key constants),
// typically loaded from a yaml or json file or assembled in code by the host
// application. Accessors return default values when a key is missing or has
// the wrong type; required-field validation happens at client construction,
// not here.
package config

// Recognized configuration keys.
const (
	// KeyStreamName is the destination stream identifier. Required.
	KeyStreamName = "stream_name"

	// KeyAWSAccessKeyID and KeyAWSSecretAccessKey are static credentials.
	// When absent, the backend falls back to the SDK's default chain.
	KeyAWSAccessKeyID     = "aws_access_key_id"
	KeyAWSSecretAccessKey = "aws_secret_access_key"

	// KeyAWSRegion selects the backend region.
	KeyAWSRegion = "aws_region"

	// KeyAWSEndpoint optionally overrides the backend endpoint URL.
	KeyAWSEndpoint = "aws_endpoint"
)

// Config wraps a map[string]any for type-safe value extraction.
type Config struct {
	data map[string]any
}

// New creates a Config from the given map.
// If data is nil, an empty Config is returned.
func New(data map[string]any) Config {
	if data == nil {
		data = make(map[string]any)
	}
	return Config{data: data}
}

// Has reports whether key is present, regardless of its type.
func (c Config) Has(key string) bool {
	_, ok := c.data[key]
	return ok
}

// String returns the string value for key, or defaultVal if missing or not a string.
func (c Config) String(key, defaultVal string) string {
	if s, ok := c.data[key].(string); ok {
		return s
	}
	return defaultVal
}

// Int returns the integer value for key, or defaultVal if missing or not
// convertible. Whole-number floats are accepted because JSON decoding
// produces float64.
func (c Config) Int(key string, defaultVal int) int {
	switch v := c.data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if v == float64(int(v)) {
			return int(v)
		}
	}
	return defaultVal
}

// StreamName returns the destination stream identifier, empty if unset.
func (c Config) StreamName() string {
	return c.String(KeyStreamName, "")
}
