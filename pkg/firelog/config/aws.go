package config

// AWS is the resolved backend-connection descriptor.
type AWS struct {
	// Region selects the default region-based endpoint when no override
	// is configured.
	Region string

	// AccessKeyID and SecretAccessKey are static credentials. Both empty
	// means the SDK's default credential chain applies.
	AccessKeyID     string
	SecretAccessKey string

	// Endpoint overrides endpoint resolution. Preserved verbatim from
	// configuration - scheme, host, port, and any trailing slash included.
	// Empty means no override.
	Endpoint string
}

// ResolveAWS extracts the backend-connection descriptor from raw
// configuration. Pure: it never mutates cfg and performs no I/O.
func ResolveAWS(cfg Config) AWS {
	return AWS{
		Region:          cfg.String(KeyAWSRegion, ""),
		AccessKeyID:     cfg.String(KeyAWSAccessKeyID, ""),
		SecretAccessKey: cfg.String(KeyAWSSecretAccessKey, ""),
		Endpoint:        cfg.String(KeyAWSEndpoint, ""),
	}
}
