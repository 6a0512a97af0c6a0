package firelog

import "fmt"

// ConfigurationError reports a missing or invalid required configuration
// field. Surfaced synchronously at client construction, never later.
type ConfigurationError struct {
	// Field is the configuration key at fault.
	Field string

	// Message describes what is wrong with it.
	Message string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Message)
}

// SerializationError reports a payload that cannot be represented in the
// wire format. Surfaced synchronously from PostEvent; the event is not
// enqueued.
type SerializationError struct {
	Err error
}

// Error implements the error interface.
func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialize event: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *SerializationError) Unwrap() error {
	return e.Err
}

// DeliveryError reports a failed backend delivery. It is absorbed entirely
// inside the worker: logged, counted, and discarded. Producers never see it.
type DeliveryError struct {
	// Stream is the destination the delivery was bound for.
	Stream string

	Err error
}

// Error implements the error interface.
func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver to %s: %v", e.Stream, e.Err)
}

// Unwrap returns the underlying error.
func (e *DeliveryError) Unwrap() error {
	return e.Err
}
