// internal/app/system/ourclub/errors.go
package ourclub

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfigMissing is returned when one or more credentials are absent at
// startup. It is fatal: no fetch is attempted without a full bundle.
var ErrConfigMissing = errors.New("ourclub: required configuration missing")

// ServerError reports a non-200 answer from the reports API.
type ServerError struct {
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("Error %d: %s", e.Status, e.Body)
}

// ConnectionError reports a failure to obtain a usable response: DNS,
// refused connections, broken transports and undecodable bodies.
type ConnectionError struct {
	Message string
}

func (e *ConnectionError) Error() string {
	return "Error de conexión: " + e.Message
}

// MissingConfigError wraps ErrConfigMissing with the list of absent keys.
func MissingConfigError(keys []string) error {
	return fmt.Errorf("%w: %s", ErrConfigMissing, strings.Join(keys, ", "))
}
