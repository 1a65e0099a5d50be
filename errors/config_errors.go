// api/errors/config_errors.go
package errors

import (
	"errors"
	"fmt"
)

// ConfigError reports an invalid entry in the role or partition tables.
// At startup it is fatal; on hot reload the previous tables are kept.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func NewConfigError(field, reason string) *ConfigError {
	return &ConfigError{Field: field, Reason: reason}
}

func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
