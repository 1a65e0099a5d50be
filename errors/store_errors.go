// api/errors/store_errors.go
package errors

import (
	"errors"
	"fmt"
)

var ErrDatabaseOperation = errors.New("database operation failed")

// StoreUnavailableError means a backing store could not be reached after the
// configured retries. The decision path degrades instead of failing outright.
type StoreUnavailableError struct {
	Store string
	Err   error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store %s unavailable: %v", e.Store, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

func NewStoreUnavailable(store string, err error) *StoreUnavailableError {
	return &StoreUnavailableError{Store: store, Err: err}
}

func IsStoreUnavailable(err error) bool {
	var se *StoreUnavailableError
	return errors.As(err, &se)
}
