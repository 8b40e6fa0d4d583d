package catalog

import "errors"

var (
	ErrNotFound = errors.New("product not found")
	ErrInternal = errors.New("could not add product")
)

// InvalidInputError rejects one submitted field. Error() reads as
// "<field> <reason>", e.g. "price invalid".
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string { return e.Field + " " + e.Reason }

func invalid(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}

// AsInvalidInput unwraps err into an *InvalidInputError.
func AsInvalidInput(err error) (*InvalidInputError, bool) {
	var ie *InvalidInputError
	ok := errors.As(err, &ie)
	return ie, ok
}
