package repository

import "errors"

// ErrDuplicateKey is returned by Create methods when a unique constraint
// (user email, review hospital+user, appointment transaction id) rejects the
// row. Implementations wrap it with the constraint name.
var ErrDuplicateKey = errors.New("duplicate key")
