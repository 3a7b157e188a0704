package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnknownCurrency indicates that a currency code is not part of the reference data.
// Kept distinct from ErrNotFound so callers can report "unsupported currency"
// rather than "rate not found".
var ErrUnknownCurrency = errors.New("unknown currency")

// ErrUnknownProvider indicates that a provider name matches no registered adapter.
var ErrUnknownProvider = errors.New("unknown provider")

// ErrNoData indicates that the cache and every active provider were exhausted
// without producing a rate.
var ErrNoData = errors.New("no exchange rate data found")
