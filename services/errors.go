package services

import "errors"

// Validation errors surfaced by the catalog and order services. Controllers
// map these to 4xx responses; anything else is treated as a storage failure.
var (
	ErrMissingField  = errors.New("missing required field")
	ErrInvalidField  = errors.New("invalid field value")
	ErrInvalidPrice  = errors.New("price must be non-negative")
	ErrInvalidTotal  = errors.New("submitted totals do not match")
	ErrDuplicateID   = errors.New("item id already exists")
	ErrNotFound      = errors.New("item not found")
	ErrUnknownItem   = errors.New("unknown or inactive item")
	ErrPriceMismatch = errors.New("submitted price does not match catalog")
)
