package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrUnsupportedPredicate = errors.New("db: unsupported predicate")
	ErrInvalidProfile       = errors.New("db: invalid profile")
	ErrClosed               = errors.New("db: store closed")
)

// Op names the store operation for error context.
const (
	OpPing        = "ping"
	OpMigrate     = "migrate"
	OpCount       = "count"
	OpFetchIDPage = "fetch_id_page"
	OpHydrate     = "hydrate"
	OpUpsert      = "upsert"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Wrap returns nil for a nil err, otherwise an *Error for op.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
