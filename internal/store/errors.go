package store

// ValidationError reports malformed or missing input. Always user-correctable.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string { return e.Message }

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Message string
}

func (e NotFoundError) Error() string { return e.Message }

// ConflictError reports a violated uniqueness or referential-integrity guard.
type ConflictError struct {
	Message string
}

func (e ConflictError) Error() string { return e.Message }
