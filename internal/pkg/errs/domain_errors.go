package errs

// Cross-layer sentinels. Handlers translate these into HTTP statuses, so usecases
// mark lower-level errors with them instead of leaking repository kinds.
var (
	ErrNotFound        = New("not found")
	ErrConflict        = New("conflict")
	ErrForbidden       = New("forbidden")
	ErrUnauthenticated = New("unauthenticated")

	ErrDomainValidation        = New("domain validation error")
	ErrDatabaseOperationFailed = New("database operation failed")
)
