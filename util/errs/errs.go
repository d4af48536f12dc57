package errs

import (
	"errors"
	"net/http"

	"github.com/lib/pq"
)

type ErrorKind string

const (
	KindInputValidation  ErrorKind = "input_validation_error"
	KindBusinessRule     ErrorKind = "business_rule_error"
	KindResourceNotFound ErrorKind = "resource_not_found"
	KindConflict         ErrorKind = "conflict_error"
	KindDatabase         ErrorKind = "database_error"
	KindInternal         ErrorKind = "internal_error"
)

type AppError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind ErrorKind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func InputValidationError(message string) *AppError {
	return New(KindInputValidation, message)
}

func BusinessRuleError(message string) *AppError {
	return New(KindBusinessRule, message)
}

func ResourceNotFoundError(message string) *AppError {
	return New(KindResourceNotFound, message)
}

func ConflictError(message string) *AppError {
	return New(KindConflict, message)
}

func DatabaseError(message string, err error) *AppError {
	return &AppError{Kind: KindDatabase, Message: message, Err: err}
}

func InternalError(message string) *AppError {
	return New(KindInternal, message)
}

// postgres error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// HandleDBError translates driver-level errors into AppErrors so the
// service layer never has to know about pq error codes.
func HandleDBError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return ConflictError("duplicate record")
		case pgForeignKeyViolation:
			return ConflictError("referenced record does not exist")
		case pgCheckViolation:
			return BusinessRuleError("operation violates a data constraint")
		}
	}
	return DatabaseError("database operation failed", err)
}

func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInputValidation:
		return http.StatusBadRequest
	case KindResourceNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindBusinessRule:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
