package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindForbidden    Kind = "forbidden"
	KindUnauthorized Kind = "unauthorized"
	KindRateLimited  Kind = "rate_limited"
)

// BusinessError is a rule violation the client can act on. Anything that is
// not a BusinessError is treated as an unexpected failure.
type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func ErrValidation(code, message string) error {
	return BusinessError{Kind: KindValidation, Code: code, Message: message}
}

func ErrNotFound(code, message string) error {
	return BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func ErrConflict(code, message string) error {
	return BusinessError{Kind: KindConflict, Code: code, Message: message}
}

func ErrForbidden(code, message string) error {
	return BusinessError{Kind: KindForbidden, Code: code, Message: message}
}

func ErrUnauthorized(code, message string) error {
	return BusinessError{Kind: KindUnauthorized, Code: code, Message: message}
}

func ErrRateLimited(code, message string) error {
	return BusinessError{Kind: KindRateLimited, Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a Postgres unique violation. When
// constraint is non-empty the violated index must match it.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation &&
			(constraint == "" || pgErr.ConstraintName == constraint)
	}
	return constraint == "" && errors.Is(err, gorm.ErrDuplicatedKey)
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
