package httperr

import (
	"errors"
	"fmt"
)

// Kind classifies a BusinessError for status mapping.
type Kind int

const (
	KindBusiness Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindState
	KindForbidden
)

type BusinessError struct {
	Kind   Kind
	Code   string
	Fields map[string]string
}

func (e BusinessError) Error() string {
	if len(e.Fields) == 0 {
		return e.Code
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Fields)
}

func ErrBusiness(code string) error {
	return BusinessError{Kind: KindBusiness, Code: code}
}

// ErrValidation takes optional field/message pairs.
func ErrValidation(code string, fieldPairs ...string) error {
	e := BusinessError{Kind: KindValidation, Code: code}
	if len(fieldPairs) > 1 {
		e.Fields = make(map[string]string, len(fieldPairs)/2)
		for i := 0; i+1 < len(fieldPairs); i += 2 {
			e.Fields[fieldPairs[i]] = fieldPairs[i+1]
		}
	}
	return e
}

func ErrConflict(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

func ErrNotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func ErrState(code string) error {
	return BusinessError{Kind: KindState, Code: code}
}

func ErrForbidden(code string) error {
	return BusinessError{Kind: KindForbidden, Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// IsKind reports whether err is a BusinessError of the given kind.
func IsKind(err error, kind Kind) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}
