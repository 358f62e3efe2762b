package object

import (
	"fmt"
	"reflect"

	"github.com/ValentinKolb/dObj/lib/key"
)

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is returned (or, for Get, raised) by the typed accessors. It carries a
// return code, the key that was accessed and an error message.
type Error struct {
	Code RetCode // The return code
	Key  key.ID  // The accessed key (zero for the sentinels)
	Msg  string  // The error message
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Key.IsZero() {
		return fmt.Sprintf("ObjectError (code %s): %s", e.Code, e.Msg)
	}
	return fmt.Sprintf("ObjectError (code %s) for key %s: %s", e.Code, e.Key, e.Msg)
}

// Is reports whether target is an *Error with the same code, so that
// errors.Is(err, ErrKeyNotFound) matches every key-not-found error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// NewError creates a new error with the given code, key and message.
func NewError(code RetCode, id key.ID, msg string) *Error {
	return &Error{
		Code: code,
		Key:  id,
		Msg:  msg,
	}
}

var (
	ErrKeyNotFound  = &Error{Code: RetCKeyNotFound, Msg: "key not found"}
	ErrTypeMismatch = &Error{Code: RetCTypeMismatch, Msg: "type mismatch"}
)

func keyNotFound(id key.ID) *Error {
	return NewError(RetCKeyNotFound, id, "key not found")
}

func typeMismatch[V any](id key.ID, value any) *Error {
	return NewError(RetCTypeMismatch, id,
		fmt.Sprintf("stored value of type %T cannot be read as %s", value, reflect.TypeOf((*V)(nil)).Elem()))
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess      RetCode = iota // 0: Access succeeded.
	RetCKeyNotFound                 // 1: Strict read of a key that is not present.
	RetCTypeMismatch                // 2: Stored value is not of the key's value type.
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCKeyNotFound:
		return "KeyNotFound"
	case RetCTypeMismatch:
		return "TypeMismatch"
	default:
		return "Unknown"
	}
}
