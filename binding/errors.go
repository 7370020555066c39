package binding

import (
	"fmt"

	"github.com/pkg/errors"
)

// Resolution failures. A *MemberError always wraps exactly one of these, so
// callers classify with errors.Is.
var (
	// ErrUndefinedMember means neither the built-in table nor the expando
	// store knows the name. Hosts usually surface this as "undefined".
	ErrUndefinedMember = errors.New("undefined member")
	// ErrReadOnlyMember means a write or delete hit a built-in without a setter.
	ErrReadOnlyMember = errors.New("read-only member")
	// ErrArgumentMismatch means the arguments do not fit a built-in method.
	ErrArgumentMismatch = errors.New("argument mismatch")
	// ErrNotInvocable means an expando value was called but is not callable.
	ErrNotInvocable = errors.New("member is not invocable")
)

// Op names the kind of request that failed.
type Op string

const (
	OpGet    Op = "get"
	OpSet    Op = "set"
	OpDelete Op = "delete"
	OpInvoke Op = "invoke"
)

// MemberError describes a failed resolution request.
type MemberError struct {
	Op     Op
	Type   string // type token of the target
	Name   string // requested member
	Detail string
	Err    error
}

func (e *MemberError) Error() string {
	msg := fmt.Sprintf("%s %s.%s: %v", e.Op, e.Type, e.Name, e.Err)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *MemberError) Unwrap() error {
	return e.Err
}

func newMemberError(op Op, typ, name string, err error, format string, args ...interface{}) *MemberError {
	e := &MemberError{Op: op, Type: typ, Name: name, Err: err}
	if format != "" {
		e.Detail = fmt.Sprintf(format, args...)
	}
	return e
}

// IsUndefined reports whether err is an undefined-member failure.
func IsUndefined(err error) bool { return errors.Is(err, ErrUndefinedMember) }

// IsReadOnly reports whether err is a rejected write.
func IsReadOnly(err error) bool { return errors.Is(err, ErrReadOnlyMember) }

// IsArgumentMismatch reports whether err is a bad invocation shape.
func IsArgumentMismatch(err error) bool { return errors.Is(err, ErrArgumentMismatch) }

// IsNotInvocable reports whether err is a call on a non-callable expando.
func IsNotInvocable(err error) bool { return errors.Is(err, ErrNotInvocable) }
