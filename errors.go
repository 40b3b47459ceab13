package main

import (
	"fmt"
	"strings"

	"github.com/jsl-lang/jsl/internal/fileinput"
)

// ErrorKind classifies every fatal condition an evaluation may halt with.
// An ErrorKind is itself an error, so callers may match with errors.Is:
//
//	if errors.Is(err, TypeMismatch) { ... }
type ErrorKind uint8

const (
	StackUnderflow ErrorKind = iota + 1
	TypeMismatch
	UndefinedBinding
	MalformedProgram
	UnresolvedIdentifier
	ResourceError
	IndexRange
)

var errorKindNames = [...]string{
	"",
	"stack underflow",
	"type mismatch",
	"undefined binding",
	"malformed program",
	"unresolved identifier",
	"resource error",
	"index out of range",
}

func (kind ErrorKind) Error() string {
	if int(kind) < len(errorKindNames) && kind != 0 {
		return errorKindNames[kind]
	}
	return fmt.Sprintf("error kind %d", uint8(kind))
}

// Error is the structured form of an evaluation or lexing failure: what kind
// of failure, which operation (token, identifier, or primitive name) failed,
// where that operation came from, and any underlying cause.
type Error struct {
	Kind ErrorKind
	Op   string
	Loc  fileinput.Location
	Err  error
}

func (err *Error) Error() string {
	var sb strings.Builder
	if err.Loc.Name != "" {
		sb.WriteString(err.Loc.String())
		sb.WriteString(": ")
	}
	sb.WriteString(err.Kind.Error())
	if err.Op != "" {
		sb.WriteString(" in ")
		sb.WriteString(err.Op)
	}
	if err.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(err.Err.Error())
	}
	return sb.String()
}

func (err *Error) Is(target error) bool {
	kind, ok := target.(ErrorKind)
	return ok && kind == err.Kind
}

func (err *Error) Unwrap() error { return err.Err }

// ExitError is returned from a run stopped by the exit primitive.
type ExitError int

func (code ExitError) Error() string { return fmt.Sprintf("exit status %d", int(code)) }

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}
func (err haltError) Unwrap() error { return err.error }

func errorf(kind ErrorKind, tok Token, mess string, args ...interface{}) *Error {
	err := &Error{Kind: kind, Op: tok.String(), Loc: tok.Loc}
	if mess != "" {
		err.Err = fmt.Errorf(mess, args...)
	}
	return err
}
