// Package vmerrors implements an error taxonomy: one sentinel per category,
// each wrapped with a call-site stack by github.com/pkg/errors so a caller
// can report exactly where a malformed-class or linkage failure was
// detected. errors.Is/errors.As over the sentinels below let callers match
// on category without string-matching messages.
package vmerrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Category is one entry of the error taxonomy.
type Category string

const (
	MalformedClassFile     Category = "MalformedClassFile"
	InvalidConstantPool    Category = "InvalidConstantPool"
	ClassNameMismatch      Category = "ClassNameMismatch"
	MalformedAttribute     Category = "MalformedAttribute"
	ClassCircularity       Category = "ClassCircularity"
	NoSuchClass            Category = "NoSuchClass"
	NoSuchField            Category = "NoSuchField"
	NoSuchMethod           Category = "NoSuchMethod"
	IncompatibleClassChange Category = "IncompatibleClassChange"
	StackOverflow          Category = "StackOverflow"
	PoolExhausted          Category = "PoolExhausted"
	LinkageError           Category = "LinkageError"
)

// vmError pairs a taxonomy category with a human message; Category is the
// comparison key for errors.Is.
type vmError struct {
	cat Category
	msg string
}

func (e *vmError) Error() string { return fmt.Sprintf("%s: %s", e.cat, e.msg) }

// Is lets errors.Is(err, vmerrors.ErrNoSuchField) match regardless of message,
// by comparing against the zero-message sentinel for each category.
func (e *vmError) Is(target error) bool {
	t, ok := target.(*vmError)
	return ok && t.cat == e.cat
}

// sentinel returns the zero-message representative of a category, used as
// the comparison target for errors.Is(err, vmerrors.ErrNoSuchClass).
func sentinel(cat Category) error { return &vmError{cat: cat} }

var (
	ErrMalformedClassFile      = sentinel(MalformedClassFile)
	ErrInvalidConstantPool     = sentinel(InvalidConstantPool)
	ErrClassNameMismatch       = sentinel(ClassNameMismatch)
	ErrMalformedAttribute      = sentinel(MalformedAttribute)
	ErrClassCircularity        = sentinel(ClassCircularity)
	ErrNoSuchClass             = sentinel(NoSuchClass)
	ErrNoSuchField             = sentinel(NoSuchField)
	ErrNoSuchMethod            = sentinel(NoSuchMethod)
	ErrIncompatibleClassChange = sentinel(IncompatibleClassChange)
	ErrStackOverflow           = sentinel(StackOverflow)
	ErrPoolExhausted           = sentinel(PoolExhausted)
	ErrLinkageError            = sentinel(LinkageError)
)

// New builds a category error with a message and a captured stack trace.
func New(cat Category, msg string) error {
	return errors.WithStack(&vmError{cat: cat, msg: msg})
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(cat Category, format string, args ...interface{}) error {
	return New(cat, fmt.Sprintf(format, args...))
}

// Wrap attaches a category and a stack trace to an existing error, for
// propagating a lower-level failure (e.g. an os.ReadFile error) up through
// the taxonomy.
func Wrap(cat Category, err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.WithStack(&vmError{cat: cat, msg: msg + ": " + err.Error()})
}
