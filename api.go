package main

import (
	"context"
	"errors"
	"io"
	"io/fs"

	"github.com/jsl-lang/jsl/internal/panicerr"
)

func New(opts ...VMOption) *VM {
	var vm VM
	defaultOptions.apply(&vm)
	VMOptions(opts...).apply(&vm)
	return &vm
}

// Lex reads all of r, named name in any error locations, into a token tree.
// Imports are resolved and lexed now.
func (vm *VM) Lex(name string, r io.Reader) ([]Token, error) {
	vm.lex.logging = vm.logging
	return vm.lex.lex(name, r)
}

// Eval evaluates toks against the VM's stack and environment, both of which
// persist into the next call. Any halt is returned as an error: an *Error for
// evaluation failures, ExitError from the exit primitive, or ctx's error.
func (vm *VM) Eval(ctx context.Context, toks []Token) error {
	err := panicerr.Recover("jsl", func() error {
		vm.ctx = ctx
		defer func() { vm.ctx = nil }()
		vm.evaluate(toks)
		return vm.out.Flush()
	})
	var halt haltError
	if errors.As(err, &halt) {
		err = halt.error
	}
	return err
}

// Run lexes and evaluates a whole program.
func (vm *VM) Run(ctx context.Context, name string, r io.Reader) error {
	toks, err := vm.Lex(name, r)
	if err != nil {
		return err
	}
	return vm.Eval(ctx, toks)
}

// Stack returns a copy of the operand stack, bottom first.
func (vm *VM) Stack() []Value { return append([]Value(nil), vm.stack...) }

// Dump writes a description of the stack and memory to w.
func (vm *VM) Dump(w io.Writer) { vmDumper{vm: vm, out: w}.dump() }

func WithOutput(w io.Writer) VMOption  { return withOutput(w) }
func WithTee(w io.Writer) VMOption     { return withTee(w) }
func WithImportFS(fsys fs.FS) VMOption { return withImportFS(fsys) }

func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }
