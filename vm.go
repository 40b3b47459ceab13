package main

import "context"

// VM evaluates token trees against an operand stack and an environment.
//
// The operand stack is a plain LIFO of Values. The environment persists
// across Eval calls, which is how the REPL keeps state from line to line.
type VM struct {
	core
	lex lexer

	ctx   context.Context
	stack []Value
	env   Env
}

// sandbox returns a fresh VM sharing only host plumbing (output, logging)
// with vm: its stack and environment start empty.
func (vm *VM) sandbox() *VM {
	return &VM{
		core: core{logging: vm.logging, out: vm.out},
		lex:  vm.lex,
		ctx:  vm.ctx,
	}
}

func (vm *VM) push(v Value) {
	vm.stack = append(vm.stack, v)
}

func (vm *VM) pop(tok Token) (v Value) {
	i := len(vm.stack) - 1
	if i < 0 {
		vm.halt(errorf(StackUnderflow, tok, ""))
	}
	v, vm.stack[i] = vm.stack[i], Value{}
	vm.stack = vm.stack[:i]
	return v
}

func (vm *VM) popKind(tok Token, kind ValueKind) Value {
	v := vm.pop(tok)
	if v.kind != kind {
		vm.halt(&Error{Kind: TypeMismatch, Op: tok.String(), Loc: tok.Loc, Err: kindError(v, kind)})
	}
	return v
}

func (vm *VM) popFloat(tok Token) float64 { return vm.popKind(tok, KindFloat).num }
func (vm *VM) popString(tok Token) string { return vm.popKind(tok, KindString).str }
func (vm *VM) popArray(tok Token) []Value { return vm.popKind(tok, KindArray).elems }
func (vm *VM) popObject(tok Token) Value  { return vm.popKind(tok, KindObject) }
func (vm *VM) pushInt(n int)              { vm.push(Float(float64(n))) }
