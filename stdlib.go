package main

import (
	"math"
	"os"
)

// builtins maps reserved identifiers to host primitives. They are only
// reached after binding, macro, and function resolution have all failed.
var builtins map[string]func(vm *VM, tok Token)

func init() {
	builtins = map[string]func(vm *VM, tok Token){
		"fs::readFile":   (*VM).readFile,
		"fs::createFile": (*VM).createFile,
		"length":         (*VM).length,
		"array::nth":     (*VM).arrayNth,
		"array::pop":     (*VM).arrayPop,
		"array::push":    (*VM).arrayPush,
		"exit":           (*VM).exit,
	}
}

// Name           Stack effect
// fs::readFile   path -- contents
func (vm *VM) readFile(tok Token) {
	path := vm.popString(tok)
	data, err := os.ReadFile(path)
	if err != nil {
		vm.halt(&Error{Kind: ResourceError, Op: tok.String(), Loc: tok.Loc, Err: err})
	}
	vm.push(String(string(data)))
}

// Name             Stack effect
// fs::createFile   path content --
func (vm *VM) createFile(tok Token) {
	content := vm.popString(tok)
	path := vm.popString(tok)
	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		vm.halt(&Error{Kind: ResourceError, Op: tok.String(), Loc: tok.Loc, Err: err})
	}
}

// Name     Stack effect
// length   value -- n
func (vm *VM) length(tok Token) { vm.pushInt(vm.pop(tok).Len()) }

// Name         Stack effect
// array::nth   array index -- element
func (vm *VM) arrayNth(tok Token) {
	index := vm.popFloat(tok)
	elems := vm.popArray(tok)
	if index < 0 || index >= float64(len(elems)) || index != math.Trunc(index) {
		vm.halt(errorf(IndexRange, tok, "index %v of %v elements", formatFloat(index), len(elems)))
	}
	vm.push(elems[int(index)].Clone())
}

// Name         Stack effect
// array::pop   array -- last rest
func (vm *VM) arrayPop(tok Token) {
	elems := vm.popArray(tok)
	i := len(elems) - 1
	if i < 0 {
		vm.halt(errorf(IndexRange, tok, "pop of empty array"))
	}
	rest := make([]Value, i)
	copy(rest, elems[:i])
	vm.push(elems[i])
	vm.push(Array(rest...))
}

// Name          Stack effect
// array::push   array value -- array'
func (vm *VM) arrayPush(tok Token) {
	v := vm.pop(tok)
	elems := vm.popArray(tok)
	grown := make([]Value, len(elems), len(elems)+1)
	copy(grown, elems)
	vm.push(Array(append(grown, v)...))
}

// Name   Stack effect
// exit   code --        stop the whole run
func (vm *VM) exit(tok Token) { vm.halt(ExitError(int(vm.popFloat(tok)))) }
