package main

import "unicode/utf8"

// evaluate runs toks strictly left to right. Nested token sequences are run
// by recursing back into evaluate.
func (vm *VM) evaluate(toks []Token) {
	if vm.logfn != nil {
		defer vm.withLogPrefix("  ")()
	}

	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		if vm.ctx != nil {
			vm.haltif(vm.ctx.Err())
		}
		if vm.logfn != nil {
			vm.logf(">", "%v -- s:%v", tok, vm.stack)
		}

		switch tok.Kind {
		case tokNumber:
			vm.push(Float(tok.Num))
		case tokStr:
			vm.push(String(tok.Name))
		case tokTrue:
			vm.push(Float(1))
		case tokFalse:
			vm.push(Float(0))

		case tokAdd, tokMinus, tokDiv, tokMul, tokMod,
			tokEq, tokNoteq, tokBigger, tokSmaller:
			a, b := vm.pop(tok), vm.pop(tok)
			v, err := binaryOps[tok.Kind](a, b)
			if err != nil {
				vm.halt(&Error{Kind: TypeMismatch, Op: tok.String(), Loc: tok.Loc, Err: err})
			}
			vm.push(v)

		case tokSwap:
			a, b := vm.pop(tok), vm.pop(tok)
			vm.push(a)
			vm.push(b)
		case tokRot:
			a, b, c := vm.pop(tok), vm.pop(tok), vm.pop(tok)
			vm.push(a)
			vm.push(b)
			vm.push(c)
		case tokDup:
			a := vm.pop(tok)
			vm.push(a)
			vm.push(a.Clone())
		case tokDrop:
			vm.pop(tok)

		case tokPut:
			vm.writeString(vm.pop(tok).String() + "\n")
		case tokPutc:
			n := vm.popFloat(tok)
			r := rune(n)
			if float64(r) != n || !utf8.ValidRune(r) {
				vm.halt(errorf(IndexRange, tok, "%v is not a code point", n))
			}
			vm.writeString(string(r))

		case tokThen:
			body := vm.companion(toks, &i)
			if vm.pop(tok).IsFloat(1) {
				vm.evaluate(body.Body)
			}
		case tokTimes:
			body := vm.companion(toks, &i)
			for n := floatIndex(vm.popFloat(tok)); n > 0; n-- {
				vm.evaluate(body.Body)
			}

		case tokScope, tokImport:
			vm.evaluate(tok.Body)

		case tokArray:
			box := vm.sandbox()
			box.evaluate(tok.Body)
			vm.push(Array(box.stack...))

		case tokObject:
			vm.push(vm.object(tok))
		case tokGet:
			obj := vm.popObject(tok)
			v, ok := obj.Prop(tok.Name)
			if !ok {
				vm.halt(errorf(UnresolvedIdentifier, tok, "no property %q in %v", tok.Name, obj))
			}
			vm.push(v)

		case tokLet:
			vm.env.let(tok.Name, vm.pop(tok))
		case tokSet:
			if !vm.env.set(tok.Name, vm.pop(tok)) {
				vm.halt(errorf(UndefinedBinding, tok, "Let is not defined"))
			}
		case tokMempop:
			v, _ := vm.env.mempop()
			vm.push(v)
		case tokMemusage:
			vm.pushInt(vm.env.memusage())

		case tokFunction:
			body := vm.companion(toks, &i)
			vm.env.defineFunction(&FunctionDef{
				Name:   tok.Name,
				Params: tok.Params,
				Body:   body.Body,
			})
		case tokMacro:
			vm.env.defineMacro(&MacroDef{Name: tok.Name, Body: tok.Body})

		case tokCall:
			fn := vm.env.function(tok.Name)
			if fn == nil {
				vm.halt(errorf(UnresolvedIdentifier, tok, "no function named %q", tok.Name))
			}
			vm.call(tok, fn)

		case tokIdent:
			vm.resolve(tok)

		default:
			vm.halt(errorf(MalformedProgram, tok, "invalid token"))
		}
	}
}

// companion advances past, and returns, the Scope token that must
// immediately follow toks[*i].
func (vm *VM) companion(toks []Token, i *int) Token {
	if j := *i + 1; j < len(toks) && toks[j].Kind == tokScope {
		*i = j
		return toks[j]
	}
	vm.halt(errorf(MalformedProgram, toks[*i], "missing { ... } body"))
	return Token{}
}

// object builds an Object value; each property token is evaluated in its
// own sandbox, its top value becoming the property value.
func (vm *VM) object(tok Token) Value {
	props := make([]Prop, 0, len(tok.Props))
	for _, prop := range tok.Props {
		box := vm.sandbox()
		box.evaluate([]Token{prop.Value})
		i := len(box.stack) - 1
		if i < 0 {
			vm.halt(errorf(MalformedProgram, tok, "property %q has no value", prop.Name))
		}
		props = append(props, Prop{Name: prop.Name, Value: box.stack[i]})
	}
	return Object(props...)
}

// call binds arguments into a fresh frame, the top of the stack going to the
// first declared parameter, then runs the body with that frame active. The
// frame is left on every path out, including halts.
func (vm *VM) call(tok Token, fn *FunctionDef) {
	locals := make([]Binding, len(fn.Params))
	for i, param := range fn.Params {
		locals[i] = Binding{vm.env.symbolicate(param), vm.pop(tok)}
	}
	vm.env.enter(fn, locals)
	defer vm.env.leave()
	vm.logf("call", "%v %v", fn.Name, len(vm.env.frames))
	vm.evaluate(fn.Body)
}

//// Identifier resolution

// An identifier is offered to each resolver in turn until one handles it.
type identResolver struct {
	name    string
	resolve func(vm *VM, tok Token) bool
}

var identResolvers []identResolver

func init() {
	identResolvers = []identResolver{
		{"binding", (*VM).resolveBinding},
		{"macro", (*VM).resolveMacro},
		{"function", (*VM).resolveFunction},
		{"builtin", (*VM).resolveBuiltin},
	}
}

func (vm *VM) resolve(tok Token) {
	for _, res := range identResolvers {
		if res.resolve(vm, tok) {
			vm.logf("ident", "%v resolved by %v", tok.Name, res.name)
			return
		}
	}
	vm.halt(errorf(UnresolvedIdentifier, tok, ""))
}

func (vm *VM) resolveBinding(tok Token) bool {
	b := vm.env.lookup(tok.Name)
	if b != nil {
		vm.push(b.Value.Clone())
	}
	return b != nil
}

// Macros share the caller's stack and bindings: a macro is its body, inlined.
func (vm *VM) resolveMacro(tok Token) bool {
	mac := vm.env.macro(tok.Name)
	if mac != nil {
		vm.evaluate(mac.Body)
	}
	return mac != nil
}

func (vm *VM) resolveFunction(tok Token) bool {
	fn := vm.env.function(tok.Name)
	if fn != nil {
		vm.call(tok, fn)
	}
	return fn != nil
}

func (vm *VM) resolveBuiltin(tok Token) bool {
	builtin, defined := builtins[tok.Name]
	if defined {
		builtin(vm, tok)
	}
	return defined
}
